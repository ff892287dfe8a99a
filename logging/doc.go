// Package logging adapts github.com/datatrails/go-datatrails-common/logger
// to the narrow contract the rest of this module needs: an injected
// collaborator with info/warning/error sinks. No package outside
// logging imports the datatrails logger directly.
package logging
