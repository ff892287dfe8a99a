package taxonomy

import (
	"os"

	"github.com/Thomas1664/go-taxonomy/logging"
)

// Terminator is how Load reports a fatal construction error to the
// process. Production code uses OSExit; tests use RecordingTerminator so
// a fatal path never kills the test binary.
type Terminator interface {
	Fatal(err error)
}

type osExitTerminator struct {
	log logging.Logger
}

// OSExit returns a Terminator that logs err at error level and calls
// os.Exit(1).
func OSExit(log logging.Logger) Terminator {
	return osExitTerminator{log: log}
}

func (t osExitTerminator) Fatal(err error) {
	t.log.Errorf("taxonomy: fatal construction error: %v", err)
	os.Exit(1)
}

// RecordingTerminator captures the first fatal error instead of exiting,
// for use in tests that exercise Load's failure paths.
type RecordingTerminator struct {
	Err error
}

func (t *RecordingTerminator) Fatal(err error) {
	if t.Err == nil {
		t.Err = err
	}
}
