// Package dmp parses the NCBI taxonomy dump file trio (nodes.dmp,
// names.dmp, merged.dmp) into the shapes taxon.Store's construction
// functions expect. Each file is a set of pipe-delimited rows, fields
// separated by the three-byte sequence "\t|\t" and a trailing "\t|" before
// the newline.
package dmp
