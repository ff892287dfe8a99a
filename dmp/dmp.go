package dmp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Thomas1664/go-taxonomy/logging"
	"github.com/Thomas1664/go-taxonomy/taxon"
	"github.com/shenwei356/breader"
)

const (
	fieldSep        = "\t|\t"
	trailingMarker  = "\t|"
	scientificClass = "scientific name"
	bufferChunks    = 8
	chunkSize       = 100
)

func splitFields(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	return strings.Split(strings.TrimSuffix(line, trailingMarker), fieldSep)
}

// LoadNodes parses a nodes.dmp file into raw node rows, in file order,
// ready for taxon.BuildFromNodes.
func LoadNodes(path string) ([]taxon.RawNode, error) {
	parse := func(line string) (interface{}, bool, error) {
		fields := splitFields(line)
		if len(fields) < 3 {
			return nil, false, nil
		}
		id, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, false, fmt.Errorf("dmp: nodes: parsing taxon id %q: %w", fields[0], err)
		}
		parent, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, false, fmt.Errorf("dmp: nodes: parsing parent id %q: %w", fields[1], err)
		}
		return taxon.RawNode{ExternalID: id, ParentExternalID: parent, Rank: fields[2]}, true, nil
	}

	reader, err := breader.NewBufferedReader(path, bufferChunks, chunkSize, parse)
	if err != nil {
		return nil, fmt.Errorf("dmp: opening nodes dump: %w", err)
	}

	var nodes []taxon.RawNode
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return nil, fmt.Errorf("dmp: reading nodes dump: %w", chunk.Err)
		}
		for _, d := range chunk.Data {
			nodes = append(nodes, d.(taxon.RawNode))
		}
	}
	return nodes, nil
}

type nameRow struct {
	id    int64
	name  string
	class string
}

// LoadNames parses a names.dmp file and sets the scientific name on every
// matching record already present in store, logging how many it resolved.
// The first scientific-name row seen for an id wins; later rows for the
// same id are ignored. A scientific-name row for an id with no record in
// store is an error.
func LoadNames(path string, store *taxon.Store, log logging.Logger) error {
	parse := func(line string) (interface{}, bool, error) {
		fields := splitFields(line)
		if len(fields) < 4 {
			return nil, false, nil
		}
		if fields[3] != scientificClass {
			return nil, false, nil
		}
		id, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, false, fmt.Errorf("dmp: names: parsing taxon id %q: %w", fields[0], err)
		}
		return nameRow{id: id, name: fields[1], class: fields[3]}, true, nil
	}

	reader, err := breader.NewBufferedReader(path, bufferChunks, chunkSize, parse)
	if err != nil {
		return fmt.Errorf("dmp: opening names dump: %w", err)
	}

	var resolved int
	seen := make(map[int64]bool)
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return fmt.Errorf("dmp: reading names dump: %w", chunk.Err)
		}
		for _, d := range chunk.Data {
			row := d.(nameRow)
			if !store.Exists(row.id) {
				return fmt.Errorf("dmp: names: taxon %d has no record in the nodes dump", row.id)
			}
			if seen[row.id] {
				continue
			}
			store.SetName(row.id, row.name)
			seen[row.id] = true
			resolved++
		}
	}
	log.Infof("dmp: resolved %d scientific names", resolved)
	return nil
}

type mergeRow struct {
	old int64
	new int64
}

// LoadMerged parses a merged.dmp file and installs every row as an alias
// on store, logging how many it installed.
func LoadMerged(path string, store *taxon.Store, log logging.Logger) error {
	parse := func(line string) (interface{}, bool, error) {
		fields := splitFields(line)
		if len(fields) < 2 {
			return nil, false, nil
		}
		oldID, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, false, fmt.Errorf("dmp: merged: parsing old id %q: %w", fields[0], err)
		}
		newID, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, false, fmt.Errorf("dmp: merged: parsing new id %q: %w", fields[1], err)
		}
		return mergeRow{old: oldID, new: newID}, true, nil
	}

	reader, err := breader.NewBufferedReader(path, bufferChunks, chunkSize, parse)
	if err != nil {
		return fmt.Errorf("dmp: opening merged dump: %w", err)
	}

	var installed int
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return fmt.Errorf("dmp: reading merged dump: %w", chunk.Err)
		}
		for _, d := range chunk.Data {
			row := d.(mergeRow)
			if err := store.Alias(row.old, row.new); err != nil {
				return err
			}
			installed++
		}
	}
	log.Infof("dmp: installed %d merged aliases", installed)
	return nil
}
