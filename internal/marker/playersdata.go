package marker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the marker file consumed by the map frontend, relative to
// the rendered map directory.
const FileName = "playersData.js"

const assignmentPrefix = "var playersData = "

// playersDocument is the JSON object assigned to the frontend variable.
type playersDocument struct {
	Players []PlayerMarker `json:"players"`
}

// Encode renders the marker list as the playersData.js assignment.
func Encode(markers []PlayerMarker) ([]byte, error) {
	if markers == nil {
		markers = []PlayerMarker{}
	}
	data, err := json.MarshalIndent(playersDocument{Players: markers}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding player markers: %w", err)
	}
	return append([]byte(assignmentPrefix), data...), nil
}

// Decode parses a playersData.js assignment back into a marker list.
func Decode(data []byte) ([]PlayerMarker, error) {
	rest, ok := bytes.CutPrefix(data, []byte(assignmentPrefix))
	if !ok {
		return nil, fmt.Errorf("player marker file does not start with %q", assignmentPrefix)
	}
	var doc playersDocument
	if err := json.Unmarshal(rest, &doc); err != nil {
		return nil, fmt.Errorf("decoding player markers: %w", err)
	}
	return doc.Players, nil
}

// WriteFile writes the marker list to <dest>/map/playersData.js, creating
// the map directory if needed.
func WriteFile(dest string, markers []PlayerMarker) error {
	data, err := Encode(markers)
	if err != nil {
		return err
	}
	dir := filepath.Join(dest, "map")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating map directory: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
