// Package schemas embeds the JSON Schemas for the artifacts this system emits.
package schemas

import (
	"embed"
	"fmt"
)

// AnalysisResultFile is the schema file for scoring output.
const AnalysisResultFile = "analysis_result.schema.json"

//go:embed *.schema.json
var files embed.FS

// Load returns the raw contents of an embedded schema file.
func Load(name string) ([]byte, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("schema %s not embedded: %w", name, err)
	}
	return data, nil
}

// Names lists the embedded schema files.
func Names() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
