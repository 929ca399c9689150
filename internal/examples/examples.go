// Package examples provides the embedded catalog of ready-to-run
// programs used by the CLI and the evaluation runner.
package examples

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed examples.yaml files/*.runner
var fs embed.FS

// Start is a grid position in the catalog.
type Start struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Example describes one catalog entry: a program, the built-in map it
// runs on, and the outcome it is expected to produce.
type Example struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Map         string `yaml:"map"`
	Start       Start  `yaml:"start"`
	Facing      string `yaml:"facing"`
	SourceFile  string `yaml:"source"`
	Success     bool   `yaml:"success"`
}

type catalog struct {
	Examples []Example `yaml:"examples"`
}

// All returns the catalog entries in file order.
func All() ([]Example, error) {
	raw, err := fs.ReadFile("examples.yaml")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return c.Examples, nil
}

// Get returns a catalog entry by name.
func Get(name string) (*Example, error) {
	all, err := All()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Name == name {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("unknown example %q", name)
}

// Source returns the program text for a catalog entry.
func Source(e *Example) (string, error) {
	raw, err := fs.ReadFile("files/" + e.SourceFile)
	if err != nil {
		return "", fmt.Errorf("read example source: %w", err)
	}
	return string(raw), nil
}
