package state

import (
	"encoding/json"
	"errors"
	"os"
	"sort"
)

// LocalBackend implements Backend using a local JSON file.
type LocalBackend struct {
	Path string
}

// NewLocalBackend creates a new local JSON history backend.
func NewLocalBackend(path string) *LocalBackend {
	return &LocalBackend{Path: path}
}

// historyFile is the on-disk JSON structure.
type historyFile struct {
	Version string  `json:"version"`
	Entries []Entry `json:"entries"`
}

// Load reads all history entries from the JSON file.
func (b *LocalBackend) Load() ([]Entry, error) {
	data, err := os.ReadFile(b.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var hf historyFile
	if err := json.Unmarshal(data, &hf); err != nil {
		return nil, err
	}
	return hf.Entries, nil
}

// Save writes all history entries to the JSON file in ID order.
func (b *LocalBackend) Save(entries []Entry) error {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	hf := historyFile{
		Version: "1.0",
		Entries: entries,
	}
	data, err := json.MarshalIndent(hf, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(b.Path, data, 0644)
}

// Append records one more run.
func (b *LocalBackend) Append(entry Entry) error {
	entries, err := b.Load()
	if err != nil {
		return err
	}
	return b.Save(append(entries, entry))
}

// Get retrieves a single entry by ID.
func (b *LocalBackend) Get(id string) (*Entry, error) {
	entries, err := b.Load()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	return nil, nil
}

// List returns all entries, optionally filtered by status.
func (b *LocalBackend) List(status *Status) ([]Entry, error) {
	entries, err := b.Load()
	if err != nil {
		return nil, err
	}
	if status == nil {
		return entries, nil
	}
	var filtered []Entry
	for _, e := range entries {
		if e.Status == *status {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}
