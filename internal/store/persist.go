package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fuel-pos-agent/internal/models"
)

// Persister durably stores the whole document. Reads and writes are
// whole-document and atomic; there is no partial update at this layer.
type Persister interface {
	Load() (models.Document, error)
	Save(doc models.Document) error
}

// JSONFile keeps the document in a single flat JSON file next to the
// binary. Save goes through a temp file and a rename so a crash
// mid-write cannot leave a torn document.
type JSONFile struct {
	Path string
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{Path: path}
}

func (f *JSONFile) Load() (models.Document, error) {
	raw, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		doc := models.DefaultDocument()
		if err := f.Save(doc); err != nil {
			return models.Document{}, err
		}
		return doc, nil
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("read database file: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.Document{}, fmt.Errorf("parse database file: %w", err)
	}
	doc.Normalize()
	return doc, nil
}

func (f *JSONFile) Save(doc models.Document) error {
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database folder: %w", err)
		}
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write database file: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("replace database file: %w", err)
	}
	return nil
}
