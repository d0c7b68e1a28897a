package store

import "fuel-pos-agent/internal/models"

// Memory is an in-memory persister for tests and throwaway runs.
// SaveErr, when set, makes every Save fail so tests can check that a
// broken durable write leaves the in-memory state untouched.
type Memory struct {
	Doc     models.Document
	SaveErr error
	Saves   int
}

func NewMemory() *Memory {
	return &Memory{Doc: models.DefaultDocument()}
}

func (m *Memory) Load() (models.Document, error) {
	doc := m.Doc
	doc.Normalize()
	return doc, nil
}

func (m *Memory) Save(doc models.Document) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Doc = doc
	m.Saves++
	return nil
}
