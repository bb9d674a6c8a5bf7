package history

import (
	"context"
	"sync"

	"github.com/quirky-analytics/leadgen/internal/domain/lead"
)

// MemoryStore is the session-scoped history. Records live for the process
// lifetime only; there is deliberately no persistence across restarts.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*lead.AnalysisRecord
	byID    map[lead.RecordID]*lead.AnalysisRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[lead.RecordID]*lead.AnalysisRecord)}
}

// Append adds a completed analysis. Records are never mutated or removed.
func (s *MemoryStore) Append(_ context.Context, rec *lead.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	s.byID[rec.ID] = rec
	return nil
}

// List returns records newest-first.
func (s *MemoryStore) List(_ context.Context) ([]*lead.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*lead.AnalysisRecord, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id lead.RecordID) (*lead.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return nil, lead.ErrRecordNotFound
	}
	return rec, nil
}
