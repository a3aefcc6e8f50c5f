package vault

import (
	"context"
	"sync"
)

// StubRepository is an in-memory Repository and FrontMatterStore for tests.
type StubRepository struct {
	mu      sync.Mutex
	records []Record
	// FailWrites makes ProcessFrontMatter return an error, simulating a
	// rejected persistence request.
	FailWrites error
}

func NewStubRepository(records ...Record) *StubRepository {
	return &StubRepository{records: records}
}

func (s *StubRepository) GetRecords(_ context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *StubRepository) GetRecord(_ context.Context, path string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.Path == path {
			return r, nil
		}
	}
	return Record{}, ErrRecordNotFound
}

func (s *StubRepository) ProcessFrontMatter(_ context.Context, path string, mutator func(fm map[string]any)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	for i, r := range s.records {
		if r.Path == path {
			if r.FrontMatter == nil {
				r.FrontMatter = map[string]any{}
			}
			mutator(r.FrontMatter)
			s.records[i] = r
			return nil
		}
	}
	return ErrRecordNotFound
}

func (s *StubRepository) SetRecords(records []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
}
