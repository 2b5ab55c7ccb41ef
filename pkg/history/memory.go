package history

import (
	"context"
	"sync"

	"github.com/travigo/modeadvisor/pkg/ctdf"
)

type MemoryStore struct {
	mutex   sync.RWMutex
	nextID  int64
	records []Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Add(ctx context.Context, record *Record) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record.ID = s.nextID
	s.nextID++

	s.records = append(s.records, *record)

	return nil
}

func (s *MemoryStore) List(ctx context.Context, feature ctdf.Feature, limit int) ([]Record, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	records := []Record{}

	for i := len(s.records) - 1; i >= 0 && len(records) < limit; i-- {
		if feature != "" && s.records[i].Feature != feature {
			continue
		}

		records = append(records, s.records[i])
	}

	return records, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, record := range s.records {
		if record.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}

	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.records = nil

	return nil
}
