package storage

import (
	"context"
	"encoding/json"

	"github.com/fintrack/fintrack/internal/common"
	log "github.com/sirupsen/logrus"
)

// StubStore is an in-memory Store for tests. SaveErr, when set, makes every
// Save fail with a PersistenceError wrapping it.
type StubStore struct {
	data    map[string][]byte
	SaveErr error
}

func NewStubStore() *StubStore {
	return &StubStore{data: map[string][]byte{}}
}

func (s *StubStore) Load(ctx context.Context, collection string, dest any) error {
	raw, ok := s.data[collection]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warnf("collection %s is corrupt, treating as empty: %v", collection, err)
		return nil
	}
	return nil
}

func (s *StubStore) Save(ctx context.Context, collection string, records any) error {
	if s.SaveErr != nil {
		return common.NewPersistenceError(collection, s.SaveErr)
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return common.NewPersistenceError(collection, err)
	}
	s.data[collection] = raw
	return nil
}

// SetRaw stores a raw payload directly, bypassing marshalling. Used by tests
// to simulate corrupt collections.
func (s *StubStore) SetRaw(collection string, raw []byte) {
	s.data[collection] = raw
}

func (s *StubStore) Cleanup() {
	s.data = map[string][]byte{}
	s.SaveErr = nil
}
