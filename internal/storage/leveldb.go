package storage

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

const defaultsDirName = "defaults"

type levelDBStore struct {
	mu      sync.Mutex
	once    sync.Once
	db      *leveldb.DB
	pending map[string]*string // nil value marks a deletion
}

// Open opens (or creates) the preferences store below dataDir.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func Open(dataDir string) (Store, error) {
	dir := filepath.Join(dataDir, defaultsDirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "failed to create store directory")
	}

	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open LevelDB")
	}

	return &levelDBStore{
		db:      db,
		pending: make(map[string]*string),
	}, nil
}

func (s *levelDBStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if val, ok := s.pending[key]; ok {
		if val == nil {
			return "", ErrNotFound
		}
		return *val, nil
	}

	raw, err := s.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", errors.Wrapf(err, "failed to read key %q", key)
	}

	return string(raw), nil
}

func (s *levelDBStore) Set(key string, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[key] = &value
}

func (s *levelDBStore) Remove(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		s.pending[key] = nil
	}
}

func (s *levelDBStore) Synchronize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return nil
	}

	batch := new(leveldb.Batch)
	for key, val := range s.pending {
		if val == nil {
			batch.Delete([]byte(key))
			continue
		}
		batch.Put([]byte(key), []byte(*val))
	}

	if err := s.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return errors.Wrap(err, "failed to write batch")
	}

	s.pending = make(map[string]*string)

	return nil
}

// Close avoids double close when the store is shared.
func (s *levelDBStore) Close() error {
	var err error
	s.once.Do(func() {
		if syncErr := s.Synchronize(); syncErr != nil {
			err = syncErr
		}
		if closeErr := s.db.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "failed to close LevelDB")
		}
	})
	return err
}
