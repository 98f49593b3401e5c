package evm

import (
	"encoding/binary"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

const (
	kitDirName     = "evm"
	stateOpenWait  = time.Second
	stateFileMode  = 0o600
	stateDirMode   = 0o700
	stateExtension = ".db"
)

var (
	syncBucket = []byte("sync")

	keyLastBlockHeight = []byte("last_block_height")
	keyBalance         = []byte("balance")
	keySyncedAt        = []byte("synced_at")
)

// snapshot is what the kit persists between runs.
type snapshot struct {
	LastBlockHeight uint64
	Balance         *big.Int
	SyncedAt        time.Time
}

// stateStore persists the kit snapshot for one wallet ID on one chain.
type stateStore struct {
	db *bbolt.DB
}

func walletDir(dataDir string, walletID string) string {
	return filepath.Join(dataDir, kitDirName, walletID)
}

func statePath(dataDir string, walletID string, chainID int64) string {
	return filepath.Join(walletDir(dataDir, walletID), strconv.FormatInt(chainID, 10)+stateExtension)
}

func openStateStore(path string) (*stateStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), stateDirMode); err != nil {
		return nil, errors.Wrap(err, "failed to create kit directory")
	}

	db, err := bbolt.Open(path, stateFileMode, &bbolt.Options{Timeout: stateOpenWait})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open kit state %s", path)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(syncBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create sync bucket")
	}

	return &stateStore{db: db}, nil
}

func (s *stateStore) load() (snapshot, error) {
	var snap snapshot

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(syncBucket)

		if raw := bucket.Get(keyLastBlockHeight); len(raw) == 8 {
			snap.LastBlockHeight = binary.BigEndian.Uint64(raw)
		}
		if raw := bucket.Get(keyBalance); raw != nil {
			snap.Balance = new(big.Int).SetBytes(raw)
		}
		if raw := bucket.Get(keySyncedAt); raw != nil {
			var t time.Time
			if err := t.UnmarshalBinary(raw); err == nil {
				snap.SyncedAt = t
			}
		}

		return nil
	})
	if err != nil {
		return snapshot{}, errors.Wrap(err, "failed to load kit state")
	}

	return snap, nil
}

func (s *stateStore) save(snap snapshot) error {
	syncedAt, err := snap.SyncedAt.MarshalBinary()
	if err != nil {
		return errors.Wrap(err, "failed to encode sync time")
	}

	height := make([]byte, 8)
	binary.BigEndian.PutUint64(height, snap.LastBlockHeight)

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(syncBucket)

		if err := bucket.Put(keyLastBlockHeight, height); err != nil {
			return err
		}
		if snap.Balance != nil {
			if err := bucket.Put(keyBalance, snap.Balance.Bytes()); err != nil {
				return err
			}
		}
		return bucket.Put(keySyncedAt, syncedAt)
	})
	if err != nil {
		return errors.Wrap(err, "failed to save kit state")
	}

	return nil
}

func (s *stateStore) close() error {
	return s.db.Close()
}

// Clear removes the persisted state of every wallet ID below dataDir that is
// not listed in exceptFor.
func Clear(dataDir string, exceptFor []string) error {
	root := filepath.Join(dataDir, kitDirName)

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "failed to list kit state")
	}

	keep := make(map[string]struct{}, len(exceptFor))
	for _, id := range exceptFor {
		keep[id] = struct{}{}
	}

	for _, entry := range entries {
		if _, ok := keep[entry.Name()]; ok {
			continue
		}

		if err := os.RemoveAll(filepath.Join(root, entry.Name())); err != nil {
			return errors.Wrapf(err, "failed to remove kit state for %s", entry.Name())
		}
	}

	return nil
}
