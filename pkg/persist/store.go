package persist

import (
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/go-drift/lite/pkg/errors"
)

// Store holds encoded state values keyed by component tag and state key.
type Store interface {
	// Load returns the stored bytes and whether a value exists.
	Load(component, key string) ([]byte, bool, error)
	// Save stores data, replacing any previous value.
	Save(component, key string, data []byte) error
	// Close releases the store.
	Close() error
}

// BoltStore is a Store backed by a bbolt database. Each component tag gets
// its own bucket.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens or creates the database at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, &errors.LiteError{Op: "persist.OpenBolt", Kind: errors.KindStorage, Err: err}
	}
	return &BoltStore{db: db}, nil
}

// Load implements Store.
func (s *BoltStore) Load(component, key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(component))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			// v is only valid for the life of the transaction.
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, &errors.LiteError{Op: "persist.Load", Kind: errors.KindStorage, Component: component, Err: err}
	}
	return data, data != nil, nil
}

// Save implements Store.
func (s *BoltStore) Save(component, key string, data []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(component))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
	if err != nil {
		return &errors.LiteError{Op: "persist.Save", Kind: errors.KindStorage, Component: component, Err: err}
	}
	return nil
}

// Keys returns the stored keys for component in byte order.
func (s *BoltStore) Keys(component string) ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(component))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Close implements Store.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
