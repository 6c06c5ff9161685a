// Package kv is the small on-device key/value store used by the terminal
// client.
package kv

import (
	"errors"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// Store keeps one file per key under a base directory.
type Store struct {
	d *diskv.Diskv
}

// Open creates a store rooted at dir. The directory is created on first write.
func Open(dir string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     dir,
		CacheSizeMax: 64 * 1024,
	})}
}

// Get returns the value of key. ok is false when the key was never written.
func (s *Store) Get(key string) (value []byte, ok bool, err error) {
	if !s.d.Has(key) {
		return nil, false, nil
	}
	v, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

func (s *Store) Set(key string, value []byte) error {
	return s.d.Write(key, value)
}

// Delete removes key; deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}
