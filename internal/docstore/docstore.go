// Package docstore persists whole JSON documents by key.
//
// Every write replaces the previous document entirely. There is no partial update and no
// coordination between concurrent writers; callers serialise access.
package docstore

import (
	"context"
	"regexp"

	"github.com/myrjola/fitplan/internal/errors"
)

// ErrNotFound is returned by Get when no document is stored under the key.
var ErrNotFound = errors.NewSentinel("document not found")

// ErrInvalidKey is returned for keys that are not usable as document names.
var ErrInvalidKey = errors.NewSentinel("invalid document key")

// Store is a whole-document key/value store.
type Store interface {
	// Get returns the stored document or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put overwrites the document stored under key.
	Put(ctx context.Context, key string, body []byte) error
}

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return errors.Wrap(ErrInvalidKey, "validate key", slogKey(key))
	}
	return nil
}
