// Package store persists layout results so the HTTP API can hand out an
// ID and serve the frame again later.
//
// Two implementations are provided: [MemoryStore] for tests and single
// process use, and [MongoStore] for deployments.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/flowpack/pkg/errors"
	"github.com/matzehuels/flowpack/pkg/scene"
)

// Record is one stored layout result.
type Record struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	SceneHash string       `json:"scene_hash"`
	Frame     *scene.Frame `json:"frame"`
}

// NewRecord creates a record with a fresh random ID.
func NewRecord(sceneHash string, f *scene.Frame) *Record {
	return &Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		SceneHash: sceneHash,
		Frame:     f,
	}
}

// Store saves and loads records.
type Store interface {
	// Save stores rec under rec.ID, replacing any previous record.
	Save(ctx context.Context, rec *Record) error

	// Get loads a record. A missing record yields an error with code
	// NOT_FOUND; a malformed id yields INVALID_INPUT.
	Get(ctx context.Context, id string) (*Record, error)

	Close(ctx context.Context) error
}

// ValidateID checks that id is a UUID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid layout id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "layout %s not found", id)
}
