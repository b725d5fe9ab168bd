// Package store defines the persistence interfaces for the five backing
// collections and provides a MongoDB implementation plus an in-memory one
// for tests.
package store

import (
	"context"
	"errors"

	"vidshare/models"
)

var (
	// ErrNotFound is returned when no document matches the given key.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateKey is returned when an insert violates a unique index.
	ErrDuplicateKey = errors.New("store: duplicate key")
)

// Store gives access to one repository per collection. Handlers receive a
// Store explicitly so tests can swap in the in-memory implementation.
type Store interface {
	Users() UserRepo
	Admins() AdminRepo
	Categories() CategoryRepo
	Videos() VideoRepo
	Saved() SavedRepo
}

type UserRepo interface {
	List(ctx context.Context) ([]models.User, error)
	FindByUserID(ctx context.Context, userID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) error
}

type AdminRepo interface {
	List(ctx context.Context) ([]models.Admin, error)
	FindByAdminID(ctx context.Context, adminID string) (*models.Admin, error)
	Insert(ctx context.Context, a *models.Admin) error
}

type CategoryRepo interface {
	List(ctx context.Context) ([]models.Category, error)
}

type VideoRepo interface {
	List(ctx context.Context) ([]models.Video, error)
	// FindByObjectID resolves the store-native hex id. An unparseable id
	// is reported as ErrNotFound, matching the dual-lookup convention.
	FindByObjectID(ctx context.Context, hexID string) (*models.Video, error)
	FindByVideoID(ctx context.Context, videoID int64) (*models.Video, error)
	// NextVideoID returns max(existing video_id)+1, or 1 on an empty
	// collection. The read and the subsequent insert are not atomic; see
	// DESIGN.md for why the window is accepted.
	NextVideoID(ctx context.Context) (int64, error)
	Insert(ctx context.Context, v *models.Video) error
	UpdateByObjectID(ctx context.Context, hexID string, fields map[string]any) (*models.Video, error)
	UpdateByVideoID(ctx context.Context, videoID int64, fields map[string]any) (*models.Video, error)
	DeleteByObjectID(ctx context.Context, hexID string) error
	DeleteByVideoID(ctx context.Context, videoID int64) error
}

type SavedRepo interface {
	// ListByUser returns the user's saved entries, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.SavedEntry, error)
	// FindByUserAndKey matches one snapshot field ("video_id", "_id" or
	// "url") scoped to the user. An empty field matches any entry of the
	// user, mirroring the engine's no-usable-key fallback.
	FindByUserAndKey(ctx context.Context, userID, field string, value any) (*models.SavedEntry, error)
	Insert(ctx context.Context, e *models.SavedEntry) error
	// Delete removes the entry matching both ids; ErrNotFound when either
	// does not match, so one user cannot delete another's entry.
	Delete(ctx context.Context, userID, savedID string) error
}
