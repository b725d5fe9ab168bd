package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidshare/models"
)

// Memory is an in-process Store used as a test double. Unique keys are
// enforced the same way the Mongo indexes enforce them, so handler tests
// exercise the duplicate-key paths for real.
type Memory struct {
	mu         sync.RWMutex
	users      []models.User
	admins     []models.Admin
	categories []models.Category
	videos     []models.Video
	saved      []models.SavedEntry
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Users() UserRepo { return memUsers{m} }

func (m *Memory) Admins() AdminRepo { return memAdmins{m} }

func (m *Memory) Categories() CategoryRepo { return memCategories{m} }

func (m *Memory) Videos() VideoRepo { return memVideos{m} }

func (m *Memory) Saved() SavedRepo { return memSaved{m} }

// AddCategory seeds a category; the API itself is read-only for categories.
func (m *Memory) AddCategory(c models.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	m.categories = append(m.categories, c)
}

// --- users ---

type memUsers struct{ m *Memory }

func (r memUsers) List(_ context.Context) ([]models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]models.User, len(r.m.users))
	copy(out, r.m.users)
	return out, nil
}

func (r memUsers) FindByUserID(_ context.Context, userID string) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for i := range r.m.users {
		if r.m.users[i].UserID == userID {
			u := r.m.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for i := range r.m.users {
		if r.m.users[i].Email == email {
			u := r.m.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r memUsers) Insert(_ context.Context, u *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.users {
		if r.m.users[i].UserID == u.UserID || r.m.users[i].Email == u.Email {
			return ErrDuplicateKey
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.m.users = append(r.m.users, *u)
	return nil
}

// --- admins ---

type memAdmins struct{ m *Memory }

func (r memAdmins) List(_ context.Context) ([]models.Admin, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]models.Admin, len(r.m.admins))
	copy(out, r.m.admins)
	return out, nil
}

func (r memAdmins) FindByAdminID(_ context.Context, adminID string) (*models.Admin, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for i := range r.m.admins {
		if r.m.admins[i].AdminID == adminID {
			a := r.m.admins[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (r memAdmins) Insert(_ context.Context, a *models.Admin) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.admins {
		if r.m.admins[i].AdminID == a.AdminID {
			return ErrDuplicateKey
		}
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	r.m.admins = append(r.m.admins, *a)
	return nil
}

// --- categories ---

type memCategories struct{ m *Memory }

func (r memCategories) List(_ context.Context) ([]models.Category, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]models.Category, len(r.m.categories))
	copy(out, r.m.categories)
	return out, nil
}

// --- videos ---

type memVideos struct{ m *Memory }

func (r memVideos) List(_ context.Context) ([]models.Video, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]models.Video, len(r.m.videos))
	copy(out, r.m.videos)
	return out, nil
}

func (r memVideos) FindByObjectID(_ context.Context, hexID string) (*models.Video, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, ErrNotFound
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for i := range r.m.videos {
		if r.m.videos[i].ID == oid {
			v := r.m.videos[i]
			return &v, nil
		}
	}
	return nil, ErrNotFound
}

func (r memVideos) FindByVideoID(_ context.Context, videoID int64) (*models.Video, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for i := range r.m.videos {
		if r.m.videos[i].VideoID == videoID {
			v := r.m.videos[i]
			return &v, nil
		}
	}
	return nil, ErrNotFound
}

func (r memVideos) NextVideoID(_ context.Context) (int64, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var max int64
	for i := range r.m.videos {
		if r.m.videos[i].VideoID > max {
			max = r.m.videos[i].VideoID
		}
	}
	return max + 1, nil
}

func (r memVideos) Insert(_ context.Context, v *models.Video) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	r.m.videos = append(r.m.videos, *v)
	return nil
}

func applyVideoFields(v *models.Video, fields map[string]any) {
	for k, val := range fields {
		switch k {
		case "video_id":
			if n, ok := val.(int64); ok {
				v.VideoID = n
			}
		case "title":
			if s, ok := val.(string); ok {
				v.Title = s
			}
		case "description":
			if s, ok := val.(string); ok {
				v.Description = s
			}
		case "comments":
			if s, ok := val.(string); ok {
				v.Comments = s
			}
		case "url":
			if s, ok := val.(string); ok {
				v.URL = s
			}
		case "likes":
			if n, ok := val.(int64); ok {
				v.Likes = n
			}
		case "views":
			if n, ok := val.(int64); ok {
				v.Views = n
			}
		case "category_id":
			if n, ok := val.(int64); ok {
				v.CategoryID = n
			}
		}
	}
}

func (r memVideos) UpdateByObjectID(_ context.Context, hexID string, fields map[string]any) (*models.Video, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, ErrNotFound
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.videos {
		if r.m.videos[i].ID == oid {
			applyVideoFields(&r.m.videos[i], fields)
			v := r.m.videos[i]
			return &v, nil
		}
	}
	return nil, ErrNotFound
}

func (r memVideos) UpdateByVideoID(_ context.Context, videoID int64, fields map[string]any) (*models.Video, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.videos {
		if r.m.videos[i].VideoID == videoID {
			applyVideoFields(&r.m.videos[i], fields)
			v := r.m.videos[i]
			return &v, nil
		}
	}
	return nil, ErrNotFound
}

func (r memVideos) DeleteByObjectID(_ context.Context, hexID string) error {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return ErrNotFound
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.videos {
		if r.m.videos[i].ID == oid {
			r.m.videos = append(r.m.videos[:i], r.m.videos[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r memVideos) DeleteByVideoID(_ context.Context, videoID int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.videos {
		if r.m.videos[i].VideoID == videoID {
			r.m.videos = append(r.m.videos[:i], r.m.videos[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// --- saved ---

type memSaved struct{ m *Memory }

func (r memSaved) ListByUser(_ context.Context, userID string) ([]models.SavedEntry, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]models.SavedEntry, 0)
	// Walk backwards so equal timestamps keep insertion order, newest first.
	for i := len(r.m.saved) - 1; i >= 0; i-- {
		if r.m.saved[i].UserID == userID {
			out = append(out, r.m.saved[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func matchSnapshotKey(snap models.VideoSnapshot, field string, value any) bool {
	switch field {
	case "video_id":
		n, ok := value.(int64)
		return ok && snap.VideoID != nil && *snap.VideoID == n
	case "_id":
		s, ok := value.(string)
		return ok && snap.ObjectID == s
	case "url":
		s, ok := value.(string)
		return ok && snap.URL == s
	case "":
		return true
	}
	return false
}

func (r memSaved) FindByUserAndKey(_ context.Context, userID, field string, value any) (*models.SavedEntry, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for i := range r.m.saved {
		if r.m.saved[i].UserID == userID && matchSnapshotKey(r.m.saved[i].Video, field, value) {
			e := r.m.saved[i]
			return &e, nil
		}
	}
	return nil, ErrNotFound
}

func (r memSaved) Insert(_ context.Context, e *models.SavedEntry) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	r.m.saved = append(r.m.saved, *e)
	return nil
}

func (r memSaved) Delete(_ context.Context, userID, savedID string) error {
	oid, err := primitive.ObjectIDFromHex(savedID)
	if err != nil {
		return ErrNotFound
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.saved {
		if r.m.saved[i].ID == oid && r.m.saved[i].UserID == userID {
			r.m.saved = append(r.m.saved[:i], r.m.saved[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
