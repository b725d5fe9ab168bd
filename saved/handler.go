package saved

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vidshare/httputil"
	"vidshare/models"
	"vidshare/store"
)

// Handler holds dependencies for the per-user saved-videos endpoints.
type Handler struct {
	Store store.Store
}

// SaveForUser resolves the reference and either returns the user's existing
// entry for that identity or inserts a new snapshot. Repeated saves of the
// same resolved key are idempotent; the check and the insert are separate
// store operations, so two concurrent first saves can briefly both insert.
func (h *Handler) SaveForUser(ctx context.Context, userID string, ref VideoRef) (created bool, entry *models.SavedEntry, err error) {
	snap := Resolve(ctx, h.Store.Videos(), ref)
	field, value := dedupKey(snap)

	existing, err := h.Store.Saved().FindByUserAndKey(ctx, userID, field, value)
	if err == nil {
		return false, existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, nil, err
	}

	e := &models.SavedEntry{UserID: userID, Video: snap, CreatedAt: time.Now().UTC()}
	if err := h.Store.Saved().Insert(ctx, e); err != nil {
		return false, nil, err
	}
	return true, e, nil
}

// HandleList returns the user's saved entries, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	entries, err := h.Store.Saved().ListByUser(r.Context(), userID)
	if err != nil {
		httputil.WriteJSON(w, 500, map[string]any{"success": false, "error": err.Error()})
		return
	}
	httputil.WriteJSON(w, 200, entries)
}

// HandleSave saves a video snapshot for the user, avoiding duplicates.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	httputil.MaxBody(r, httputil.DefaultBodyLimit)
	userID := chi.URLParam(r, "userId")

	var body struct {
		Video *VideoRef `json:"video"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteJSON(w, 400, map[string]any{"success": false, "error": "invalid request body"})
		return
	}
	if body.Video == nil {
		httputil.WriteJSON(w, 400, map[string]any{"success": false, "error": "video required"})
		return
	}

	created, entry, err := h.SaveForUser(r.Context(), userID, *body.Video)
	if err != nil {
		httputil.WriteJSON(w, 500, map[string]any{"success": false, "error": err.Error()})
		return
	}
	if !created {
		httputil.WriteJSON(w, 200, map[string]any{"success": true, "message": "already saved", "saved": entry})
		return
	}
	httputil.WriteJSON(w, 200, map[string]any{"success": true, "saved": entry})
}

// HandleDelete removes one saved entry, scoped to its owner: the entry id
// and the user id must both match.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	savedID := chi.URLParam(r, "savedId")

	err := h.Store.Saved().Delete(r.Context(), userID, savedID)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteJSON(w, 404, map[string]any{"success": false, "error": "Saved not found"})
		return
	}
	if err != nil {
		httputil.WriteJSON(w, 500, map[string]any{"success": false, "error": err.Error()})
		return
	}
	httputil.WriteJSON(w, 200, map[string]any{"success": true})
}
