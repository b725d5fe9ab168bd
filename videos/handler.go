package videos

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vidshare/coerce"
	"vidshare/httputil"
	"vidshare/models"
	"vidshare/store"
)

// Handler holds dependencies for video CRUD endpoints.
type Handler struct {
	Store store.Store
}

// payload is the write shape for create and update. Numeric fields are
// decoded loosely and coerced, string fields are pointers so an update only
// touches what the client sent.
type payload struct {
	VideoID     any     `json:"video_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Comments    *string `json:"comments"`
	URL         *string `json:"url"`
	Likes       any     `json:"likes"`
	Views       any     `json:"views"`
	CategoryID  any     `json:"category_id"`
}

// fields returns the set of provided fields with numbers coerced.
func (p *payload) fields() map[string]any {
	out := map[string]any{}
	if n, ok := coerce.Int64(p.VideoID); ok {
		out["video_id"] = n
	}
	if p.Title != nil {
		out["title"] = *p.Title
	}
	if p.Description != nil {
		out["description"] = *p.Description
	}
	if p.Comments != nil {
		out["comments"] = *p.Comments
	}
	if p.URL != nil {
		out["url"] = *p.URL
	}
	if n, ok := coerce.Int64(p.Likes); ok {
		out["likes"] = n
	}
	if n, ok := coerce.Int64(p.Views); ok {
		out["views"] = n
	}
	if n, ok := coerce.Int64(p.CategoryID); ok {
		out["category_id"] = n
	}
	return out
}

// HandleList lists all videos.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	videos, err := h.Store.Videos().List(r.Context())
	if err != nil {
		httputil.WriteJSON(w, 500, map[string]string{"error": err.Error()})
		return
	}
	httputil.WriteJSON(w, 200, videos)
}

// HandleGet returns a single video. The id is tried as the store-native id
// first, then as a numeric video_id.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	repo := h.Store.Videos()

	v, err := repo.FindByObjectID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		if n, convErr := strconv.ParseInt(id, 10, 64); convErr == nil {
			v, err = repo.FindByVideoID(r.Context(), n)
		}
	}
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteJSON(w, 404, map[string]string{"error": "Video not found"})
		return
	}
	if err != nil {
		httputil.WriteJSON(w, 500, map[string]string{"error": err.Error()})
		return
	}
	httputil.WriteJSON(w, 200, v)
}

// HandleCreate inserts a new video, assigning video_id as max+1 when the
// payload carries none.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	httputil.MaxBody(r, httputil.DefaultBodyLimit)
	var p payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httputil.WriteJSON(w, 400, map[string]any{"success": false, "error": "invalid request body"})
		return
	}

	repo := h.Store.Videos()
	v := models.Video{}
	if p.Title != nil {
		v.Title = *p.Title
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.Comments != nil {
		v.Comments = *p.Comments
	}
	if p.URL != nil {
		v.URL = *p.URL
	}
	if n, ok := coerce.Int64(p.Likes); ok {
		v.Likes = n
	}
	if n, ok := coerce.Int64(p.Views); ok {
		v.Views = n
	}
	if n, ok := coerce.Int64(p.CategoryID); ok {
		v.CategoryID = n
	}

	if n, ok := coerce.Int64(p.VideoID); ok && n != 0 {
		v.VideoID = n
	} else {
		next, err := repo.NextVideoID(r.Context())
		if err != nil {
			httputil.WriteJSON(w, 500, map[string]any{"success": false, "error": err.Error()})
			return
		}
		v.VideoID = next
	}

	if err := repo.Insert(r.Context(), &v); err != nil {
		httputil.WriteJSON(w, 500, map[string]any{"success": false, "error": err.Error()})
		return
	}
	httputil.WriteJSON(w, 200, map[string]any{"success": true, "video": v})
}

// HandleUpdate updates a video by store-native id or numeric video_id.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	httputil.MaxBody(r, httputil.DefaultBodyLimit)
	id := chi.URLParam(r, "id")
	var p payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httputil.WriteJSON(w, 400, map[string]any{"success": false, "error": "invalid request body"})
		return
	}
	fields := p.fields()
	repo := h.Store.Videos()

	v, err := repo.UpdateByObjectID(r.Context(), id, fields)
	if errors.Is(err, store.ErrNotFound) {
		if n, convErr := strconv.ParseInt(id, 10, 64); convErr == nil {
			v, err = repo.UpdateByVideoID(r.Context(), n, fields)
		}
	}
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteJSON(w, 404, map[string]string{"error": "Video not found for update"})
		return
	}
	if err != nil {
		httputil.WriteJSON(w, 500, map[string]any{"success": false, "error": err.Error()})
		return
	}
	httputil.WriteJSON(w, 200, map[string]any{"success": true, "video": v})
}

// HandleDelete removes a video by store-native id or numeric video_id.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	repo := h.Store.Videos()

	err := repo.DeleteByObjectID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		if n, convErr := strconv.ParseInt(id, 10, 64); convErr == nil {
			err = repo.DeleteByVideoID(r.Context(), n)
		}
	}
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteJSON(w, 404, map[string]string{"error": "Video not found for delete"})
		return
	}
	if err != nil {
		httputil.WriteJSON(w, 500, map[string]any{"success": false, "error": err.Error()})
		return
	}
	httputil.WriteJSON(w, 200, map[string]any{"success": true})
}
