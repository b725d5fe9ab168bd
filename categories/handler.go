package categories

import (
	"net/http"

	"vidshare/httputil"
	"vidshare/store"
)

// Handler serves the read-only category listing.
type Handler struct {
	Store store.Store
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.Categories().List(r.Context())
	if err != nil {
		httputil.WriteJSON(w, 500, map[string]string{"error": err.Error()})
		return
	}
	httputil.WriteJSON(w, 200, categories)
}
