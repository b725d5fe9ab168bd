package admins

import (
	"encoding/json"
	"errors"
	"net/http"

	"vidshare/auth"
	"vidshare/httputil"
	"vidshare/models"
	"vidshare/store"
)

// Handler holds dependencies for admin endpoints.
type Handler struct {
	Store      store.Store
	BcryptCost int
}

// HandleList lists all admins with the password field stripped.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	admins, err := h.Store.Admins().List(r.Context())
	if err != nil {
		httputil.WriteJSON(w, 500, map[string]string{"error": err.Error()})
		return
	}
	httputil.WriteJSON(w, 200, admins)
}

type credentialsRequest struct {
	AdminID  string `json:"admin_id"`
	Password string `json:"password"`
}

// HandleRegister creates a new admin with a hashed password.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	httputil.MaxBody(r, httputil.DefaultBodyLimit)
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, 400, map[string]any{"success": false, "error": "invalid request body"})
		return
	}
	if req.AdminID == "" || req.Password == "" {
		httputil.WriteJSON(w, 400, map[string]any{"success": false, "error": "admin_id + password required"})
		return
	}

	repo := h.Store.Admins()
	if _, err := repo.FindByAdminID(r.Context(), req.AdminID); err == nil {
		httputil.WriteJSON(w, 200, map[string]any{"success": false, "error": "Admin Id already exists"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		httputil.WriteJSON(w, 500, map[string]any{"success": false, "error": err.Error()})
		return
	}

	hashed, err := auth.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		httputil.WriteJSON(w, 500, map[string]any{"success": false, "error": "failed to hash password"})
		return
	}

	a := models.Admin{AdminID: req.AdminID, Password: hashed}
	if err := repo.Insert(r.Context(), &a); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			httputil.WriteJSON(w, 200, map[string]any{"success": false, "error": "Admin Id already exists"})
			return
		}
		httputil.WriteJSON(w, 500, map[string]any{"success": false, "error": err.Error()})
		return
	}
	httputil.WriteJSON(w, 200, map[string]any{"success": true, "admin_id": a.AdminID})
}

// HandleLogin authenticates an admin. Unknown admin and wrong password
// answer identically.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	httputil.MaxBody(r, httputil.DefaultBodyLimit)
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, 400, map[string]any{"success": false, "error": "invalid request body"})
		return
	}
	if req.AdminID == "" || req.Password == "" {
		httputil.WriteJSON(w, 200, map[string]any{"success": false, "error": "admin_id + password required"})
		return
	}

	a, err := h.Store.Admins().FindByAdminID(r.Context(), req.AdminID)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteJSON(w, 200, map[string]any{"success": false})
		return
	}
	if err != nil {
		httputil.WriteJSON(w, 500, map[string]any{"success": false, "error": err.Error()})
		return
	}

	if !auth.VerifyPassword(req.Password, a.Password) {
		httputil.WriteJSON(w, 200, map[string]any{"success": false})
		return
	}
	httputil.WriteJSON(w, 200, map[string]any{"success": true, "admin_id": a.AdminID})
}
