package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"vidshare/auth"
	"vidshare/httputil"
	"vidshare/models"
	"vidshare/store"
)

// Handler holds dependencies for user endpoints.
type Handler struct {
	Store      store.Store
	BcryptCost int
}

// HandleList lists all users with the password field stripped.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.Users().List(r.Context())
	if err != nil {
		httputil.WriteJSON(w, 500, map[string]string{"error": err.Error()})
		return
	}
	httputil.WriteJSON(w, 200, users)
}

// RegisterRequest is the JSON body for POST /users/register.
type RegisterRequest struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
}

// HandleRegister creates a new user with a hashed password. Duplicate keys
// answer 200 with success:false, by existing convention.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	httputil.MaxBody(r, httputil.DefaultBodyLimit)
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, 400, map[string]any{"success": false, "error": "invalid request body"})
		return
	}
	if req.UserID == "" || req.UserName == "" || req.Password == "" || req.Email == "" {
		httputil.WriteJSON(w, 400, map[string]any{"success": false, "error": "user_id, user_name, email, password required"})
		return
	}

	repo := h.Store.Users()
	if _, err := repo.FindByUserID(r.Context(), req.UserID); err == nil {
		httputil.WriteJSON(w, 200, map[string]any{"success": false, "error": "User Id already exists"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		httputil.WriteJSON(w, 500, map[string]any{"success": false, "error": err.Error()})
		return
	}
	if _, err := repo.FindByEmail(r.Context(), req.Email); err == nil {
		httputil.WriteJSON(w, 200, map[string]any{"success": false, "error": "Email already registered"})
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

	u := models.User{
		UserID:   req.UserID,
		UserName: req.UserName,
		Password: hashed,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Saved:    []models.SavedItem{},
	}
	if err := repo.Insert(r.Context(), &u); err != nil {
		// Unique-index backstop for the check-then-insert window.
		if errors.Is(err, store.ErrDuplicateKey) {
			httputil.WriteJSON(w, 200, map[string]any{"success": false, "error": "User Id already exists"})
			return
		}
		httputil.WriteJSON(w, 500, map[string]any{"success": false, "error": err.Error()})
		return
	}
	httputil.WriteJSON(w, 200, map[string]any{"success": true, "userid": u.UserID})
}

// LoginRequest is the JSON body for POST /users/login. Older clients send
// the user key under different names; all are accepted.
type LoginRequest struct {
	UserID    string `json:"user_id"`
	UserIDAlt string `json:"userid"`
	ID        string `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (req *LoginRequest) userKey() string {
	for _, v := range []string{req.UserID, req.UserIDAlt, req.ID} {
		if v != "" {
			return v
		}
	}
	return ""
}

// HandleLogin authenticates a user by user_id, falling back to email when no
// user key is present. Unknown user and wrong password answer identically
// so the API surface does not reveal which check failed.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	httputil.MaxBody(r, httputil.DefaultBodyLimit)
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, 400, map[string]any{"success": false, "error": "invalid request body"})
		return
	}

	key := req.userKey()
	if req.Password == "" || (key == "" && req.Email == "") {
		httputil.WriteJSON(w, 200, map[string]any{"success": false})
		return
	}

	var (
		u   *models.User
		err error
	)
	if key != "" {
		u, err = h.Store.Users().FindByUserID(r.Context(), key)
	} else {
		u, err = h.Store.Users().FindByEmail(r.Context(), req.Email)
	}
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteJSON(w, 200, map[string]any{"success": false})
		return
	}
	if err != nil {
		httputil.WriteJSON(w, 500, map[string]any{"success": false, "error": err.Error()})
		return
	}

	if !auth.VerifyPassword(req.Password, u.Password) {
		httputil.WriteJSON(w, 200, map[string]any{"success": false})
		return
	}
	httputil.WriteJSON(w, 200, map[string]any{"success": true, "userid": u.UserID})
}
