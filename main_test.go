package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"vidshare/models"
	"vidshare/store"
)

// --- helpers ---

func newTestRouter(t *testing.T) (chi.Router, *store.Memory) {
	t.Helper()
	m := store.NewMemory()
	return newRouter(m, Config{Port: "0", BcryptCost: bcrypt.MinCost}), m
}

func doJSON(t *testing.T, r chi.Router, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var b []byte
	if body != nil {
		var err error
		if b, err = json.Marshal(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, url, bytes.NewReader(b))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&m); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	return m
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var l []map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&l); err != nil {
		t.Fatalf("decode json list: %v", err)
	}
	return l
}

// --- routing ---

func TestRootOK(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := doJSON(t, r, "GET", "/", nil)
	if rec.Code != 200 || rec.Body.String() != "API OK" {
		t.Fatalf("GET / = %d %q", rec.Code, rec.Body.String())
	}
}

func TestNotFoundPlainText(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := doJSON(t, r, "GET", "/nope", nil)
	if rec.Code != 404 {
		t.Fatalf("GET /nope = %d, want 404", rec.Code)
	}
	if got := rec.Body.String(); got != "Cannot GET /nope" {
		t.Fatalf("404 body = %q, want %q", got, "Cannot GET /nope")
	}
}

func TestSingularAndPluralPrefixesResolveIdentically(t *testing.T) {
	r, _ := newTestRouter(t)

	body := map[string]string{"user_id": "u1", "user_name": "Uma", "password": "pw123", "email": "uma@test.com"}
	rec := doJSON(t, r, "POST", "/user/register", body)
	if resp := decodeMap(t, rec); resp["success"] != true {
		t.Fatalf("register via singular prefix: %d %v", rec.Code, resp)
	}

	login := map[string]string{"user_id": "u1", "password": "pw123"}
	rec = doJSON(t, r, "POST", "/users/login", login)
	if resp := decodeMap(t, rec); resp["success"] != true {
		t.Fatalf("login via plural prefix: %v", resp)
	}

	rec = doJSON(t, r, "POST", "/admin/register", map[string]string{"admin_id": "root", "password": "pw"})
	if resp := decodeMap(t, rec); resp["success"] != true {
		t.Fatalf("admin register via singular prefix: %v", resp)
	}
	rec = doJSON(t, r, "POST", "/admins/login", map[string]string{"admin_id": "root", "password": "pw"})
	if resp := decodeMap(t, rec); resp["success"] != true {
		t.Fatalf("admin login via plural prefix: %v", resp)
	}
}

func TestCategoriesListing(t *testing.T) {
	r, m := newTestRouter(t)
	m.AddCategory(models.Category{CategoryID: 1, CategoryName: "Music"})
	m.AddCategory(models.Category{CategoryID: 2, CategoryName: "Sports"})

	rec := doJSON(t, r, "GET", "/categories", nil)
	if rec.Code != 200 {
		t.Fatalf("GET /categories = %d", rec.Code)
	}
	if got := decodeList(t, rec); len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
}

// --- end to end ---

func TestSavedEndToEnd(t *testing.T) {
	r, _ := newTestRouter(t)

	save := map[string]interface{}{"video": map[string]interface{}{"video_id": 10, "url": "http://x"}}
	rec := doJSON(t, r, "POST", "/users/u1/saved", save)
	if resp := decodeMap(t, rec); rec.Code != 200 || resp["success"] != true {
		t.Fatalf("save: %d %v", rec.Code, resp)
	}

	rec = doJSON(t, r, "GET", "/users/u1/saved", nil)
	entries := decodeList(t, rec)
	if len(entries) != 1 {
		t.Fatalf("expected 1 saved entry, got %d", len(entries))
	}
	video := entries[0]["video"].(map[string]interface{})
	if got := video["video_id"].(float64); got != 10 {
		t.Fatalf("saved video_id = %v, want 10", got)
	}

	// Repeating the save leaves the list unchanged.
	doJSON(t, r, "POST", "/users/u1/saved", save)
	rec = doJSON(t, r, "GET", "/users/u1/saved", nil)
	if entries := decodeList(t, rec); len(entries) != 1 {
		t.Fatalf("repeat save grew the list to %d", len(entries))
	}
}

func TestVideoCRUDEndToEnd(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, "POST", "/videos", map[string]interface{}{"title": "clip", "url": "http://v", "category_id": 3})
	resp := decodeMap(t, rec)
	if rec.Code != 200 || resp["success"] != true {
		t.Fatalf("create: %d %v", rec.Code, resp)
	}
	video := resp["video"].(map[string]interface{})
	if video["video_id"].(float64) != 1 {
		t.Fatalf("first video_id = %v", video["video_id"])
	}

	rec = doJSON(t, r, "GET", "/videos/1", nil)
	if rec.Code != 200 {
		t.Fatalf("get: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, "PUT", "/videos/1", map[string]interface{}{"likes": "7"})
	resp = decodeMap(t, rec)
	updated := resp["video"].(map[string]interface{})
	if updated["likes"].(float64) != 7 {
		t.Fatalf("update likes = %v", updated["likes"])
	}

	rec = doJSON(t, r, "DELETE", "/video/1", nil) // singular alias
	if resp := decodeMap(t, rec); resp["success"] != true {
		t.Fatalf("delete via singular alias: %v", resp)
	}
	rec = doJSON(t, r, "GET", "/videos/1", nil)
	if rec.Code != 404 {
		t.Fatalf("get after delete = %d, want 404", rec.Code)
	}
}
