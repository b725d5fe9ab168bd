package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"vidshare/models"
	"vidshare/store"
)

func newTestHandler() (*Handler, *store.Memory) {
	m := store.NewMemory()
	return &Handler{Store: m, BcryptCost: bcrypt.MinCost}, m
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&m); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	return m
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRegisterAndLogin(t *testing.T) {
	h, m := newTestHandler()

	rec := post(h.HandleRegister, `{"user_id":"u1","user_name":"Uma","password":"pw123","email":"uma@test.com"}`)
	if rec.Code != 200 {
		t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}
	resp := decodeJSON(t, rec)
	if resp["success"] != true || resp["userid"] != "u1" {
		t.Fatalf("register response: %v", resp)
	}

	// Password must be stored hashed, not verbatim.
	u, err := m.Users().FindByUserID(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if u.Password == "pw123" || !strings.HasPrefix(u.Password, "$2") {
		t.Fatalf("password stored unhashed: %q", u.Password)
	}

	rec = post(h.HandleLogin, `{"user_id":"u1","password":"pw123"}`)
	resp = decodeJSON(t, rec)
	if rec.Code != 200 || resp["success"] != true || resp["userid"] != "u1" {
		t.Fatalf("login: %d %v", rec.Code, resp)
	}
}

func TestRegisterValidation(t *testing.T) {
	h, _ := newTestHandler()

	rec := post(h.HandleRegister, `{"user_id":"u1","password":"pw"}`)
	if rec.Code != 400 {
		t.Fatalf("incomplete register: got %d, want 400", rec.Code)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	h, m := newTestHandler()

	post(h.HandleRegister, `{"user_id":"u1","user_name":"Uma","password":"pw","email":"uma@test.com"}`)

	rec := post(h.HandleRegister, `{"user_id":"u1","user_name":"Other","password":"pw","email":"other@test.com"}`)
	resp := decodeJSON(t, rec)
	if rec.Code != 200 || resp["success"] != false || resp["error"] != "User Id already exists" {
		t.Fatalf("duplicate user_id: %d %v", rec.Code, resp)
	}

	rec = post(h.HandleRegister, `{"user_id":"u2","user_name":"Other","password":"pw","email":"uma@test.com"}`)
	resp = decodeJSON(t, rec)
	if rec.Code != 200 || resp["success"] != false || resp["error"] != "Email already registered" {
		t.Fatalf("duplicate email: %d %v", rec.Code, resp)
	}

	users, _ := m.Users().List(context.Background())
	if len(users) != 1 {
		t.Fatalf("duplicate registration created a record: %d users", len(users))
	}
}

func TestLoginFailureIsUniform(t *testing.T) {
	h, _ := newTestHandler()
	post(h.HandleRegister, `{"user_id":"u1","user_name":"Uma","password":"pw123","email":"uma@test.com"}`)

	unknownUser := post(h.HandleLogin, `{"user_id":"nobody","password":"pw123"}`)
	wrongPassword := post(h.HandleLogin, `{"user_id":"u1","password":"wrong"}`)

	if unknownUser.Code != 200 || wrongPassword.Code != 200 {
		t.Fatalf("auth failures must stay HTTP 200: %d, %d", unknownUser.Code, wrongPassword.Code)
	}
	if unknownUser.Body.String() != wrongPassword.Body.String() {
		t.Fatalf("responses must not reveal which check failed: %q vs %q",
			unknownUser.Body.String(), wrongPassword.Body.String())
	}
}

func TestLoginByEmailFallback(t *testing.T) {
	h, _ := newTestHandler()
	post(h.HandleRegister, `{"user_id":"u1","user_name":"Uma","password":"pw123","email":"uma@test.com"}`)

	rec := post(h.HandleLogin, `{"email":"uma@test.com","password":"pw123"}`)
	if resp := decodeJSON(t, rec); resp["success"] != true {
		t.Fatalf("email login: %v", resp)
	}
}

func TestLoginFieldAliases(t *testing.T) {
	h, _ := newTestHandler()
	post(h.HandleRegister, `{"user_id":"u1","user_name":"Uma","password":"pw123","email":"uma@test.com"}`)

	for _, body := range []string{
		`{"userid":"u1","password":"pw123"}`,
		`{"id":"u1","password":"pw123"}`,
	} {
		rec := post(h.HandleLogin, body)
		if resp := decodeJSON(t, rec); resp["success"] != true {
			t.Fatalf("alias login %s: %v", body, resp)
		}
	}
}

func TestLoginLegacyPlaintextRecord(t *testing.T) {
	h, m := newTestHandler()
	legacy := models.User{UserID: "old", UserName: "Old", Password: "plain-secret", Email: "old@test.com"}
	if err := m.Users().Insert(context.Background(), &legacy); err != nil {
		t.Fatal(err)
	}

	rec := post(h.HandleLogin, `{"user_id":"old","password":"plain-secret"}`)
	if resp := decodeJSON(t, rec); resp["success"] != true {
		t.Fatalf("legacy plaintext login: %v", resp)
	}

	rec = post(h.HandleLogin, `{"user_id":"old","password":"other"}`)
	if resp := decodeJSON(t, rec); resp["success"] != false {
		t.Fatalf("legacy plaintext login with wrong password: %v", resp)
	}
}

func TestListStripsPasswords(t *testing.T) {
	h, _ := newTestHandler()
	post(h.HandleRegister, `{"user_id":"u1","user_name":"Uma","password":"pw123","email":"uma@test.com"}`)

	req := httptest.NewRequest("GET", "/users", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)
	if rec.Code != 200 {
		t.Fatalf("list: %d %s", rec.Code, rec.Body.String())
	}
	var out []map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 user, got %d", len(out))
	}
	if _, leaked := out[0]["password"]; leaked {
		t.Fatalf("password leaked in listing: %v", out[0])
	}
}
