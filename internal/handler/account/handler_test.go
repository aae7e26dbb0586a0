package account

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/interviai/backend/internal/model/user"
	accountservice "github.com/interviai/backend/internal/service/account"
)

func setupRouter() (*chi.Mux, *accountservice.Service) {
	svc := accountservice.NewService(user.NewMemoryStore(), "test-secret")
	handler := New(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, svc
}

func postJSON(t *testing.T, r http.Handler, path string, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateUser(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(t, r, "/user/create", map[string]string{
		"email":    "jane@example.com",
		"password": "hunter2",
		"name":     "Jane",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Message string    `json:"message"`
		Token   string    `json:"token"`
		User    user.User `json:"user"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "User created" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.Token == "" {
		t.Fatal("expected session token")
	}
	if body.User.Email != "jane@example.com" {
		t.Fatalf("unexpected email %q", body.User.Email)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	r, _ := setupRouter()

	creds := map[string]string{"email": "jane@example.com", "password": "hunter2"}
	if resp := postJSON(t, r, "/user/create", creds); resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if resp := postJSON(t, r, "/user/create", creds); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate, got %d", resp.Code)
	}
}

func TestCreateUserWhitespaceEmail(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(t, r, "/user/create", map[string]string{
		"email":    "   ",
		"password": "hunter2",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank email, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	r, _ := setupRouter()

	postJSON(t, r, "/user/create", map[string]string{"email": "jane@example.com", "password": "hunter2"})

	resp := postJSON(t, r, "/user/login", map[string]string{"email": "jane@example.com", "password": "wrong"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGetUserRequiresToken(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/user/some-id", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestGetUserWithToken(t *testing.T) {
	r, _ := setupRouter()

	created := postJSON(t, r, "/user/create", map[string]string{
		"email":    "jane@example.com",
		"password": "hunter2",
	})
	var body struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/user/"+body.User.ID, nil)
	req.Header.Set("Authorization", "Bearer "+body.Token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var profile map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile["email"] != "jane@example.com" {
		t.Fatalf("unexpected profile %v", profile)
	}
}

func TestGetUserForeignIDForbidden(t *testing.T) {
	r, _ := setupRouter()

	created := postJSON(t, r, "/user/create", map[string]string{
		"email":    "jane@example.com",
		"password": "hunter2",
	})
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/user/someone-else", nil)
	req.Header.Set("Authorization", "Bearer "+body.Token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign user id, got %d", resp.Code)
	}
}

func TestUpdateUserResumeSummary(t *testing.T) {
	r, _ := setupRouter()

	created := postJSON(t, r, "/user/create", map[string]string{
		"email":    "jane@example.com",
		"password": "hunter2",
	})
	var body struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	payload, _ := json.Marshal(map[string]string{"resumeSummary": "Senior backend engineer"})
	req := httptest.NewRequest(http.MethodPatch, "/user/"+body.User.ID, bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+body.Token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}
