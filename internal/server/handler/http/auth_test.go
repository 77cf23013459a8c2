package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/taskmanager/api/internal/apperrors"
	"github.com/taskmanager/api/internal/service"
)

// fakeAuthService implements AuthService for testing.
type fakeAuthService struct {
	result service.AuthResult
	err    error
}

func (f *fakeAuthService) Register(ctx context.Context, username, email, password string) (service.AuthResult, error) {
	return f.result, f.err
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (service.AuthResult, error) {
	return f.result, f.err
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *fakeAuthService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "invalid JSON",
			body:           `not a json`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "invalid request",
		},
		{
			name:           "duplicate username",
			body:           `{"username":"alice","email":"a@x.com","password":"pw"}`,
			service:        &fakeAuthService{err: apperrors.ErrDuplicateUsername},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "username already exists",
		},
		{
			name:           "duplicate email",
			body:           `{"username":"alice","email":"a@x.com","password":"pw"}`,
			service:        &fakeAuthService{err: apperrors.ErrDuplicateEmail},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "email already exists",
		},
		{
			name:           "blank fields",
			body:           `{"username":"","email":"","password":""}`,
			service:        &fakeAuthService{err: apperrors.ErrValidation},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "validation failed",
		},
		{
			name:           "store failure",
			body:           `{"username":"alice","email":"a@x.com","password":"pw"}`,
			service:        &fakeAuthService{err: errors.New("db down")},
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: "internal error",
		},
		{
			name: "success",
			body: `{"username":"alice","email":"a@x.com","password":"pw"}`,
			service: &fakeAuthService{result: service.AuthResult{
				Token: "tok", Username: "alice", UserID: "u-1",
			}},
			expectedCode:   http.StatusOK,
			expectedSubstr: `"token":"tok"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service}
			h.Register(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}

			buf := new(bytes.Buffer)
			if _, err := buf.ReadFrom(res.Body); err != nil {
				t.Fatalf("failed to read body: %v", err)
			}
			if !bytes.Contains(buf.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, buf.String())
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeAuthService
		expectedCode int
	}{
		{
			name:         "invalid JSON",
			body:         `{{`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid credentials",
			body:         `{"username":"alice","password":"wrong"}`,
			service:      &fakeAuthService{err: apperrors.ErrInvalidCredentials},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "store failure",
			body:         `{"username":"alice","password":"pw"}`,
			service:      &fakeAuthService{err: errors.New("db down")},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name: "success",
			body: `{"username":"alice","password":"pw"}`,
			service: &fakeAuthService{result: service.AuthResult{
				Token: "tok", Username: "alice", UserID: "u-1",
			}},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service}
			h.Login(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}

			if tt.expectedCode == http.StatusOK {
				var result service.AuthResult
				if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if result != tt.service.result {
					t.Errorf("response = %+v; want %+v", result, tt.service.result)
				}
			}
		})
	}
}

// A wrong password and an unknown username must produce byte-identical
// responses so the API never discloses which part was wrong.
func TestAuthHandler_LoginFailuresIdentical(t *testing.T) {
	h := &AuthHandler{AuthService: &fakeAuthService{err: apperrors.ErrInvalidCredentials}}

	responses := make([]string, 0, 2)
	for _, body := range []string{
		`{"username":"ghost","password":"pw"}`,
		`{"username":"alice","password":"wrong"}`,
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(body))
		h.Login(rec, req)
		res := rec.Result()
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(res.Body)
		res.Body.Close()
		if res.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", res.StatusCode)
		}
		responses = append(responses, buf.String())
	}
	if responses[0] != responses[1] {
		t.Errorf("login failure bodies differ: %q vs %q", responses[0], responses[1])
	}
}
