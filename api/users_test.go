package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/garnizeh/jobportal/api"
	"github.com/garnizeh/jobportal/pkg/models"
	"github.com/garnizeh/jobportal/pkg/repository/mock"
)

func usersRouter(m *mock.Mocks) *mux.Router {
	h := api.NewUsersHandler(m.UserRepo)
	r := mux.NewRouter()
	r.HandleFunc("/users/{email}", h.GetUser).Methods("GET")
	r.HandleFunc("/users", h.CreateUser).Methods("POST")
	r.HandleFunc("/users", h.UpsertUser).Methods("PATCH")
	return r
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) (*http.Response, testEnvelope) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			bodyReader = bytes.NewReader([]byte(s))
		} else {
			b, _ := json.Marshal(body)
			bodyReader = bytes.NewReader(b)
		}
	}
	req := httptest.NewRequest(method, path, bodyReader)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	res := w.Result()
	t.Cleanup(func() { res.Body.Close() })

	var env testEnvelope
	data, _ := io.ReadAll(res.Body)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &env); err != nil {
			t.Fatalf("unmarshal envelope: %v body=%s", err, string(data))
		}
	}
	return res, env
}

func TestUserHandlers(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		prepare    func(m *mock.Mocks)
		wantStatus int
		check      func(t *testing.T, env testEnvelope)
	}{
		{
			name:       "GetUser_NotFound",
			method:     http.MethodGet,
			path:       "/users/missing@x.com",
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "GetUser_Found",
			method: http.MethodGet,
			path:   "/users/a@x.com",
			prepare: func(m *mock.Mocks) {
				m.UserRepo.Stored = &models.User{Email: "a@x.com", Name: "A"}
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, env testEnvelope) {
				var u models.User
				if err := json.Unmarshal(env.Data, &u); err != nil {
					t.Fatalf("unmarshal user: %v", err)
				}
				if u.Email != "a@x.com" || u.Name != "A" {
					t.Fatalf("unexpected user: %#v", u)
				}
			},
		},
		{
			name:       "CreateUser_InvalidJSON",
			method:     http.MethodPost,
			path:       "/users",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "CreateUser_MissingEmail",
			method:     http.MethodPost,
			path:       "/users",
			body:       map[string]string{"name": "A"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "CreateUser_Success",
			method:     http.MethodPost,
			path:       "/users",
			body:       map[string]string{"email": "a@x.com", "name": "A"},
			wantStatus: http.StatusCreated,
		},
		{
			name:   "CreateUser_DuplicateEmail",
			method: http.MethodPost,
			path:   "/users",
			body:   map[string]string{"email": "a@x.com", "name": "A"},
			prepare: func(m *mock.Mocks) {
				m.UserRepo.Stored = &models.User{Email: "a@x.com", Name: "A"}
			},
			wantStatus: http.StatusConflict,
			check: func(t *testing.T, env testEnvelope) {
				if env.Success {
					t.Fatalf("expected success=false")
				}
				if env.Error == "" {
					t.Fatalf("expected error message")
				}
			},
		},
		{
			name:       "UpsertUser_MissingEmail",
			method:     http.MethodPatch,
			path:       "/users",
			body:       map[string]string{"name": "A"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "UpsertUser_Created",
			method:     http.MethodPatch,
			path:       "/users",
			body:       map[string]string{"email": "a@x.com", "name": "A"},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, env testEnvelope) {
				assertOutcome(t, env, models.OutcomeCreated)
			},
		},
		{
			name:   "UpsertUser_Updated",
			method: http.MethodPatch,
			path:   "/users",
			body:   map[string]string{"email": "a@x.com", "photo": "p"},
			prepare: func(m *mock.Mocks) {
				m.UserRepo.UpsertOutcome = models.OutcomeUpdated
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, env testEnvelope) {
				assertOutcome(t, env, models.OutcomeUpdated)
			},
		},
		{
			name:   "UpsertUser_Login",
			method: http.MethodPatch,
			path:   "/users",
			body:   map[string]string{"email": "a@x.com", "name": "A"},
			prepare: func(m *mock.Mocks) {
				m.UserRepo.UpsertOutcome = models.OutcomeLoginNoop
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, env testEnvelope) {
				assertOutcome(t, env, models.OutcomeLoginNoop)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			if tt.prepare != nil {
				tt.prepare(mocks)
			}

			res, env := doJSON(t, usersRouter(mocks), tt.method, tt.path, tt.body)
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d got %d (message=%q error=%q)", tt.wantStatus, res.StatusCode, env.Message, env.Error)
			}
			if tt.check != nil {
				tt.check(t, env)
			}
		})
	}
}

func assertOutcome(t *testing.T, env testEnvelope, want models.UpsertOutcome) {
	t.Helper()

	var resp struct {
		Outcome models.UpsertOutcome `json:"outcome"`
	}
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("unmarshal outcome: %v", err)
	}
	if resp.Outcome != want {
		t.Fatalf("expected outcome %q got %q", want, resp.Outcome)
	}
}
