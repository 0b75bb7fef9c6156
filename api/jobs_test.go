package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gorilla/mux"

	"github.com/garnizeh/jobportal/api"
	"github.com/garnizeh/jobportal/pkg/models"
	"github.com/garnizeh/jobportal/pkg/repository/mock"
)

func jobsRouter(m *mock.Mocks) *mux.Router {
	h := api.NewJobsHandler(m.JobRepo)
	r := mux.NewRouter()
	r.HandleFunc("/jobs", h.ListJobs).Methods("GET")
	r.HandleFunc("/jobs", h.CreateJobs).Methods("POST")
	r.HandleFunc("/job/{id}", h.UpdateJob).Methods("PUT")
	r.HandleFunc("/jobs/{id}", h.DeleteJob).Methods("DELETE")
	return r
}

func TestJobHandlers(t *testing.T) {
	seed := func(m *mock.Mocks) {
		m.JobRepo.Jobs = map[string]*models.Job{
			"j1": {ID: "j1", HREmail: "hr@acme.com", Title: "Backend Engineer"},
			"j2": {ID: "j2", HREmail: "hr@other.com", Title: "Designer"},
		}
	}

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
			name:       "ListJobs_Empty",
			method:     http.MethodGet,
			path:       "/jobs",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, env testEnvelope) {
				var jobs []models.Job
				if err := json.Unmarshal(env.Data, &jobs); err != nil {
					t.Fatalf("unmarshal jobs: %v", err)
				}
				if len(jobs) != 0 {
					t.Fatalf("expected empty list, got %d", len(jobs))
				}
			},
		},
		{
			name:       "ListJobs_All",
			method:     http.MethodGet,
			path:       "/jobs",
			prepare:    seed,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, env testEnvelope) {
				var jobs []models.Job
				if err := json.Unmarshal(env.Data, &jobs); err != nil {
					t.Fatalf("unmarshal jobs: %v", err)
				}
				if len(jobs) != 2 {
					t.Fatalf("expected 2 jobs, got %d", len(jobs))
				}
			},
		},
		{
			name:       "ListJobs_ByID",
			method:     http.MethodGet,
			path:       "/jobs?id=j1",
			prepare:    seed,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, env testEnvelope) {
				var j models.Job
				if err := json.Unmarshal(env.Data, &j); err != nil {
					t.Fatalf("unmarshal job: %v", err)
				}
				if j.ID != "j1" {
					t.Fatalf("expected job j1, got %q", j.ID)
				}
			},
		},
		{
			name:       "ListJobs_ByID_NotFound",
			method:     http.MethodGet,
			path:       "/jobs?id=nope",
			prepare:    seed,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "ListJobs_ByOwner",
			method:     http.MethodGet,
			path:       "/jobs?hr_email=hr@acme.com",
			prepare:    seed,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, env testEnvelope) {
				var jobs []models.Job
				if err := json.Unmarshal(env.Data, &jobs); err != nil {
					t.Fatalf("unmarshal jobs: %v", err)
				}
				if len(jobs) != 1 || jobs[0].ID != "j1" {
					t.Fatalf("unexpected owner list: %#v", jobs)
				}
			},
		},
		{
			name:       "ListJobs_FiltersMutuallyExclusive",
			method:     http.MethodGet,
			path:       "/jobs?id=j1&hr_email=hr@acme.com",
			prepare:    seed,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "CreateJob_Single",
			method:     http.MethodPost,
			path:       "/jobs",
			body:       map[string]string{"hr_email": "hr@acme.com", "title": "Backend Engineer"},
			wantStatus: http.StatusCreated,
		},
		{
			name:   "CreateJob_Many",
			method: http.MethodPost,
			path:   "/jobs",
			body: []map[string]string{
				{"hr_email": "hr@acme.com", "title": "Role One"},
				{"hr_email": "hr@acme.com", "title": "Role Two"},
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, env testEnvelope) {
				var jobs []models.Job
				if err := json.Unmarshal(env.Data, &jobs); err != nil {
					t.Fatalf("unmarshal jobs: %v", err)
				}
				if len(jobs) != 2 {
					t.Fatalf("expected 2 created jobs, got %d", len(jobs))
				}
			},
		},
		{
			name:       "CreateJob_MissingTitle",
			method:     http.MethodPost,
			path:       "/jobs",
			body:       map[string]string{"hr_email": "hr@acme.com"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "CreateJob_MissingOwner",
			method:     http.MethodPost,
			path:       "/jobs",
			body:       map[string]string{"title": "Backend Engineer"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "CreateJob_ManyOneInvalid",
			method: http.MethodPost,
			path:   "/jobs",
			body: []map[string]string{
				{"hr_email": "hr@acme.com", "title": "Role One"},
				{"hr_email": "hr@acme.com"},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "CreateJob_EmptyArray",
			method:     http.MethodPost,
			path:       "/jobs",
			body:       []map[string]string{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "UpdateJob_OK",
			method:     http.MethodPut,
			path:       "/job/j1",
			body:       map[string]string{"title": "Senior Backend Engineer"},
			prepare:    seed,
			wantStatus: http.StatusOK,
		},
		{
			name:       "UpdateJob_NotFound",
			method:     http.MethodPut,
			path:       "/job/nope",
			body:       map[string]string{"title": "Senior Backend Engineer"},
			prepare:    seed,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "UpdateJob_EmptyPatch",
			method:     http.MethodPut,
			path:       "/job/j1",
			body:       map[string]string{},
			prepare:    seed,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "DeleteJob_OK",
			method:     http.MethodDelete,
			path:       "/jobs/j1",
			prepare:    seed,
			wantStatus: http.StatusOK,
		},
		{
			name:       "DeleteJob_NotFound",
			method:     http.MethodDelete,
			path:       "/jobs/nope",
			prepare:    seed,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			if tt.prepare != nil {
				tt.prepare(mocks)
			}

			res, env := doJSON(t, jobsRouter(mocks), tt.method, tt.path, tt.body)
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d got %d (message=%q error=%q)", tt.wantStatus, res.StatusCode, env.Message, env.Error)
			}
			if tt.check != nil {
				tt.check(t, env)
			}
		})
	}
}
