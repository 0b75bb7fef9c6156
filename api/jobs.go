package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/qri-io/jsonschema"

	"github.com/garnizeh/jobportal/pkg/models"
	"github.com/garnizeh/jobportal/pkg/repository"
)

// jobSchemaJSON is the shape a posting must satisfy before it is stored.
// Unknown fields are allowed and ignored by the decoder.
const jobSchemaJSON = `{
	"type": "object",
	"required": ["hr_email", "title"],
	"properties": {
		"hr_email": {"type": "string", "minLength": 3},
		"title": {"type": "string", "minLength": 1},
		"company": {"type": "string"},
		"location": {"type": "string"},
		"job_type": {"type": "string"},
		"salary": {"type": "string"},
		"description": {"type": "string"}
	}
}`

type JobsHandler struct {
	jobRepo   repository.JobRepo
	jobSchema *jsonschema.Schema
}

func NewJobsHandler(jr repository.JobRepo) *JobsHandler {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(jobSchemaJSON), rs); err != nil {
		panic(fmt.Sprintf("job schema does not compile: %v", err))
	}
	return &JobsHandler{jobRepo: jr, jobSchema: rs}
}

// ListJobs returns one job by id, the owner-scoped list, or the full catalog.
// The id and hr_email filters are mutually exclusive.
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("id")
	owner := q.Get("hr_email")

	if id != "" && owner != "" {
		writeError(w, http.StatusBadRequest, "id and hr_email are mutually exclusive")
		return
	}

	ctx := r.Context()

	if id != "" {
		j, err := h.jobRepo.GetJob(ctx, id)
		if err != nil {
			writeRepoError(w, err, "job not found")
			return
		}
		if j == nil {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}

		writeSuccess(w, http.StatusOK, "job found", j)
		return
	}

	var (
		jobs []models.Job
		err  error
	)
	if owner != "" {
		jobs, err = h.jobRepo.ListJobsByOwner(ctx, owner)
	} else {
		jobs, err = h.jobRepo.ListJobs(ctx)
	}
	if err != nil {
		writeRepoError(w, err, "job not found")
		return
	}

	if jobs == nil {
		jobs = []models.Job{}
	}

	writeSuccess(w, http.StatusOK, "jobs listed", jobs)
}

// CreateJobs accepts a single posting or an array of postings, validates each
// against the job schema and inserts them.
func (h *JobsHandler) CreateJobs(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	ctx := r.Context()
	trimmed := bytes.TrimLeft(body, " \t\r\n")

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var raws []json.RawMessage
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if len(raws) == 0 {
			writeError(w, http.StatusBadRequest, "no jobs to create")
			return
		}

		jobs := make([]models.Job, 0, len(raws))
		for _, raw := range raws {
			j, errMsg := h.decodeJob(ctx, raw)
			if errMsg != "" {
				writeError(w, http.StatusBadRequest, errMsg)
				return
			}
			jobs = append(jobs, *j)
		}

		if err := h.jobRepo.CreateJobs(ctx, jobs); err != nil {
			writeRepoError(w, err, "job not found")
			return
		}

		writeSuccess(w, http.StatusCreated, "jobs created", jobs)
		return
	}

	j, errMsg := h.decodeJob(ctx, trimmed)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	if err := h.jobRepo.CreateJob(ctx, j); err != nil {
		writeRepoError(w, err, "job not found")
		return
	}

	writeSuccess(w, http.StatusCreated, "job created", j)
}

// decodeJob validates raw against the job schema and unmarshals it. The
// second return value is a client-facing message, empty on success.
func (h *JobsHandler) decodeJob(ctx context.Context, raw []byte) (*models.Job, string) {
	keyErrs, err := h.jobSchema.ValidateBytes(ctx, raw)
	if err != nil {
		return nil, "invalid job document"
	}
	if len(keyErrs) > 0 {
		return nil, fmt.Sprintf("invalid job document: %s", keyErrs[0].Message)
	}

	var j models.Job
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, "invalid job document"
	}
	// ids and counters are server-owned regardless of what the caller sent
	j.ID = ""
	j.ApplicationCount = 0

	return &j, ""
}

func (h *JobsHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch models.JobPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if patch.Empty() {
		writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	if err := h.jobRepo.UpdateJob(r.Context(), id, &patch); err != nil {
		writeRepoError(w, err, "job not found")
		return
	}

	writeSuccess(w, http.StatusOK, "job updated", nil)
}

func (h *JobsHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.jobRepo.DeleteJob(r.Context(), id); err != nil {
		writeRepoError(w, err, "job not found")
		return
	}

	writeSuccess(w, http.StatusOK, "job deleted", nil)
}
