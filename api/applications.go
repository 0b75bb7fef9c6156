package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/jobportal/pkg/models"
	"github.com/garnizeh/jobportal/pkg/repository"
)

type ApplicationsHandler struct {
	appRepo repository.ApplicationRepo
}

func NewApplicationsHandler(ar repository.ApplicationRepo) *ApplicationsHandler {
	return &ApplicationsHandler{appRepo: ar}
}

type submitApplicationRequest struct {
	JobID         string `json:"job_id"`
	ApplicantInfo struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Photo string `json:"photo"`
	} `json:"applicantInfo"`
	ResumeLink string `json:"resume_link"`
	CoverNote  string `json:"cover_note"`
}

// Submit records an application against a posting. The store bumps the job's
// applicationCount atomically; a submission against a missing job is a 404
// and leaves nothing behind.
func (h *ApplicationsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.JobID == "" || req.ApplicantInfo.Email == "" {
		writeError(w, http.StatusBadRequest, "job_id and applicantInfo.email are required")
		return
	}

	a := &models.Application{
		JobID:          req.JobID,
		ApplicantEmail: req.ApplicantInfo.Email,
		ApplicantName:  req.ApplicantInfo.Name,
		ApplicantPhoto: req.ApplicantInfo.Photo,
		ResumeLink:     req.ResumeLink,
		CoverNote:      req.CoverNote,
	}
	if err := h.appRepo.SubmitApplication(r.Context(), a); err != nil {
		writeRepoError(w, err, "job not found")
		return
	}

	writeSuccess(w, http.StatusCreated, "application submitted", a)
}

func (h *ApplicationsHandler) ListByJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["job_id"]

	apps, err := h.appRepo.ListByJob(r.Context(), jobID)
	if err != nil {
		writeRepoError(w, err, "job not found")
		return
	}

	if apps == nil {
		apps = []models.Application{}
	}

	writeSuccess(w, http.StatusOK, "applications listed", apps)
}

// ListByApplicant runs behind the auth gate. The verified claim must match
// the path email; anyone else gets nothing.
func (h *ApplicationsHandler) ListByApplicant(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	claim, ok := ClaimFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}
	if claim.Email != email {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	apps, err := h.appRepo.ListByApplicant(r.Context(), email)
	if err != nil {
		writeRepoError(w, err, "applications not found")
		return
	}

	if apps == nil {
		apps = []models.Application{}
	}

	writeSuccess(w, http.StatusOK, "applications listed", apps)
}

type updateStatusRequest struct {
	Action string `json:"action"`
}

// UpdateStatus moves an application through the status state machine. The
// action must name a known status and the move must be legal from the current
// one.
func (h *ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	next := models.ApplicationStatus(req.Action)
	if !next.Valid() {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	if err := h.appRepo.UpdateStatus(r.Context(), id, next); err != nil {
		writeRepoError(w, err, "application not found")
		return
	}

	writeSuccess(w, http.StatusOK, "status updated", map[string]any{"status": next})
}

// AppliedJobView joins an applicant and a posting for the applied-jobs
// screen. Both query parameters are required; a missing one is an explicit
// validation error, not an empty success.
func (h *ApplicationsHandler) AppliedJobView(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	email := q.Get("email")
	jobID := q.Get("id")

	if email == "" || jobID == "" {
		writeError(w, http.StatusBadRequest, "email and id are required")
		return
	}

	view, err := h.appRepo.GetAppliedJobView(r.Context(), email, jobID)
	if err != nil {
		writeRepoError(w, err, "user or job not found")
		return
	}

	writeSuccess(w, http.StatusOK, "applied job", view)
}
