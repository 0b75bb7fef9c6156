package models

// Domain models matching the database schema in db/migrations/0001_init.sql

// User is keyed by email; every reference to a user elsewhere in the system
// is by email, so there is no surrogate key.
type User struct {
	Email    string `json:"email" db:"email" validate:"required,email"`
	Name     string `json:"name,omitempty" db:"name"`
	Photo    string `json:"photo,omitempty" db:"photo"`
	Title    string `json:"title,omitempty" db:"title"`
	Location string `json:"location,omitempty" db:"location"`
	Bio      string `json:"bio,omitempty" db:"bio"`
	Updated  int64  `json:"updated" db:"updated"`
}

type Job struct {
	ID               string `json:"id" db:"id"`
	HREmail          string `json:"hr_email" db:"hr_email" validate:"required,email"`
	Title            string `json:"title" db:"title" validate:"required"`
	Company          string `json:"company,omitempty" db:"company"`
	Location         string `json:"location,omitempty" db:"location"`
	JobType          string `json:"job_type,omitempty" db:"job_type"`
	Salary           string `json:"salary,omitempty" db:"salary"`
	Description      string `json:"description,omitempty" db:"description"`
	ApplicationCount int64  `json:"applicationCount" db:"application_count"`
	Posted           int64  `json:"posted" db:"posted"`
}

// JobPatch carries the fields a PUT may change. Nil pointers are left
// untouched, mirroring a $set-style partial update.
type JobPatch struct {
	Title       *string `json:"title,omitempty"`
	Company     *string `json:"company,omitempty"`
	Location    *string `json:"location,omitempty"`
	JobType     *string `json:"job_type,omitempty"`
	Salary      *string `json:"salary,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Empty reports whether the patch would change nothing.
func (p *JobPatch) Empty() bool {
	return p.Title == nil && p.Company == nil && p.Location == nil &&
		p.JobType == nil && p.Salary == nil && p.Description == nil
}

type Application struct {
	ID             string            `json:"id" db:"id"`
	JobID          string            `json:"job_id" db:"job_id"`
	ApplicantEmail string            `json:"applicant_email" db:"applicant_email"`
	ApplicantName  string            `json:"applicant_name,omitempty" db:"applicant_name"`
	ApplicantPhoto string            `json:"applicant_photo,omitempty" db:"applicant_photo"`
	ResumeLink     string            `json:"resume_link,omitempty" db:"resume_link"`
	CoverNote      string            `json:"cover_note,omitempty" db:"cover_note"`
	Status         ApplicationStatus `json:"status" db:"status"`
	Created        int64             `json:"created" db:"created"`
}

// ApplicationStatus is a closed set; free-form strings from callers are
// rejected at the handler boundary.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusUnderReview ApplicationStatus = "under_review"
	StatusInterview   ApplicationStatus = "interview"
	StatusAccepted    ApplicationStatus = "accepted"
	StatusRejected    ApplicationStatus = "rejected"
)

// transitions lists the legal next states per current state. Terminal states
// have no entry.
var transitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:     {StatusUnderReview, StatusRejected},
	StatusUnderReview: {StatusInterview, StatusRejected},
	StatusInterview:   {StatusAccepted, StatusRejected},
}

// Valid reports whether s names a known status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusInterview, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is allowed by the
// transition table.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, n := range transitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// UpsertOutcome classifies what a single upsert-or-login write did. Callers
// cannot tell registration, profile edit and plain login apart except through
// this value, so it travels in the response.
type UpsertOutcome string

const (
	OutcomeCreated   UpsertOutcome = "created"
	OutcomeUpdated   UpsertOutcome = "updated"
	OutcomeLoginNoop UpsertOutcome = "login"
)

// AppliedJobView denormalizes applicant identity onto a job posting for the
// applied-jobs screen.
type AppliedJobView struct {
	Job            Job    `json:"job"`
	ApplicantEmail string `json:"applicant_email"`
	ApplicantName  string `json:"applicant_name,omitempty"`
	ApplicantPhoto string `json:"applicant_photo,omitempty"`
}
