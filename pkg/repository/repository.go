package repository

import (
	"context"
	"errors"

	"github.com/garnizeh/jobportal/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

// Sentinel errors implementations must return so handlers can map store
// outcomes onto the HTTP error taxonomy.
var (
	// ErrNotFound signals that a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail signals a violation of the users.email unique
	// constraint. The constraint is the sole source of truth for duplicate
	// detection; implementations must not pre-check existence.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidTransition signals a status change the transition table
	// forbids.
	ErrInvalidTransition = errors.New("illegal status transition")
)

type UserRepo interface {
	// CreateUser inserts a new user. Returns ErrDuplicateEmail when the
	// email is already taken.
	CreateUser(ctx context.Context, u *models.User) error
	// GetByEmail returns nil, nil when no user exists for email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpsertUser writes u keyed on its email and classifies the effect:
	// created a row, changed an existing row, or changed nothing.
	UpsertUser(ctx context.Context, u *models.User) (models.UpsertOutcome, error)
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) error
	CreateJobs(ctx context.Context, js []models.Job) error
	// GetJob returns nil, nil when no job exists for id.
	GetJob(ctx context.Context, id string) (*models.Job, error)
	ListJobs(ctx context.Context) ([]models.Job, error)
	ListJobsByOwner(ctx context.Context, hrEmail string) ([]models.Job, error)
	// UpdateJob merges the non-nil patch fields into the job. Returns
	// ErrNotFound when id matches nothing.
	UpdateJob(ctx context.Context, id string, patch *models.JobPatch) error
	// DeleteJob removes the job by id. Returns ErrNotFound when id matches
	// nothing.
	DeleteJob(ctx context.Context, id string) error
}

type ApplicationRepo interface {
	// SubmitApplication atomically bumps the referenced job's
	// application_count and inserts the application record. Returns
	// ErrNotFound, inserting nothing, when the job does not exist.
	SubmitApplication(ctx context.Context, a *models.Application) error
	ListByJob(ctx context.Context, jobID string) ([]models.Application, error)
	ListByApplicant(ctx context.Context, email string) ([]models.Application, error)
	// UpdateStatus moves the application to next, enforcing the transition
	// table. Returns ErrNotFound for an unknown id and ErrInvalidTransition
	// for a forbidden move.
	UpdateStatus(ctx context.Context, id string, next models.ApplicationStatus) error
	// GetAppliedJobView joins a user and a job into the applied-jobs
	// composite. Returns ErrNotFound when either side is absent.
	GetAppliedJobView(ctx context.Context, email, jobID string) (*models.AppliedJobView, error)
}
