package mock

import (
	"context"

	"github.com/garnizeh/jobportal/pkg/models"
	"github.com/garnizeh/jobportal/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	UserRepo *UserRepo
	JobRepo  *JobRepo
	AppRepo  *ApplicationRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		UserRepo: &UserRepo{},
		JobRepo:  &JobRepo{},
		AppRepo:  &ApplicationRepo{},
	}
}

type UserRepo struct {
	Stored        *models.User
	CreateErr     error
	UpsertOutcome models.UpsertOutcome
	UpsertErr     error
}

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if m.Stored != nil && m.Stored.Email == u.Email {
		return repository.ErrDuplicateEmail
	}
	cp := *u
	m.Stored = &cp
	return nil
}

func (m *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *UserRepo) UpsertUser(ctx context.Context, u *models.User) (models.UpsertOutcome, error) {
	if m.UpsertErr != nil {
		return "", m.UpsertErr
	}
	cp := *u
	m.Stored = &cp
	if m.UpsertOutcome != "" {
		return m.UpsertOutcome, nil
	}
	return models.OutcomeCreated, nil
}

type JobRepo struct {
	Jobs      map[string]*models.Job
	CreateErr error
	UpdateErr error
	DeleteErr error
}

func (m *JobRepo) put(j *models.Job) {
	if m.Jobs == nil {
		m.Jobs = make(map[string]*models.Job)
	}
	if j.ID == "" {
		j.ID = "job-1"
	}
	cp := *j
	m.Jobs[j.ID] = &cp
}

func (m *JobRepo) CreateJob(ctx context.Context, j *models.Job) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.put(j)
	return nil
}

func (m *JobRepo) CreateJobs(ctx context.Context, js []models.Job) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	for i := range js {
		m.put(&js[i])
	}
	return nil
}

func (m *JobRepo) GetJob(ctx context.Context, id string) (*models.Job, error) {
	if j, ok := m.Jobs[id]; ok {
		return j, nil
	}
	return nil, nil
}

func (m *JobRepo) ListJobs(ctx context.Context) ([]models.Job, error) {
	out := make([]models.Job, 0, len(m.Jobs))
	for _, j := range m.Jobs {
		out = append(out, *j)
	}
	return out, nil
}

func (m *JobRepo) ListJobsByOwner(ctx context.Context, hrEmail string) ([]models.Job, error) {
	var out []models.Job
	for _, j := range m.Jobs {
		if j.HREmail == hrEmail {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (m *JobRepo) UpdateJob(ctx context.Context, id string, patch *models.JobPatch) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	j, ok := m.Jobs[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.Title != nil {
		j.Title = *patch.Title
	}
	if patch.Company != nil {
		j.Company = *patch.Company
	}
	if patch.Location != nil {
		j.Location = *patch.Location
	}
	if patch.JobType != nil {
		j.JobType = *patch.JobType
	}
	if patch.Salary != nil {
		j.Salary = *patch.Salary
	}
	if patch.Description != nil {
		j.Description = *patch.Description
	}
	return nil
}

func (m *JobRepo) DeleteJob(ctx context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.Jobs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Jobs, id)
	return nil
}

type ApplicationRepo struct {
	Apps      []models.Application
	SubmitErr error
	StatusErr error
	View      *models.AppliedJobView
	ViewErr   error
}

func (m *ApplicationRepo) SubmitApplication(ctx context.Context, a *models.Application) error {
	if m.SubmitErr != nil {
		return m.SubmitErr
	}
	if a.ID == "" {
		a.ID = "app-1"
	}
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	m.Apps = append(m.Apps, *a)
	return nil
}

func (m *ApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	var out []models.Application
	for _, a := range m.Apps {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *ApplicationRepo) ListByApplicant(ctx context.Context, email string) ([]models.Application, error) {
	var out []models.Application
	for _, a := range m.Apps {
		if a.ApplicantEmail == email {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *ApplicationRepo) UpdateStatus(ctx context.Context, id string, next models.ApplicationStatus) error {
	if m.StatusErr != nil {
		return m.StatusErr
	}
	for i := range m.Apps {
		if m.Apps[i].ID == id {
			if !m.Apps[i].Status.CanTransitionTo(next) {
				return repository.ErrInvalidTransition
			}
			m.Apps[i].Status = next
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *ApplicationRepo) GetAppliedJobView(ctx context.Context, email, jobID string) (*models.AppliedJobView, error) {
	if m.ViewErr != nil {
		return nil, m.ViewErr
	}
	if m.View != nil {
		return m.View, nil
	}
	return nil, repository.ErrNotFound
}
