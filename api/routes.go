package api

import (
	"github.com/gorilla/mux"

	"github.com/garnizeh/jobportal/internal/config"
	"github.com/garnizeh/jobportal/internal/db"
	"github.com/garnizeh/jobportal/internal/repository/sqlite"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(db, logger)

	// Create handlers
	systemHandler := &SystemHandler{}
	usersHandler := NewUsersHandler(repo)
	jobsHandler := NewJobsHandler(repo)
	appsHandler := NewApplicationsHandler(repo)
	tokenHandler := NewTokenHandler(cfg.JWTSecret, cfg.TokenDuration, cfg.IsProduction())

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	r.HandleFunc("/users/{email}", usersHandler.GetUser).Methods("GET")
	r.HandleFunc("/users", usersHandler.CreateUser).Methods("POST")
	r.HandleFunc("/users", usersHandler.UpsertUser).Methods("PATCH")

	r.HandleFunc("/jobs", jobsHandler.ListJobs).Methods("GET")
	r.HandleFunc("/jobs", jobsHandler.CreateJobs).Methods("POST")
	r.HandleFunc("/job/{id}", jobsHandler.UpdateJob).Methods("PUT")
	r.HandleFunc("/jobs/{id}", jobsHandler.DeleteJob).Methods("DELETE")

	r.HandleFunc("/jwt", tokenHandler.Issue).Methods("POST")

	r.HandleFunc("/job-apply", appsHandler.Submit).Methods("POST")
	r.HandleFunc("/applications/{job_id}", appsHandler.ListByJob).Methods("GET")
	r.HandleFunc("/status/{id}", appsHandler.UpdateStatus).Methods("PATCH")
	r.HandleFunc("/jobs-applied", appsHandler.AppliedJobView).Methods("GET")

	// Gated endpoints: only the applicant may read their own applications
	gated := r.PathPrefix("/job-apply").Subrouter()
	gated.Use(CookieAuthMiddleware(cfg.JWTSecret))
	gated.HandleFunc("/{email}", appsHandler.ListByApplicant).Methods("GET")

	return r
}
