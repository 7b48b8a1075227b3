package services

import (
	"context"

	"github.com/satishkumarramakoti33/sb-works/internal/models"
	"github.com/satishkumarramakoti33/sb-works/internal/transport/dto"
)

// UserService defines the interface for identity-related business logic.
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, string, error) // user, access token, refresh token
	Refresh(ctx context.Context, req *dto.RefreshRequest) (string, string, error)
	Logout(ctx context.Context, req *dto.LogoutRequest) error
	GetByID(ctx context.Context, req *dto.GetUserByIDRequest) (*models.User, error)
}

// JobService defines the interface for the job lifecycle business logic.
// Every operation except the public reads takes the validated caller
// identity inside its request and enforces role and ownership before
// touching the store.
type JobService interface {
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetJob(ctx context.Context, req *dto.GetJobByIDRequest) (*models.Job, error)
	ListJobs(ctx context.Context) ([]models.Job, error)
	ListMyJobs(ctx context.Context, req *dto.ListMyJobsRequest) ([]models.Job, error)
	ListAppliedJobs(ctx context.Context, req *dto.ListAppliedJobsRequest) ([]models.Job, error)
	ListAssignedJobs(ctx context.Context, req *dto.ListAssignedJobsRequest) ([]models.Job, error)
	Apply(ctx context.Context, req *dto.ApplyToJobRequest) error
	AcceptFreelancer(ctx context.Context, req *dto.AcceptFreelancerRequest) (*models.Job, error)
	CompleteJob(ctx context.Context, req *dto.CompleteJobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, req *dto.DeleteJobRequest) error
}
