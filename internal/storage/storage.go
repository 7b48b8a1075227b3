package storage

import (
	"context"
	"time"

	"github.com/satishkumarramakoti33/sb-works/internal/models"
	"github.com/satishkumarramakoti33/sb-works/internal/transport/dto"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, req *dto.GetUserByIDRequest) (*models.User, error)
	GetByEmail(ctx context.Context, req *dto.GetUserByEmailRequest) (*models.User, error)
}

// JobRepository defines the interface for job data operations. Jobs returned
// by reads carry their creator summary and applications (with freelancer
// summaries) already populated. Lifecycle mutations are single atomic
// statements: their state preconditions are evaluated by the store, so two
// racing writers can never both succeed in invariant-breaking ways.
type JobRepository interface {
	Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetByID(ctx context.Context, req *dto.GetJobByIDRequest) (*models.Job, error)
	ListAll(ctx context.Context) ([]models.Job, error)
	ListByCreator(ctx context.Context, clientID uuid.UUID) ([]models.Job, error)
	ListByApplicant(ctx context.Context, freelancerID uuid.UUID) ([]models.Job, error)
	ListByAssignee(ctx context.Context, freelancerID uuid.UUID) ([]models.Job, error)

	// InsertApplication appends an application unless the freelancer already
	// has one on the job (ErrConflict) or the job is gone (ErrNotFound).
	InsertApplication(ctx context.Context, jobID, freelancerID uuid.UUID, coverLetter string) error

	// Assign sets assigned_to and moves the job open -> assigned, but only if
	// the job is still open and the freelancer has an application on it;
	// otherwise ErrConflict. ErrNotFound if the job no longer exists.
	Assign(ctx context.Context, jobID, freelancerID uuid.UUID) (*models.Job, error)

	// Complete moves the job assigned -> completed, but only if it is still
	// assigned to the given freelancer; otherwise ErrConflict. ErrNotFound if
	// the job no longer exists.
	Complete(ctx context.Context, jobID, freelancerID uuid.UUID) (*models.Job, error)

	// Delete removes the job and, by cascade, all its applications.
	Delete(ctx context.Context, jobID uuid.UUID) error
}

// RefreshTokenRepository defines the interface for refresh-token storage.
type RefreshTokenRepository interface {
	Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}
