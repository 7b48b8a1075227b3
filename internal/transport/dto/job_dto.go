package dto

import (
	"time"

	"github.com/satishkumarramakoti33/sb-works/internal/models"

	"github.com/google/uuid"
)

// --- Job Request DTOs ---

// CreateJobRequest defines the structure for posting a new job.
// Caller is set by the handler from the auth context, never bound from JSON.
type CreateJobRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"required"`
	Budget      *float64        `json:"budget" validate:"required,gte=0"`
	Category    string          `json:"category" validate:"omitempty,max=100"`
	Caller      models.Identity `json:"-"`
}

// GetJobByIDRequest defines the structure for getting a job by ID.
type GetJobByIDRequest struct {
	ID uuid.UUID `json:"-" validate:"required"`
}

// ListMyJobsRequest lists jobs posted by the calling client.
type ListMyJobsRequest struct {
	Caller models.Identity `json:"-"`
}

// ListAppliedJobsRequest lists jobs the calling freelancer has applied to.
type ListAppliedJobsRequest struct {
	Caller models.Identity `json:"-"`
}

// ListAssignedJobsRequest lists jobs assigned to the calling freelancer.
type ListAssignedJobsRequest struct {
	Caller models.Identity `json:"-"`
}

// ApplyToJobRequest defines the structure for applying to a job.
type ApplyToJobRequest struct {
	JobID       uuid.UUID       `json:"-"`
	CoverLetter string          `json:"cover_letter" validate:"omitempty,max=5000"`
	Caller      models.Identity `json:"-"`
}

// AcceptFreelancerRequest defines the structure for accepting an applicant.
type AcceptFreelancerRequest struct {
	JobID        uuid.UUID       `json:"-"`
	FreelancerID uuid.UUID       `json:"-"`
	Caller       models.Identity `json:"-"`
}

// CompleteJobRequest defines the structure for marking a job completed.
type CompleteJobRequest struct {
	JobID  uuid.UUID       `json:"-"`
	Caller models.Identity `json:"-"`
}

// DeleteJobRequest defines the structure for deleting a job.
type DeleteJobRequest struct {
	ID     uuid.UUID       `json:"-"`
	Caller models.Identity `json:"-"`
}

// --- Job Response DTOs ---

// ApplicationResponse is one entry of a job's applications list.
type ApplicationResponse struct {
	Freelancer     uuid.UUID           `json:"freelancer"`
	FreelancerInfo *models.UserSummary `json:"freelancer_info,omitempty"`
	CoverLetter    string              `json:"cover_letter"`
	AppliedAt      time.Time           `json:"applied_at"`
}

// JobResponse defines the standard job payload returned to the client.
type JobResponse struct {
	ID           uuid.UUID             `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Budget       float64               `json:"budget"`
	Category     string                `json:"category"`
	CreatedBy    uuid.UUID             `json:"created_by"`
	Creator      *models.UserSummary   `json:"creator,omitempty"`
	Status       models.JobStatus      `json:"status"`
	AssignedTo   *uuid.UUID            `json:"assigned_to,omitempty"`
	Applications []ApplicationResponse `json:"applications"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// MessageResponse is the generic confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}
