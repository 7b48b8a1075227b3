package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/satishkumarramakoti33/sb-works/internal/models"
	"github.com/satishkumarramakoti33/sb-works/internal/storage"
	"github.com/satishkumarramakoti33/sb-works/internal/transport/dto"
)

type jobService struct {
	jobRepo storage.JobRepository
}

// NewJobService creates a new instance of JobService.
func NewJobService(jobRepo storage.JobRepository) JobService {
	return &jobService{jobRepo: jobRepo}
}

// CreateJob creates an open job owned by the calling client.
func (s *jobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	if req.Caller.Role != models.RoleClient {
		log.Printf("CreateJob: Forbidden attempt by %s user %s", req.Caller.Role, req.Caller.UserID)
		return nil, fmt.Errorf("%w: only clients can create jobs", ErrForbidden)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrValidation)
	}
	if req.Budget == nil {
		return nil, fmt.Errorf("%w: budget is required", ErrValidation)
	}
	if *req.Budget < 0 {
		return nil, fmt.Errorf("%w: budget must not be negative", ErrValidation)
	}

	job, err := s.jobRepo.Create(ctx, req)
	if err != nil {
		log.Printf("JobService: Error creating job: %v", err)
		return nil, mapRepoError(err, "creating job")
	}
	return job, nil
}

// GetJob is a public read of a single job with populated identities.
func (s *jobService) GetJob(ctx context.Context, req *dto.GetJobByIDRequest) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "getting job by ID")
	}
	return job, nil
}

// ListJobs is a public read of all jobs, newest-created first.
func (s *jobService) ListJobs(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.jobRepo.ListAll(ctx)
	if err != nil {
		log.Printf("JobService: Error listing jobs: %v", err)
		return nil, mapRepoError(err, "listing jobs")
	}
	return jobs, nil
}

// ListMyJobs returns the calling client's posted jobs, newest first.
func (s *jobService) ListMyJobs(ctx context.Context, req *dto.ListMyJobsRequest) ([]models.Job, error) {
	if req.Caller.Role != models.RoleClient {
		return nil, fmt.Errorf("%w: only clients can view their posted jobs", ErrForbidden)
	}
	jobs, err := s.jobRepo.ListByCreator(ctx, req.Caller.UserID)
	if err != nil {
		log.Printf("JobService: Error listing jobs for client %s: %v", req.Caller.UserID, err)
		return nil, mapRepoError(err, "listing posted jobs")
	}
	return jobs, nil
}

// ListAppliedJobs returns jobs the calling freelancer has applied to,
// newest first.
func (s *jobService) ListAppliedJobs(ctx context.Context, req *dto.ListAppliedJobsRequest) ([]models.Job, error) {
	if req.Caller.Role != models.RoleFreelancer {
		return nil, fmt.Errorf("%w: only freelancers can view applied jobs", ErrForbidden)
	}
	jobs, err := s.jobRepo.ListByApplicant(ctx, req.Caller.UserID)
	if err != nil {
		log.Printf("JobService: Error listing applied jobs for %s: %v", req.Caller.UserID, err)
		return nil, mapRepoError(err, "listing applied jobs")
	}
	return jobs, nil
}

// ListAssignedJobs returns jobs assigned to the calling freelancer, most
// recently updated first.
func (s *jobService) ListAssignedJobs(ctx context.Context, req *dto.ListAssignedJobsRequest) ([]models.Job, error) {
	if req.Caller.Role != models.RoleFreelancer {
		return nil, fmt.Errorf("%w: only freelancers can view assigned jobs", ErrForbidden)
	}
	jobs, err := s.jobRepo.ListByAssignee(ctx, req.Caller.UserID)
	if err != nil {
		log.Printf("JobService: Error listing assigned jobs for %s: %v", req.Caller.UserID, err)
		return nil, mapRepoError(err, "listing assigned jobs")
	}
	return jobs, nil
}

// Apply records the calling freelancer's application. Re-applying is
// rejected, not merged. Applications are accepted regardless of job status.
func (s *jobService) Apply(ctx context.Context, req *dto.ApplyToJobRequest) error {
	if req.Caller.Role != models.RoleFreelancer {
		log.Printf("Apply: Forbidden attempt by %s user %s on job %s", req.Caller.Role, req.Caller.UserID, req.JobID)
		return fmt.Errorf("%w: only freelancers can apply", ErrForbidden)
	}

	if _, err := s.jobRepo.GetByID(ctx, &dto.GetJobByIDRequest{ID: req.JobID}); err != nil {
		return mapRepoError(err, "fetching job for application")
	}

	err := s.jobRepo.InsertApplication(ctx, req.JobID, req.Caller.UserID, req.CoverLetter)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Printf("Apply: Duplicate application by %s on job %s", req.Caller.UserID, req.JobID)
			return fmt.Errorf("%w: already applied", ErrConflict)
		}
		return mapRepoError(err, "applying to job")
	}
	return nil
}

// AcceptFreelancer performs the open -> assigned transition. Only the owning
// client may accept, only while the job is open, and only for a freelancer
// who actually applied; this is the sole path that populates assignedTo.
func (s *jobService) AcceptFreelancer(ctx context.Context, req *dto.AcceptFreelancerRequest) (*models.Job, error) {
	if req.Caller.Role != models.RoleClient {
		log.Printf("AcceptFreelancer: Forbidden attempt by %s user %s on job %s", req.Caller.Role, req.Caller.UserID, req.JobID)
		return nil, fmt.Errorf("%w: only clients can accept a freelancer", ErrForbidden)
	}

	job, err := s.jobRepo.GetByID(ctx, &dto.GetJobByIDRequest{ID: req.JobID})
	if err != nil {
		return nil, mapRepoError(err, "fetching job for accept")
	}
	if job.CreatedBy != req.Caller.UserID {
		log.Printf("AcceptFreelancer: Forbidden attempt on job %s by non-owner %s", req.JobID, req.Caller.UserID)
		return nil, fmt.Errorf("%w: not your job", ErrForbidden)
	}
	if job.Status != models.JobStatusOpen {
		log.Printf("AcceptFreelancer: Job %s is %s, not open", req.JobID, job.Status)
		return nil, fmt.Errorf("%w: job is not open (current: %s)", ErrInvalidState, job.Status)
	}
	if !job.HasApplicationFrom(req.FreelancerID) {
		log.Printf("AcceptFreelancer: Freelancer %s has no application on job %s", req.FreelancerID, req.JobID)
		return nil, fmt.Errorf("%w: freelancer has not applied to this job", ErrConflict)
	}

	updated, err := s.jobRepo.Assign(ctx, req.JobID, req.FreelancerID)
	if err != nil {
		// The conditional update re-checks the preconditions atomically; a
		// miss here means a concurrent accept or delete won the race.
		if errors.Is(err, storage.ErrConflict) {
			return nil, fmt.Errorf("%w: job is no longer open", ErrInvalidState)
		}
		return nil, mapRepoError(err, "assigning freelancer")
	}
	log.Printf("Job %s assigned to freelancer %s by client %s", req.JobID, req.FreelancerID, req.Caller.UserID)
	return updated, nil
}

// CompleteJob performs the assigned -> completed transition. Only the
// assigned freelancer may complete, and completed is terminal.
func (s *jobService) CompleteJob(ctx context.Context, req *dto.CompleteJobRequest) (*models.Job, error) {
	if req.Caller.Role != models.RoleFreelancer {
		log.Printf("CompleteJob: Forbidden attempt by %s user %s on job %s", req.Caller.Role, req.Caller.UserID, req.JobID)
		return nil, fmt.Errorf("%w: only freelancers can complete a job", ErrForbidden)
	}

	job, err := s.jobRepo.GetByID(ctx, &dto.GetJobByIDRequest{ID: req.JobID})
	if err != nil {
		return nil, mapRepoError(err, "fetching job for completion")
	}
	// Ownership before state: a caller the job was never assigned to gets
	// forbidden even when the job has since completed or is still open.
	if job.AssignedTo == nil || *job.AssignedTo != req.Caller.UserID {
		log.Printf("CompleteJob: Job %s is not assigned to caller %s", req.JobID, req.Caller.UserID)
		return nil, fmt.Errorf("%w: this job is not assigned to you", ErrForbidden)
	}
	if job.Status != models.JobStatusAssigned {
		return nil, fmt.Errorf("%w: job is not in assigned state (current: %s)", ErrInvalidState, job.Status)
	}

	updated, err := s.jobRepo.Complete(ctx, req.JobID, req.Caller.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, fmt.Errorf("%w: job is no longer in assigned state", ErrInvalidState)
		}
		return nil, mapRepoError(err, "completing job")
	}
	log.Printf("Job %s marked completed by freelancer %s", req.JobID, req.Caller.UserID)
	return updated, nil
}

// DeleteJob removes a job and its applications. Only the owning client may
// delete; the service imposes no status restriction.
func (s *jobService) DeleteJob(ctx context.Context, req *dto.DeleteJobRequest) error {
	if req.Caller.Role != models.RoleClient {
		log.Printf("DeleteJob: Forbidden attempt by %s user %s on job %s", req.Caller.Role, req.Caller.UserID, req.ID)
		return fmt.Errorf("%w: only clients can delete jobs", ErrForbidden)
	}

	job, err := s.jobRepo.GetByID(ctx, &dto.GetJobByIDRequest{ID: req.ID})
	if err != nil {
		return mapRepoError(err, "fetching job for delete check")
	}
	if job.CreatedBy != req.Caller.UserID {
		log.Printf("DeleteJob: Forbidden attempt on job %s by non-owner %s", req.ID, req.Caller.UserID)
		return fmt.Errorf("%w: not your job", ErrForbidden)
	}

	if err := s.jobRepo.Delete(ctx, req.ID); err != nil {
		return mapRepoError(err, "deleting job")
	}
	log.Printf("Job %s deleted by client %s", req.ID, req.Caller.UserID)
	return nil
}
