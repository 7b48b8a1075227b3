package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	mock_storage "github.com/satishkumarramakoti33/sb-works/internal/mocks"
	"github.com/satishkumarramakoti33/sb-works/internal/models"
	"github.com/satishkumarramakoti33/sb-works/internal/services"
	"github.com/satishkumarramakoti33/sb-works/internal/storage"
	"github.com/satishkumarramakoti33/sb-works/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Helper to create a pointer to a UUID
func ptrUUID(id uuid.UUID) *uuid.UUID { return &id }

// Helper to create a pointer to a float64
func ptrFloat64(f float64) *float64 { return &f }

func clientIdentity() models.Identity {
	return models.Identity{UserID: uuid.New(), Role: models.RoleClient}
}

func freelancerIdentity() models.Identity {
	return models.Identity{UserID: uuid.New(), Role: models.RoleFreelancer}
}

func setupJobServiceTest(t *testing.T) (context.Context, services.JobService, *mock_storage.MockJobRepository, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	mockJobRepo := mock_storage.NewMockJobRepository(ctrl)
	jobService := services.NewJobService(mockJobRepo)
	ctx := context.Background()
	return ctx, jobService, mockJobRepo, ctrl
}

func TestJobService_CreateJob_Success(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := clientIdentity()
	req := &dto.CreateJobRequest{
		Title:       "Build landing page",
		Description: "Responsive marketing site",
		Budget:      ptrFloat64(500),
		Category:    "Web",
		Caller:      caller,
	}

	expectedJob := &models.Job{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Budget:      *req.Budget,
		Category:    req.Category,
		CreatedBy:   caller.UserID,
		Status:      models.JobStatusOpen,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	mockJobRepo.EXPECT().Create(ctx, req).Return(expectedJob, nil).Times(1)

	job, err := jobService.CreateJob(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, expectedJob, job)
	assert.Equal(t, models.JobStatusOpen, job.Status)
}

func TestJobService_CreateJob_ForbiddenForFreelancer(t *testing.T) {
	ctx, jobService, _, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	req := &dto.CreateJobRequest{
		Title:       "Build landing page",
		Description: "Responsive marketing site",
		Budget:      ptrFloat64(500),
		Caller:      freelancerIdentity(),
	}

	_, err := jobService.CreateJob(ctx, req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrForbidden))
}

func TestJobService_CreateJob_NegativeBudget(t *testing.T) {
	ctx, jobService, _, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	req := &dto.CreateJobRequest{
		Title:       "Build landing page",
		Description: "Responsive marketing site",
		Budget:      ptrFloat64(-1),
		Caller:      clientIdentity(),
	}

	_, err := jobService.CreateJob(ctx, req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrValidation))
}

func TestJobService_CreateJob_ZeroBudgetAllowed(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := clientIdentity()
	req := &dto.CreateJobRequest{
		Title:       "Volunteer gig",
		Description: "Goodwill project",
		Budget:      ptrFloat64(0),
		Caller:      caller,
	}

	expectedJob := &models.Job{ID: uuid.New(), Budget: 0, CreatedBy: caller.UserID, Status: models.JobStatusOpen}
	mockJobRepo.EXPECT().Create(ctx, req).Return(expectedJob, nil).Times(1)

	job, err := jobService.CreateJob(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, float64(0), job.Budget)
}

func TestJobService_CreateJob_MissingBudget(t *testing.T) {
	ctx, jobService, _, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	req := &dto.CreateJobRequest{
		Title:       "Build landing page",
		Description: "Responsive marketing site",
		Caller:      clientIdentity(),
	}

	_, err := jobService.CreateJob(ctx, req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrValidation))
}

func TestJobService_CreateJob_BlankTitle(t *testing.T) {
	ctx, jobService, _, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	req := &dto.CreateJobRequest{
		Title:       "   ",
		Description: "Responsive marketing site",
		Budget:      ptrFloat64(500),
		Caller:      clientIdentity(),
	}

	_, err := jobService.CreateJob(ctx, req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrValidation))
}

func TestJobService_GetJob_NotFound(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	req := &dto.GetJobByIDRequest{ID: uuid.New()}
	mockJobRepo.EXPECT().GetByID(ctx, req).Return(nil, storage.ErrNotFound).Times(1)

	_, err := jobService.GetJob(ctx, req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrNotFound))
}

func TestJobService_ListJobs_Success(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	expected := []models.Job{
		{ID: uuid.New(), Title: "Newest", Status: models.JobStatusOpen},
		{ID: uuid.New(), Title: "Older", Status: models.JobStatusAssigned},
	}
	mockJobRepo.EXPECT().ListAll(ctx).Return(expected, nil).Times(1)

	jobs, err := jobService.ListJobs(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, jobs)
}

func TestJobService_ListMyJobs_ForbiddenForFreelancer(t *testing.T) {
	ctx, jobService, _, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	_, err := jobService.ListMyJobs(ctx, &dto.ListMyJobsRequest{Caller: freelancerIdentity()})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrForbidden))
}

func TestJobService_ListAppliedJobs_ForbiddenForClient(t *testing.T) {
	ctx, jobService, _, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	_, err := jobService.ListAppliedJobs(ctx, &dto.ListAppliedJobsRequest{Caller: clientIdentity()})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrForbidden))
}

func TestJobService_ListAssignedJobs_Success(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := freelancerIdentity()
	expected := []models.Job{{ID: uuid.New(), AssignedTo: ptrUUID(caller.UserID), Status: models.JobStatusAssigned}}
	mockJobRepo.EXPECT().ListByAssignee(ctx, caller.UserID).Return(expected, nil).Times(1)

	jobs, err := jobService.ListAssignedJobs(ctx, &dto.ListAssignedJobsRequest{Caller: caller})

	require.NoError(t, err)
	assert.Equal(t, expected, jobs)
}

func TestJobService_Apply_Success(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := freelancerIdentity()
	jobID := uuid.New()
	job := &models.Job{ID: jobID, Status: models.JobStatusOpen}

	mockJobRepo.EXPECT().GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID}).Return(job, nil).Times(1)
	mockJobRepo.EXPECT().InsertApplication(ctx, jobID, caller.UserID, "I can do this").Return(nil).Times(1)

	err := jobService.Apply(ctx, &dto.ApplyToJobRequest{JobID: jobID, CoverLetter: "I can do this", Caller: caller})

	require.NoError(t, err)
}

func TestJobService_Apply_Duplicate(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := freelancerIdentity()
	jobID := uuid.New()
	job := &models.Job{ID: jobID, Status: models.JobStatusOpen}

	mockJobRepo.EXPECT().GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID}).Return(job, nil).Times(1)
	mockJobRepo.EXPECT().InsertApplication(ctx, jobID, caller.UserID, "").Return(storage.ErrConflict).Times(1)

	err := jobService.Apply(ctx, &dto.ApplyToJobRequest{JobID: jobID, Caller: caller})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrConflict))
	assert.Contains(t, err.Error(), "already applied")
}

func TestJobService_Apply_ForbiddenForClient(t *testing.T) {
	ctx, jobService, _, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	err := jobService.Apply(ctx, &dto.ApplyToJobRequest{JobID: uuid.New(), Caller: clientIdentity()})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrForbidden))
}

func TestJobService_Apply_JobNotFound(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := freelancerIdentity()
	jobID := uuid.New()
	mockJobRepo.EXPECT().GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID}).Return(nil, storage.ErrNotFound).Times(1)

	err := jobService.Apply(ctx, &dto.ApplyToJobRequest{JobID: jobID, Caller: caller})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrNotFound))
}

// Applying to an already assigned job is allowed; the application simply
// cannot be accepted while the job stays out of the open state.
func TestJobService_Apply_AssignedJobStillAccepted(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := freelancerIdentity()
	jobID := uuid.New()
	job := &models.Job{ID: jobID, Status: models.JobStatusAssigned, AssignedTo: ptrUUID(uuid.New())}

	mockJobRepo.EXPECT().GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID}).Return(job, nil).Times(1)
	mockJobRepo.EXPECT().InsertApplication(ctx, jobID, caller.UserID, "").Return(nil).Times(1)

	err := jobService.Apply(ctx, &dto.ApplyToJobRequest{JobID: jobID, Caller: caller})

	require.NoError(t, err)
}

func TestJobService_AcceptFreelancer_Success(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := clientIdentity()
	jobID := uuid.New()
	freelancerID := uuid.New()
	job := &models.Job{
		ID:        jobID,
		CreatedBy: caller.UserID,
		Status:    models.JobStatusOpen,
		Applications: []models.Application{
			{Freelancer: freelancerID},
		},
	}
	assigned := &models.Job{
		ID:         jobID,
		CreatedBy:  caller.UserID,
		Status:     models.JobStatusAssigned,
		AssignedTo: ptrUUID(freelancerID),
	}

	mockJobRepo.EXPECT().GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID}).Return(job, nil).Times(1)
	mockJobRepo.EXPECT().Assign(ctx, jobID, freelancerID).Return(assigned, nil).Times(1)

	updated, err := jobService.AcceptFreelancer(ctx, &dto.AcceptFreelancerRequest{
		JobID:        jobID,
		FreelancerID: freelancerID,
		Caller:       caller,
	})

	require.NoError(t, err)
	assert.Equal(t, models.JobStatusAssigned, updated.Status)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, freelancerID, *updated.AssignedTo)
}

func TestJobService_AcceptFreelancer_ForbiddenForFreelancer(t *testing.T) {
	ctx, jobService, _, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	_, err := jobService.AcceptFreelancer(ctx, &dto.AcceptFreelancerRequest{
		JobID:        uuid.New(),
		FreelancerID: uuid.New(),
		Caller:       freelancerIdentity(),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrForbidden))
}

func TestJobService_AcceptFreelancer_NotOwner(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := clientIdentity()
	jobID := uuid.New()
	job := &models.Job{ID: jobID, CreatedBy: uuid.New(), Status: models.JobStatusOpen}

	mockJobRepo.EXPECT().GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID}).Return(job, nil).Times(1)

	_, err := jobService.AcceptFreelancer(ctx, &dto.AcceptFreelancerRequest{
		JobID:        jobID,
		FreelancerID: uuid.New(),
		Caller:       caller,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrForbidden))
	assert.Contains(t, err.Error(), "not your job")
}

// Accepting a second freelancer after the job left the open state must fail;
// the first assignment stays in place.
func TestJobService_AcceptFreelancer_JobNotOpen(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := clientIdentity()
	jobID := uuid.New()
	firstFreelancer := uuid.New()
	secondFreelancer := uuid.New()
	job := &models.Job{
		ID:         jobID,
		CreatedBy:  caller.UserID,
		Status:     models.JobStatusAssigned,
		AssignedTo: ptrUUID(firstFreelancer),
		Applications: []models.Application{
			{Freelancer: firstFreelancer},
			{Freelancer: secondFreelancer},
		},
	}

	mockJobRepo.EXPECT().GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID}).Return(job, nil).Times(1)

	_, err := jobService.AcceptFreelancer(ctx, &dto.AcceptFreelancerRequest{
		JobID:        jobID,
		FreelancerID: secondFreelancer,
		Caller:       caller,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInvalidState))
	assert.Contains(t, err.Error(), "not open")
	assert.Contains(t, err.Error(), string(models.JobStatusAssigned))
}

func TestJobService_AcceptFreelancer_NotAnApplicant(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := clientIdentity()
	jobID := uuid.New()
	job := &models.Job{
		ID:        jobID,
		CreatedBy: caller.UserID,
		Status:    models.JobStatusOpen,
		Applications: []models.Application{
			{Freelancer: uuid.New()},
		},
	}

	mockJobRepo.EXPECT().GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID}).Return(job, nil).Times(1)

	_, err := jobService.AcceptFreelancer(ctx, &dto.AcceptFreelancerRequest{
		JobID:        jobID,
		FreelancerID: uuid.New(),
		Caller:       caller,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrConflict))
	assert.Contains(t, err.Error(), "has not applied")
}

// A concurrent accept can win between the read and the conditional update;
// the losing accept surfaces as an invalid-state error, never a double
// assignment.
func TestJobService_AcceptFreelancer_LostRace(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := clientIdentity()
	jobID := uuid.New()
	freelancerID := uuid.New()
	job := &models.Job{
		ID:        jobID,
		CreatedBy: caller.UserID,
		Status:    models.JobStatusOpen,
		Applications: []models.Application{
			{Freelancer: freelancerID},
		},
	}

	mockJobRepo.EXPECT().GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID}).Return(job, nil).Times(1)
	mockJobRepo.EXPECT().Assign(ctx, jobID, freelancerID).Return(nil, storage.ErrConflict).Times(1)

	_, err := jobService.AcceptFreelancer(ctx, &dto.AcceptFreelancerRequest{
		JobID:        jobID,
		FreelancerID: freelancerID,
		Caller:       caller,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInvalidState))
}

func TestJobService_CompleteJob_Success(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := freelancerIdentity()
	jobID := uuid.New()
	job := &models.Job{
		ID:         jobID,
		Status:     models.JobStatusAssigned,
		AssignedTo: ptrUUID(caller.UserID),
	}
	completed := &models.Job{
		ID:         jobID,
		Status:     models.JobStatusCompleted,
		AssignedTo: ptrUUID(caller.UserID),
	}

	mockJobRepo.EXPECT().GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID}).Return(job, nil).Times(1)
	mockJobRepo.EXPECT().Complete(ctx, jobID, caller.UserID).Return(completed, nil).Times(1)

	updated, err := jobService.CompleteJob(ctx, &dto.CompleteJobRequest{JobID: jobID, Caller: caller})

	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, updated.Status)
}

func TestJobService_CompleteJob_NotAssignee(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := freelancerIdentity()
	jobID := uuid.New()
	job := &models.Job{
		ID:         jobID,
		Status:     models.JobStatusAssigned,
		AssignedTo: ptrUUID(uuid.New()), // someone else
	}

	mockJobRepo.EXPECT().GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID}).Return(job, nil).Times(1)

	_, err := jobService.CompleteJob(ctx, &dto.CompleteJobRequest{JobID: jobID, Caller: caller})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrForbidden))
	assert.Contains(t, err.Error(), "not assigned to you")
}

func TestJobService_CompleteJob_OpenJob(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := freelancerIdentity()
	jobID := uuid.New()
	job := &models.Job{ID: jobID, Status: models.JobStatusOpen}

	mockJobRepo.EXPECT().GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID}).Return(job, nil).Times(1)

	_, err := jobService.CompleteJob(ctx, &dto.CompleteJobRequest{JobID: jobID, Caller: caller})

	// An open job has no assignee, so the failure is an ownership problem,
	// not a state problem.
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrForbidden))
	assert.Contains(t, err.Error(), "not assigned to you")
}

// A freelancer the job was never assigned to gets forbidden even after the
// job has completed; the state error is reserved for the assignee.
func TestJobService_CompleteJob_NonAssigneeAfterCompletion(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := freelancerIdentity()
	jobID := uuid.New()
	job := &models.Job{
		ID:         jobID,
		Status:     models.JobStatusCompleted,
		AssignedTo: ptrUUID(uuid.New()),
	}

	mockJobRepo.EXPECT().GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID}).Return(job, nil).Times(1)

	_, err := jobService.CompleteJob(ctx, &dto.CompleteJobRequest{JobID: jobID, Caller: caller})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrForbidden))
	assert.False(t, errors.Is(err, services.ErrInvalidState))
}

// Completing twice: the second call sees status completed and reports the
// current state.
func TestJobService_CompleteJob_AlreadyCompleted(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := freelancerIdentity()
	jobID := uuid.New()
	job := &models.Job{
		ID:         jobID,
		Status:     models.JobStatusCompleted,
		AssignedTo: ptrUUID(caller.UserID),
	}

	mockJobRepo.EXPECT().GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID}).Return(job, nil).Times(1)

	_, err := jobService.CompleteJob(ctx, &dto.CompleteJobRequest{JobID: jobID, Caller: caller})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInvalidState))
	assert.Contains(t, err.Error(), string(models.JobStatusCompleted))
}

func TestJobService_CompleteJob_ForbiddenForClient(t *testing.T) {
	ctx, jobService, _, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	_, err := jobService.CompleteJob(ctx, &dto.CompleteJobRequest{JobID: uuid.New(), Caller: clientIdentity()})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrForbidden))
}

func TestJobService_DeleteJob_Success(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := clientIdentity()
	jobID := uuid.New()
	job := &models.Job{ID: jobID, CreatedBy: caller.UserID, Status: models.JobStatusOpen}

	mockJobRepo.EXPECT().GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID}).Return(job, nil).Times(1)
	mockJobRepo.EXPECT().Delete(ctx, jobID).Return(nil).Times(1)

	err := jobService.DeleteJob(ctx, &dto.DeleteJobRequest{ID: jobID, Caller: caller})

	require.NoError(t, err)
}

func TestJobService_DeleteJob_NotOwner(t *testing.T) {
	ctx, jobService, mockJobRepo, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	caller := clientIdentity()
	jobID := uuid.New()
	job := &models.Job{ID: jobID, CreatedBy: uuid.New(), Status: models.JobStatusOpen}

	mockJobRepo.EXPECT().GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID}).Return(job, nil).Times(1)

	err := jobService.DeleteJob(ctx, &dto.DeleteJobRequest{ID: jobID, Caller: caller})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrForbidden))
}

func TestJobService_DeleteJob_ForbiddenForFreelancer(t *testing.T) {
	ctx, jobService, _, ctrl := setupJobServiceTest(t)
	defer ctrl.Finish()

	err := jobService.DeleteJob(ctx, &dto.DeleteJobRequest{ID: uuid.New(), Caller: freelancerIdentity()})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrForbidden))
}
