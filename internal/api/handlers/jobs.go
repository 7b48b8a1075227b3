package handlers

import (
	"net/http"

	"github.com/satishkumarramakoti33/sb-works/internal/api/middleware"
	"github.com/satishkumarramakoti33/sb-works/internal/services"
	"github.com/satishkumarramakoti33/sb-works/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// JobHandler holds dependencies for job operations.
type JobHandler struct {
	service   services.JobService
	validator *validator.Validate
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService, validate *validator.Validate) *JobHandler {
	return &JobHandler{
		service:   service,
		validator: validate,
	}
}

var _ JobHandlerInterface = (*JobHandler)(nil)

// CreateJob godoc
// @Summary      Post a new job
// @Description  Creates an open job owned by the authenticated client.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job body      dto.CreateJobRequest true  "Job details"
// @Success      201 {object}  dto.JobResponse "Job created successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - wrong role"
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	caller, err := middleware.GetIdentityFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}
	req.Caller = caller

	createdJob, err := h.service.CreateJob(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapJobModelToJobResponse(createdJob))
}

// ListJobs godoc
// @Summary      List all jobs
// @Description  Public listing of every job, newest first, with creator and applicant summaries.
// @Tags         jobs
// @Produce      json
// @Success      200 {array}   dto.JobResponse "All jobs"
// @Router       /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.service.ListJobs(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapJobModelsToJobResponses(jobs))
}

// GetJobByID godoc
// @Summary      Get a job by ID
// @Description  Public read of a single job with populated identities.
// @Tags         jobs
// @Produce      json
// @Param        id path       string true  "Job ID" Format(uuid)
// @Success      200 {object}  dto.JobResponse "Job"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetJobByID(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	job, err := h.service.GetJob(c.Request.Context(), &dto.GetJobByIDRequest{ID: jobID})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}

// ListMyJobs godoc
// @Summary      List jobs posted by the authenticated client
// @Tags         jobs
// @Produce      json
// @Success      200 {array}   dto.JobResponse "Posted jobs"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - wrong role"
// @Router       /jobs/my-jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	caller, err := middleware.GetIdentityFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	jobs, err := h.service.ListMyJobs(c.Request.Context(), &dto.ListMyJobsRequest{Caller: caller})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapJobModelsToJobResponses(jobs))
}

// ListAppliedJobs godoc
// @Summary      List jobs the authenticated freelancer has applied to
// @Tags         jobs
// @Produce      json
// @Success      200 {array}   dto.JobResponse "Applied jobs"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - wrong role"
// @Router       /jobs/me/applied [get]
// @Security     BearerAuth
func (h *JobHandler) ListAppliedJobs(c *gin.Context) {
	caller, err := middleware.GetIdentityFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	jobs, err := h.service.ListAppliedJobs(c.Request.Context(), &dto.ListAppliedJobsRequest{Caller: caller})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapJobModelsToJobResponses(jobs))
}

// ListAssignedJobs godoc
// @Summary      List jobs assigned to the authenticated freelancer
// @Description  Ordered by most recently updated first.
// @Tags         jobs
// @Produce      json
// @Success      200 {array}   dto.JobResponse "Assigned jobs"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - wrong role"
// @Router       /jobs/assigned/me [get]
// @Security     BearerAuth
func (h *JobHandler) ListAssignedJobs(c *gin.Context) {
	caller, err := middleware.GetIdentityFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	jobs, err := h.service.ListAssignedJobs(c.Request.Context(), &dto.ListAssignedJobsRequest{Caller: caller})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapJobModelsToJobResponses(jobs))
}

// ApplyToJob godoc
// @Summary      Apply to a job
// @Description  Records the authenticated freelancer's application. Re-applying is rejected.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id path       string true  "Job ID" Format(uuid)
// @Param        application body dto.ApplyToJobRequest false "Cover letter"
// @Success      200 {object}  dto.MessageResponse "Applied successfully"
// @Failure      400 {object}  map[string]string "Already applied"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - wrong role"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Router       /jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *JobHandler) ApplyToJob(c *gin.Context) {
	caller, err := middleware.GetIdentityFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	var req dto.ApplyToJobRequest
	// The body is optional: an application may have an empty cover letter.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}
	req.JobID = jobID
	req.Caller = caller

	if err := h.service.Apply(c.Request.Context(), &req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Applied successfully"})
}

// AcceptFreelancer godoc
// @Summary      Accept an applicant for a job
// @Description  Owning client assigns the job to a freelancer who applied; job must be open.
// @Tags         jobs
// @Produce      json
// @Param        id path           string true "Job ID" Format(uuid)
// @Param        freelancerId path string true "Freelancer ID" Format(uuid)
// @Success      200 {object}  dto.JobResponse "Updated job"
// @Failure      400 {object}  map[string]string "Job not open or freelancer did not apply"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - not the owner"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Router       /jobs/{id}/accept/{freelancerId} [post]
// @Security     BearerAuth
func (h *JobHandler) AcceptFreelancer(c *gin.Context) {
	caller, err := middleware.GetIdentityFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}
	freelancerID, err := uuid.Parse(c.Param("freelancerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid freelancer ID format"})
		return
	}

	req := dto.AcceptFreelancerRequest{JobID: jobID, FreelancerID: freelancerID, Caller: caller}
	job, err := h.service.AcceptFreelancer(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}

// CompleteJob godoc
// @Summary      Mark an assigned job as completed
// @Description  Only the assigned freelancer may complete; completed is terminal.
// @Tags         jobs
// @Produce      json
// @Param        id path       string true "Job ID" Format(uuid)
// @Success      200 {object}  dto.JobResponse "Updated job"
// @Failure      400 {object}  map[string]string "Job is not in assigned state"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - not the assignee"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Router       /jobs/{id}/complete [post]
// @Security     BearerAuth
func (h *JobHandler) CompleteJob(c *gin.Context) {
	caller, err := middleware.GetIdentityFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	job, err := h.service.CompleteJob(c.Request.Context(), &dto.CompleteJobRequest{JobID: jobID, Caller: caller})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}

// DeleteJob godoc
// @Summary      Delete a job
// @Description  Owning client deletes the job and its applications.
// @Tags         jobs
// @Produce      json
// @Param        id path       string true "Job ID" Format(uuid)
// @Success      200 {object}  dto.MessageResponse "Job deleted successfully"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - not the owner"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) DeleteJob(c *gin.Context) {
	caller, err := middleware.GetIdentityFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	if err := h.service.DeleteJob(c.Request.Context(), &dto.DeleteJobRequest{ID: jobID, Caller: caller}); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Job deleted successfully"})
}
