package routes

import (
	"github.com/satishkumarramakoti33/sb-works/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers all routes related to jobs. Listing and reading
// a single job are public; everything else requires authentication.
func RegisterJobRoutes(
	rg *gin.RouterGroup,
	jobHandler handlers.JobHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", jobHandler.ListJobs)
		jobs.GET("/:id", jobHandler.GetJobByID)
	}

	protected := rg.Group("/jobs")
	protected.Use(authMiddleware)
	{
		protected.POST("", jobHandler.CreateJob)
		protected.GET("/my-jobs", jobHandler.ListMyJobs)
		protected.GET("/me/applied", jobHandler.ListAppliedJobs)
		protected.GET("/assigned/me", jobHandler.ListAssignedJobs)
		protected.POST("/:id/apply", jobHandler.ApplyToJob)
		protected.POST("/:id/accept/:freelancerId", jobHandler.AcceptFreelancer)
		protected.POST("/:id/complete", jobHandler.CompleteJob)
		protected.DELETE("/:id", jobHandler.DeleteJob)
	}
}
