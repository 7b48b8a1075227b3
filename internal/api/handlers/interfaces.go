package handlers

import "github.com/gin-gonic/gin"

// JobHandlerInterface lists the job endpoints registered by the routes package.
type JobHandlerInterface interface {
	CreateJob(c *gin.Context)
	ListJobs(c *gin.Context)
	GetJobByID(c *gin.Context)
	ListMyJobs(c *gin.Context)
	ListAppliedJobs(c *gin.Context)
	ListAssignedJobs(c *gin.Context)
	ApplyToJob(c *gin.Context)
	AcceptFreelancer(c *gin.Context)
	CompleteJob(c *gin.Context)
	DeleteJob(c *gin.Context)
}

// AuthHandlerInterface lists the auth endpoints registered by the routes package.
type AuthHandlerInterface interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Refresh(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
}
