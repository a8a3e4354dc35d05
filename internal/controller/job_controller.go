package controller

import (
	"errors"
	"strconv"

	"jobsdoor_backend/internal/model"
	"jobsdoor_backend/internal/repository"
	"jobsdoor_backend/internal/service"
	"jobsdoor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type JobController struct {
	JobService *service.JobService
}

func NewJobController(jobService *service.JobService) *JobController {
	return &JobController{JobService: jobService}
}

func jobFiltersFromQuery(ctx *gin.Context) repository.JobFilters {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	return repository.JobFilters{
		Query:    ctx.Query("q"),
		Location: ctx.Query("location"),
		Type:     model.JobType(ctx.Query("type")),
		Company:  ctx.Query("company"),
		Page:     page,
		Limit:    limit,
	}
}

// ListJobs godoc
// @Summary List active job postings
// @Description Public listing; only active jobs are returned.
// @Tags jobs
// @Produce json
// @Param q query string false "search title, company, location or description"
// @Param location query string false "filter by location"
// @Param type query string false "filter by job type"
// @Param company query string false "filter by company"
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/jobs [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	filters := jobFiltersFromQuery(ctx)

	jobs, total, err := c.JobService.ListActiveJobs(filters)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: jobs, Total: total, Page: filters.Page, Limit: filters.Limit})
}

// ListAllJobs godoc
// @Summary List all job postings
// @Description Admin listing including inactive jobs.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/jobs [get]
func (c *JobController) ListAllJobs(ctx *gin.Context) {
	filters := jobFiltersFromQuery(ctx)

	jobs, total, err := c.JobService.ListJobs(filters)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: jobs, Total: total, Page: filters.Page, Limit: filters.Limit})
}

// GetJob godoc
// @Summary Get one job posting
// @Tags jobs
// @Produce json
// @Param id path string true "job id"
// @Success 200 {object} util.Response{data=model.Job}
// @Failure 404 {object} util.Response
// @Router /api/jobs/{id} [get]
func (c *JobController) GetJob(ctx *gin.Context) {
	job, err := c.JobService.GetJob(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrJobNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, job)
}

// CreateJob godoc
// @Summary Post a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateJobRequest true "job posting"
// @Success 201 {object} util.Response{data=model.Job}
// @Failure 400 {object} util.Response
// @Router /api/jobs [post]
func (c *JobController) CreateJob(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	job, err := c.JobService.CreateJob(req, claims.UserID, claims.Email)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, job)
}

// UpdateJob godoc
// @Summary Update a job posting
// @Description The posting employer or an admin can update a job.
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "job id"
// @Param body body service.UpdateJobRequest true "fields to update"
// @Success 200 {object} util.Response{data=model.Job}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/jobs/{id} [put]
func (c *JobController) UpdateJob(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	job, err := c.JobService.GetJob(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrJobNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if job.CreatedBy != claims.UserID && !claims.Role.IsAdmin() {
		util.Forbidden(ctx)
		return
	}

	var req service.UpdateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.JobService.UpdateJob(job.ID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, updated)
}

// DeleteJob godoc
// @Summary Delete a job posting
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "job id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/jobs/{id} [delete]
func (c *JobController) DeleteJob(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	job, err := c.JobService.GetJob(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrJobNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if job.CreatedBy != claims.UserID && !claims.Role.IsAdmin() {
		util.Forbidden(ctx)
		return
	}

	if err := c.JobService.DeleteJob(job.ID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// MyJobs godoc
// @Summary List jobs posted under the caller's company email
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Job}
// @Router /api/jobs/mine [get]
func (c *JobController) MyJobs(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	jobs, err := c.JobService.ListJobsByCompany(claims.Email)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, jobs)
}

// JobStats godoc
// @Summary Job totals broken down by type
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.JobStats}
// @Router /api/admin/jobs/stats [get]
func (c *JobController) JobStats(ctx *gin.Context) {
	stats, err := c.JobService.Stats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
