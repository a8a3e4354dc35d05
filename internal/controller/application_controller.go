package controller

import (
	"errors"
	"strconv"

	"jobsdoor_backend/internal/service"
	"jobsdoor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ApplicationController struct {
	ApplicationService *service.ApplicationService
	UserService        *service.UserService
	JobService         *service.JobService
}

func NewApplicationController(applicationService *service.ApplicationService, userService *service.UserService, jobService *service.JobService) *ApplicationController {
	return &ApplicationController{
		ApplicationService: applicationService,
		UserService:        userService,
		JobService:         jobService,
	}
}

func pageParams(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	return page, limit
}

// Apply godoc
// @Summary Apply to a job
// @Description Files an application for the caller. One application per job per user.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateApplicationRequest true "application"
// @Success 201 {object} util.Response{data=model.JobApplication}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/applications [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.GetUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	app, err := c.ApplicationService.Apply(req, user)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrJobNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrJobInactive):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadyApplied):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, app)
}

// MyApplications godoc
// @Summary List the caller's applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/applications/mine [get]
func (c *ApplicationController) MyApplications(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pageParams(ctx)
	apps, total, err := c.ApplicationService.ListForUser(claims.Email, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: apps, Total: total, Page: page, Limit: limit})
}

// ListForJob godoc
// @Summary List applications to one job
// @Description The posting employer or an admin can view a job's applications.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "job id"
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/jobs/{id}/applications [get]
func (c *ApplicationController) ListForJob(ctx *gin.Context) {
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

	if job.CompanyEmail != claims.Email && !claims.Role.IsAdmin() {
		util.Forbidden(ctx)
		return
	}

	page, limit := pageParams(ctx)
	apps, total, err := c.ApplicationService.ListForJob(job.ID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: apps, Total: total, Page: page, Limit: limit})
}

// ListForCompany godoc
// @Summary List applications across the caller's postings
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/applications/company [get]
func (c *ApplicationController) ListForCompany(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pageParams(ctx)
	apps, total, err := c.ApplicationService.ListForCompany(claims.Email, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: apps, Total: total, Page: page, Limit: limit})
}

// UpdateStatus godoc
// @Summary Review an application
// @Description Moves an application through the review pipeline.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "application id"
// @Param body body service.UpdateStatusRequest true "new status"
// @Success 200 {object} util.Response{data=model.JobApplication}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/applications/{id}/status [put]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	app, err := c.ApplicationService.GetApplication(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrApplicationNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if !claims.Role.IsAdmin() {
		job, err := c.JobService.GetJob(app.JobID)
		if err != nil || job.CompanyEmail != claims.Email {
			util.Forbidden(ctx)
			return
		}
	}

	var req service.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.ApplicationService.UpdateStatus(app.ID, req, claims.Email)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, updated)
}

// DeleteApplication godoc
// @Summary Withdraw an application
// @Description The applicant or an admin can delete an application.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "application id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/applications/{id} [delete]
func (c *ApplicationController) DeleteApplication(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	app, err := c.ApplicationService.GetApplication(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrApplicationNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if app.ApplicantEmail != claims.Email && !claims.Role.IsAdmin() {
		util.Forbidden(ctx)
		return
	}

	if err := c.ApplicationService.DeleteApplication(app.ID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// ApplicationStats godoc
// @Summary Application totals broken down by status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ApplicationStats}
// @Router /api/admin/applications/stats [get]
func (c *ApplicationController) ApplicationStats(ctx *gin.Context) {
	stats, err := c.ApplicationService.Stats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
