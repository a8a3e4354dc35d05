package controller

import (
	"encoding/json"
	"errors"
	"strconv"

	"jobsdoor_backend/internal/model"
	"jobsdoor_backend/internal/repository"
	"jobsdoor_backend/internal/service"
	"jobsdoor_backend/internal/util"
	"jobsdoor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// CreateAssessment godoc
// @Summary Create an assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateAssessmentRequest true "assessment definition"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Failure 400 {object} util.Response
// @Router /api/admin/assessments [post]
func (c *AssessmentController) CreateAssessment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment, err := c.AssessmentService.CreateAssessment(req, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, assessment)
}

// UpdateAssessment godoc
// @Summary Update an assessment
// @Description Replaces the question set when questions are provided.
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Param body body service.UpdateAssessmentRequest true "fields to update"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/assessments/{id} [put]
func (c *AssessmentController) UpdateAssessment(ctx *gin.Context) {
	var req service.UpdateAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment, err := c.AssessmentService.UpdateAssessment(ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, assessment)
}

// DeleteAssessment godoc
// @Summary Delete an assessment and its questions
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/assessments/{id} [delete]
func (c *AssessmentController) DeleteAssessment(ctx *gin.Context) {
	if err := c.AssessmentService.DeleteAssessment(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// GetAssessmentAdmin godoc
// @Summary Get an assessment with answers
// @Description Admin view including correct answers and explanations.
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 404 {object} util.Response
// @Router /api/admin/assessments/{id} [get]
func (c *AssessmentController) GetAssessmentAdmin(ctx *gin.Context) {
	assessment, err := c.AssessmentService.GetAssessment(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, assessment)
}

func assessmentFiltersFromQuery(ctx *gin.Context) repository.AssessmentFilters {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	filters := repository.AssessmentFilters{
		Category:   ctx.Query("category"),
		Difficulty: model.Difficulty(ctx.Query("difficulty")),
		CreatedBy:  ctx.Query("createdBy"),
		Page:       page,
		Limit:      limit,
	}
	if raw := ctx.Query("isActive"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			filters.IsActive = &active
		}
	}
	return filters
}

// ListAssessments godoc
// @Summary List available assessments
// @Description Candidate listing; only active assessments, without answers.
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param category query string false "filter by category"
// @Param difficulty query string false "filter by difficulty"
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/assessments [get]
func (c *AssessmentController) ListAssessments(ctx *gin.Context) {
	filters := assessmentFiltersFromQuery(ctx)
	active := true
	filters.IsActive = &active

	assessments, total, err := c.AssessmentService.ListAssessments(filters)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	views := make([]*service.CandidateAssessment, 0, len(assessments))
	for i := range assessments {
		views = append(views, service.CandidateView(&assessments[i]))
	}

	util.Success(ctx, util.PageResponse{List: views, Total: total, Page: filters.Page, Limit: filters.Limit})
}

// ListAssessmentsAdmin godoc
// @Summary List all assessments
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param category query string false "filter by category"
// @Param difficulty query string false "filter by difficulty"
// @Param isActive query bool false "filter by active flag"
// @Param createdBy query string false "filter by creator id"
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/assessments [get]
func (c *AssessmentController) ListAssessmentsAdmin(ctx *gin.Context) {
	filters := assessmentFiltersFromQuery(ctx)

	assessments, total, err := c.AssessmentService.ListAssessments(filters)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: assessments, Total: total, Page: filters.Page, Limit: filters.Limit})
}

// GetAssessment godoc
// @Summary Get one assessment for taking
// @Description Candidate view without correct answers or explanations.
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Success 200 {object} util.Response{data=service.CandidateAssessment}
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id} [get]
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	assessment, err := c.AssessmentService.GetAssessment(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, service.CandidateView(assessment))
}

// StartAssessment godoc
// @Summary Start an attempt
// @Description Opens a fresh in-progress attempt; the assessment's time limit is fixed at this point.
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Success 201 {object} util.Response{data=model.UserAssessment}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id}/start [post]
func (c *AssessmentController) StartAssessment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.AssessmentService.StartAssessment(ctx.Param("id"), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssessmentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAssessmentInactive):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, attempt)
}

type SubmitAnswerRequest struct {
	QuestionID string          `json:"questionId" binding:"required"`
	Answer     json.RawMessage `json:"answer" binding:"required"`
}

// SubmitAnswer godoc
// @Summary Record an answer on an attempt
// @Description Replaces any earlier answer to the same question. Rejected once the time limit has elapsed.
// @Tags attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "attempt id"
// @Param body body SubmitAnswerRequest true "answer"
// @Success 200 {object} util.Response{data=model.UserAssessment}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/attempts/{id}/answers [post]
func (c *AssessmentController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.AssessmentService.GetUserAssessment(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if attempt.UserID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	updated, err := c.AssessmentService.SubmitAnswer(attempt.ID, req.QuestionID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotInProgress),
			errors.Is(err, util.ErrTimeLimitExceeded):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrAttemptConflict):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, updated)
}

// SubmitAssessment godoc
// @Summary Finalize an attempt
// @Description Scores the attempt and marks it completed. Terminal; further submissions are rejected.
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path string true "attempt id"
// @Success 200 {object} util.Response{data=model.AssessmentResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/attempts/{id}/submit [post]
func (c *AssessmentController) SubmitAssessment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.AssessmentService.GetUserAssessment(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if attempt.UserID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	result, err := c.AssessmentService.SubmitAssessment(attempt.ID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotInProgress):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrAttemptConflict):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.AttemptSubmissions.WithLabelValues(strconv.FormatBool(result.Passed)).Inc()

	util.Success(ctx, result)
}

// MyAttempts godoc
// @Summary List the caller's attempts
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param status query string false "filter by status"
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/attempts/mine [get]
func (c *AssessmentController) MyAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pageParams(ctx)
	filters := repository.AttemptFilters{
		UserID: claims.UserID,
		Status: model.AttemptStatus(ctx.Query("status")),
		Page:   page,
		Limit:  limit,
	}

	attempts, total, err := c.AssessmentService.ListUserAssessments(filters)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: attempts, Total: total, Page: page, Limit: limit})
}

// GetAttempt godoc
// @Summary Get one attempt
// @Description The attempt owner or an admin can view an attempt.
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path string true "attempt id"
// @Success 200 {object} util.Response{data=model.UserAssessment}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/attempts/{id} [get]
func (c *AssessmentController) GetAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.AssessmentService.GetUserAssessment(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if attempt.UserID != claims.UserID && !claims.Role.IsAdmin() {
		util.Forbidden(ctx)
		return
	}

	util.Success(ctx, attempt)
}
