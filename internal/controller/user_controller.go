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

type UserController struct {
	UserService    *service.UserService
	StorageService *service.StorageService
	LeadRepo       *repository.LeadRepository
}

func NewUserController(userService *service.UserService, storageService *service.StorageService, leadRepo *repository.LeadRepository) *UserController {
	return &UserController{
		UserService:    userService,
		StorageService: storageService,
		LeadRepo:       leadRepo,
	}
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.UpdateProfileRequest true "fields to update"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Router /api/users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// UploadCV godoc
// @Summary Upload a CV
// @Description Accepts pdf, doc or docx up to 5MB and attaches it to the profile.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CV file"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/users/me/cv [post]
func (c *UserController) UploadCV(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	url, err := c.StorageService.UploadCV(ctx.Request.Context(), claims.UserID, file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SetCV(claims.UserID, url); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}

// UploadImage godoc
// @Summary Upload a profile image
// @Description Accepts jpeg, png or webp up to 2MB.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "image file"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/users/me/image [post]
func (c *UserController) UploadImage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	url, err := c.StorageService.UploadProfileImage(ctx.Request.Context(), claims.UserID, file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SetImage(claims.UserID, url); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}

// UploadCompanyLogo godoc
// @Summary Upload a company logo
// @Description Accepts jpeg, png or webp up to 2MB. Employer accounts only.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "logo file"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/users/me/company-logo [post]
func (c *UserController) UploadCompanyLogo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	url, err := c.StorageService.UploadCompanyLogo(ctx.Request.Context(), claims.Email, file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SetCompanyLogo(claims.UserID, url); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "filter by role"
// @Param q query string false "search name or email"
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	filters := repository.UserFilters{
		Role:  model.UserRole(ctx.Query("role")),
		Query: ctx.Query("q"),
		Page:  page,
		Limit: limit,
	}

	users, total, err := c.UserService.ListUsers(filters)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// GetUser godoc
// @Summary Get one user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "user id"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/admin/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.UserService.GetUser(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

type UpdateRoleRequest struct {
	Role model.UserRole `json:"role" binding:"required"`
}

// UpdateRole godoc
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "user id"
// @Param body body UpdateRoleRequest true "new role"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/users/{id}/role [put]
func (c *UserController) UpdateRole(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.UpdateRole(ctx.Param("id"), req.Role, claims.Role); err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case !req.Role.Valid():
			util.BadRequest(ctx, "unknown role")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "user id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	if err := c.UserService.DeleteUser(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

type AddRemarkRequest struct {
	UserEmail string `json:"userEmail" binding:"required,email"`
	Remark    string `json:"remark" binding:"required"`
}

// AddConsultancyRemark godoc
// @Summary Add a consultancy remark
// @Description Attaches a free-form note to a user's consultancy record.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddRemarkRequest true "remark"
// @Success 201 {object} util.Response{data=model.ConsultancyRemark}
// @Failure 400 {object} util.Response
// @Router /api/admin/consultancy [post]
func (c *UserController) AddConsultancyRemark(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddRemarkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	remark, err := c.UserService.AddConsultancyRemark(req.UserEmail, req.Remark, claims.Email)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, remark)
}

// ListConsultancyRemarks godoc
// @Summary List consultancy remarks for a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param email query string true "user email"
// @Success 200 {object} util.Response{data=[]model.ConsultancyRemark}
// @Router /api/admin/consultancy [get]
func (c *UserController) ListConsultancyRemarks(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		util.BadRequest(ctx, "email is required")
		return
	}

	remarks, err := c.UserService.ListConsultancyRemarks(email)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, remarks)
}

// ListLeads godoc
// @Summary List signup leads
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/leads [get]
func (c *UserController) ListLeads(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	leads, total, err := c.LeadRepo.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: leads, Total: total, Page: page, Limit: limit})
}

// UserStats godoc
// @Summary User totals broken down by role
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.UserStats}
// @Router /api/admin/users/stats [get]
func (c *UserController) UserStats(ctx *gin.Context) {
	stats, err := c.UserService.Stats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
