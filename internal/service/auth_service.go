package service

import (
	"encoding/json"
	"errors"

	"jobsdoor_backend/internal/config"
	"jobsdoor_backend/internal/model"
	"jobsdoor_backend/internal/repository"
	"jobsdoor_backend/internal/util"
	"jobsdoor_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	LeadRepo *repository.LeadRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, leadRepo *repository.LeadRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		LeadRepo: leadRepo,
		Cfg:      cfg,
	}
}

type RegisterRequest struct {
	Email     string         `json:"email" binding:"required,email"`
	Password  string         `json:"password" binding:"required,min=8"`
	FirstName string         `json:"firstName" binding:"required"`
	LastName  string         `json:"lastName"`
	PhoneNo   string         `json:"phoneNo" binding:"required"`
	Role      model.UserRole `json:"role"`
}

func (s *AuthService) Register(req RegisterRequest) (*model.User, error) {
	_, err := s.UserRepo.FindByEmail(req.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := req.Role
	if !role.Valid() || role.IsAdmin() {
		// admin accounts cannot self-register
		role = model.Candidate
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		PhoneNo:   req.PhoneNo,
		Role:      role,
	}

	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	// Every registration also produces a lead record; a failure here must not
	// fail the registration itself.
	applyingFor, _ := json.Marshal([]string{})
	lead := &model.Lead{
		FullName:    user.FullName(),
		PhoneNumber: user.PhoneNo,
		Email:       user.Email,
		ApplyingFor: applyingFor,
		CreatedBy:   user.Email,
	}
	if err := s.LeadRepo.Create(lead); err != nil {
		logger.Log.Error("Failed to create lead for new user", zap.String("email", user.Email), zap.Error(err))
	}

	return user, nil
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	_ = s.UserRepo.UpdateLastLogin(user.ID)

	return token, user, nil
}
