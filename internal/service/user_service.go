package service

import (
	"errors"
	"fmt"

	"jobsdoor_backend/internal/model"
	"jobsdoor_backend/internal/repository"
	"jobsdoor_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo        *repository.UserRepository
	ConsultancyRepo *repository.ConsultancyRepository
}

func NewUserService(userRepo *repository.UserRepository, consultancyRepo *repository.ConsultancyRepository) *UserService {
	return &UserService{
		UserRepo:        userRepo,
		ConsultancyRepo: consultancyRepo,
	}
}

func (s *UserService) GetUser(id string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *UserService) GetUserByEmail(email string) (*model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	PhoneNo   *string `json:"phoneNo"`
	DOB       *string `json:"dob"`
	Gender    *string `json:"gender" binding:"omitempty,oneof=male female other"`
}

func (s *UserService) UpdateProfile(id string, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.PhoneNo != nil {
		user.PhoneNo = *req.PhoneNo
	}
	if req.DOB != nil {
		user.DOB = *req.DOB
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetCV(id, url string) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	user.CV = url
	return s.UserRepo.Update(user)
}

func (s *UserService) SetImage(id, url string) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	user.Image = url
	return s.UserRepo.Update(user)
}

func (s *UserService) SetCompanyLogo(id, url string) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	user.CompanyLogo = url
	return s.UserRepo.Update(user)
}

func (s *UserService) ListUsers(filters repository.UserFilters) ([]model.User, int64, error) {
	return s.UserRepo.List(filters)
}

// UpdateRole assigns role to the user. Granting an admin-level role is
// reserved for master admins.
func (s *UserService) UpdateRole(id string, role, actorRole model.UserRole) error {
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}
	if role.IsAdmin() && actorRole != model.MasterAdmin {
		return util.ErrPermissionDenied
	}
	if _, err := s.GetUser(id); err != nil {
		return err
	}
	return s.UserRepo.UpdateRole(id, role)
}

func (s *UserService) DeleteUser(id string) error {
	if _, err := s.GetUser(id); err != nil {
		return err
	}
	return s.UserRepo.Delete(id)
}

func (s *UserService) AddConsultancyRemark(userEmail, remark, addedBy string) (*model.ConsultancyRemark, error) {
	if _, err := s.GetUserByEmail(userEmail); err != nil {
		return nil, err
	}

	r := &model.ConsultancyRemark{
		UserEmail: userEmail,
		Remark:    remark,
		AddedBy:   addedBy,
	}
	if err := s.ConsultancyRepo.AddRemark(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *UserService) ListConsultancyRemarks(userEmail string) ([]model.ConsultancyRemark, error) {
	return s.ConsultancyRepo.ListRemarks(userEmail)
}

type UserStats struct {
	TotalUsers    int64                    `json:"totalUsers"`
	VerifiedUsers int64                    `json:"verifiedUsers"`
	ByRole        map[model.UserRole]int64 `json:"byRole"`
	RecentUsers   []model.User             `json:"recentUsers"`
}

func (s *UserService) Stats() (*UserStats, error) {
	total, err := s.UserRepo.Count()
	if err != nil {
		return nil, err
	}

	verified, err := s.UserRepo.CountVerified()
	if err != nil {
		return nil, err
	}

	byRole := make(map[model.UserRole]int64, 4)
	for _, role := range []model.UserRole{model.Candidate, model.Employer, model.Admin, model.MasterAdmin} {
		n, err := s.UserRepo.CountByRole(role)
		if err != nil {
			return nil, err
		}
		byRole[role] = n
	}

	recent, err := s.UserRepo.Recent(5)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		TotalUsers:    total,
		VerifiedUsers: verified,
		ByRole:        byRole,
		RecentUsers:   recent,
	}, nil
}
