package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/jobdesk/backend/internal/apperrors"
	"github.com/jobdesk/backend/internal/auth"
	"github.com/jobdesk/backend/internal/dtos"
	"github.com/jobdesk/backend/internal/models"
)

type UserService struct {
	db     *gorm.DB
	tokens *auth.TokenManager
}

func NewUserService(db *gorm.DB, tokens *auth.TokenManager) *UserService {
	return &UserService{db: db, tokens: tokens}
}

// Register creates a user and issues its first token. Only candidate
// and employer are self-assignable; a duplicate email is a conflict.
func (s *UserService) Register(req *dtos.RegisterRequest) (*models.User, string, error) {
	role := req.Role
	if role == "" {
		role = models.RoleCandidate
	}
	if role != models.RoleCandidate && role != models.RoleEmployer {
		return nil, "", apperrors.Validation("role must be candidate or employer")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, "", apperrors.Internal("checking email", err)
	}
	if count > 0 {
		return nil, "", apperrors.Conflict("user already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", apperrors.Internal("hashing password", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    email,
		Password: hash,
		Role:     role,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, "", apperrors.Internal("creating user", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.Internal("issuing token", err)
	}
	return user, token, nil
}

// Login verifies credentials. A wrong email and a wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(req *dtos.LoginRequest) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.Validation("invalid credentials")
		}
		return nil, "", apperrors.Internal("loading user", err)
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		return nil, "", apperrors.Validation("invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.Internal("issuing token", err)
	}
	return &user, token, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("loading user", err)
	}
	return &user, nil
}

// UpdateProfile merges the provided fields over the stored record. The
// role is deliberately untouchable here.
func (s *UserService) UpdateProfile(id uint, req *dtos.ProfileUpdateRequest) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Location != "" {
		user.Location = req.Location
	}
	if req.Qualification != "" {
		user.Qualification = req.Qualification
	}
	if req.Experience != "" {
		user.Experience = req.Experience
	}
	if req.Skills != "" {
		user.Skills = req.Skills
	}
	if strings.TrimSpace(req.Password) != "" {
		if len(req.Password) < 6 {
			return nil, apperrors.Validation("password must be at least 6 characters")
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, apperrors.Internal("hashing password", err)
		}
		user.Password = hash
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, apperrors.Internal("saving user", err)
	}
	return user, nil
}

// Admin operations below; route-level gating keeps them admin-only.

func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, apperrors.Internal("listing users", err)
	}
	return users, nil
}

func (s *UserService) DeleteUser(id uint) error {
	res := s.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return apperrors.Internal("deleting user", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}

// UpdateRole is the only path that may change a user's role.
func (s *UserService) UpdateRole(id uint, role string) (*models.User, error) {
	valid := false
	for _, r := range models.ValidRoles {
		if r == role {
			valid = true
			break
		}
	}
	if !valid {
		return nil, apperrors.Validation("invalid role")
	}

	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.db.Save(user).Error; err != nil {
		return nil, apperrors.Internal("saving user", err)
	}
	return user, nil
}
