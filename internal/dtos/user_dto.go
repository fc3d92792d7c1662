package dtos

import (
	"github.com/jobdesk/backend/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"` // defaults to candidate
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdateRequest carries a partial merge; empty fields keep the
// stored value.
type ProfileUpdateRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Location      string `json:"location"`
	Qualification string `json:"qualification"`
	Experience    string `json:"experience"`
	Skills        string `json:"skills"`
	Password      string `json:"password"`
}

type RoleUpdateRequest struct {
	Role string `json:"role" binding:"required"`
}

// AuthResponse is the register/login payload: the sanitized user plus
// a fresh bearer token.
type AuthResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

func NewAuthResponse(u *models.User, token string) AuthResponse {
	return AuthResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		Token: token,
	}
}

// ApplicantSummary is the reduced applicant view shown to employers.
type ApplicantSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
