package dto

import (
	"time"

	"edurooms/infras/jwt"
	userModel "edurooms/internal/domains/user/model"
	userDto "edurooms/internal/domains/user/model/dto"
	gModel "edurooms/shared/model"
)

// RegisterRequest creates a teacher account. Administrators are only created by other administrators.
type RegisterRequest struct {
	Name       string  `json:"name"                 validate:"required,max=100"`
	Email      string  `json:"email"                validate:"required,email,max=150"`
	Password   string  `json:"password"             validate:"required,min=8,max=72"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=100"`
}

func (r *RegisterRequest) ToUserModel(actor, hashedPassword string, now time.Time) userModel.User {
	return userModel.User{
		Name:       r.Name,
		Email:      r.Email,
		Password:   hashedPassword,
		Role:       userModel.RoleTeacher,
		Status:     userModel.StatusEnabled,
		Department: r.Department,
		FirstLogin: true,
		Metadata:   gModel.NewMetadata(now, actor),
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	TokenType    string               `json:"token_type"`
	ExpiresIn    int64                `json:"expires_in"`
	User         userDto.UserResponse `json:"user"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

// UpdatePasswordRequest also clears the first-login flag.
type UpdatePasswordRequest struct {
	Password   string `db:"password"`
	FirstLogin *bool  `db:"first_login"`
}
