package dto

import (
	"time"

	"edurooms/internal/domains/user/model"
	"edurooms/shared"
	gDto "edurooms/shared/dto"
	gModel "edurooms/shared/model"
)

type CreateUserRequest struct {
	Name       string  `json:"name"                 validate:"required,max=100"`
	Email      string  `json:"email"                validate:"required,email,max=150"`
	Password   string  `json:"password"             validate:"required,min=8,max=72"`
	Role       string  `json:"role"                 validate:"required,oneof=teacher admin"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=100"`
}

func (r *CreateUserRequest) ToModel(actor string, hashedPassword string, now time.Time) model.User {
	role, err := model.ParseRole(r.Role)
	if err != nil {
		role = model.RoleTeacher
	}

	return model.User{
		Name:       r.Name,
		Email:      r.Email,
		Password:   hashedPassword,
		Role:       role,
		Status:     model.StatusEnabled,
		Department: r.Department,
		FirstLogin: true,
		Metadata:   gModel.NewMetadata(now, actor),
	}
}

type UpdateUserRequest struct {
	Name       *string `db:"name"       json:"name,omitempty"       validate:"omitempty,max=100"`
	Role       *string `db:"role"       json:"role,omitempty"       validate:"omitempty,oneof=teacher admin"`
	Status     *string `db:"status"     json:"status,omitempty"     validate:"omitempty,oneof=enabled disabled"`
	Department *string `db:"department" json:"department,omitempty" validate:"omitempty,max=100"`
}

type UserResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Status     string  `json:"status"`
	Department *string `json:"department,omitempty"`
	FirstLogin bool    `json:"first_login"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Role = string(model.Role)
	r.Status = string(model.Status)
	r.Department = model.Department
	r.FirstLogin = model.FirstLogin
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
