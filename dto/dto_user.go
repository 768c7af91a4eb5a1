package dto

import "hoagiehub/internal/models"

type CreateUserReq struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty"`
}

type LoginResp struct {
	User        models.User `json:"user"`
	AccessToken string      `json:"accessToken"`
}
