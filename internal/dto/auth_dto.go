package dto

import "github.com/google/uuid"

type RegisterForm struct {
	Username  string `form:"username" json:"username" validate:"required,max=150"`
	Password1 string `form:"password1" json:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" json:"password2" validate:"required"`
	Email     string `form:"email" json:"email" validate:"omitempty,email,max=255"`
}

type LoginForm struct {
	Username   string `form:"username" json:"username" validate:"required"`
	Password   string `form:"password" json:"password" validate:"required"`
	RememberMe bool   `form:"remember_me" json:"remember_me"`
}

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// FormErrorResponse carries field-level validation messages so a client can
// redisplay the form.
type FormErrorResponse struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
