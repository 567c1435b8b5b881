package models

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"display_name"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=9,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token         string `json:"token"`
	User          User   `json:"user"`
	LoginAttempts int    `json:"login_attempts"`
}

// LoginFailure is the payload for rejected login attempts.
type LoginFailure struct {
	RemainingAttempts int  `json:"remaining_attempts"`
	Locked            bool `json:"locked"`
}
