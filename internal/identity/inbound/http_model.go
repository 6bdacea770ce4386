package inbound

import "time"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type LoginOTPRequest struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
}

type OTPRequestRequest struct {
	Identifier string `json:"identifier"`
}

type RegisterRequest struct {
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	FullName     string `json:"full_name"`
	Password     string `json:"password"`
}

type RegisterResendRequest struct {
	Identifier string `json:"identifier"`
}

type RegisterVerifyRequest struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ProfileResponse struct {
	ID           int64     `json:"id,string"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobile_number"`
	FullName     string    `json:"full_name"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
