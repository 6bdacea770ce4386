package inbound

import (
	"github.com/aryasaputra/gokey/internal/identity/usecase"
	"github.com/aryasaputra/gokey/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for authentication and registration
// workflows.
type HTTPEndpoint struct {
	uc uc
}

// Login authenticates a user with email and password and returns a session token.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		AccessToken: resp.AccessToken,
		TokenType:   "Bearer",
	}, nil
}

// LoginOTP authenticates a user with a one-time code and returns a session token.
func (h *HTTPEndpoint) LoginOTP(r *router.Request) (any, error) {
	var req LoginOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.LoginOTP(r.Context(), usecase.LoginOTPInput{
		Identifier: req.Identifier,
		Code:       req.Code,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		AccessToken: resp.AccessToken,
		TokenType:   "Bearer",
	}, nil
}

// OTPRequest issues a one-time login code for an active account.
func (h *HTTPEndpoint) OTPRequest(r *router.Request) (any, error) {
	var req OTPRequestRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.OTPRequest(r.Context(), usecase.OTPRequestInput{
		Identifier: req.Identifier,
	}); err != nil {
		return nil, err
	}

	return MessageResponse{Message: "if the account exists, a code has been sent"}, nil
}

// Register creates a new unverified account and sends a verification code.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		FullName:     req.FullName,
		Password:     req.Password,
	}); err != nil {
		return nil, err
	}

	return MessageResponse{Message: "registration created, verify with the code sent"}, nil
}

// RegisterResend sends a fresh verification code for a pending registration.
func (h *HTTPEndpoint) RegisterResend(r *router.Request) (any, error) {
	var req RegisterResendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.RegisterResend(r.Context(), usecase.RegisterResendInput{
		Identifier: req.Identifier,
	}); err != nil {
		return nil, err
	}

	return MessageResponse{Message: "if the account exists, a code has been sent"}, nil
}

// RegisterVerify activates an account with the verification code.
func (h *HTTPEndpoint) RegisterVerify(r *router.Request) (any, error) {
	var req RegisterVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.RegisterVerify(r.Context(), usecase.RegisterVerifyInput{
		Identifier: req.Identifier,
		Code:       req.Code,
	}); err != nil {
		return nil, err
	}

	return MessageResponse{Message: "account verified"}, nil
}

// Profile returns the account behind the authenticated token.
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		ID:           resp.ID,
		Email:        resp.Email,
		MobileNumber: resp.MobileNumber,
		FullName:     resp.FullName,
		Status:       resp.Status.String(),
		CreatedAt:    resp.CreatedAt,
	}, nil
}
