package inbound

import (
	"context"

	"github.com/aryasaputra/gokey/internal/identity/usecase"
	"github.com/aryasaputra/gokey/internal/pkg/router"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	LoginOTP(ctx context.Context, in usecase.LoginOTPInput) (*usecase.LoginOutput, error)
	OTPRequest(ctx context.Context, in usecase.OTPRequestInput) error

	Register(ctx context.Context, in usecase.RegisterInput) error
	RegisterResend(ctx context.Context, in usecase.RegisterResendInput) error
	RegisterVerify(ctx context.Context, in usecase.RegisterVerifyInput) error

	Profile(ctx context.Context) (*usecase.ProfileOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Authentication
	r.POST("/api/v1/identity/login", end.Login)
	r.POST("/api/v1/identity/login/otp", end.LoginOTP)
	r.POST("/api/v1/identity/otp/request", end.OTPRequest)

	// Registration
	r.POST("/api/v1/identity/register", end.Register)
	r.POST("/api/v1/identity/register/resend", end.RegisterResend)
	r.POST("/api/v1/identity/register/verify", end.RegisterVerify)

	// Profile (need authenticated)
	r.GET("/api/v1/identity/profile", end.Profile)
}
