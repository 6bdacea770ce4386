package validator

import (
	"errors"
	"testing"
)

type signupForm struct {
	Email        string `validate:"required,email"`
	MobileNumber string `validate:"required,mobile"`
	Password     string `validate:"required,password"`
	FullName     string `validate:"required,min=5,max=100,alphaspace"`
}

func TestV10Validator(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	valid := signupForm{
		Email:        "arya@example.com",
		MobileNumber: "+628123456789",
		Password:     "s3cret-password",
		FullName:     "Arya Saputra",
	}

	t.Run("ValidInput", func(t *testing.T) {
		if err := v.Validate(valid); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	tests := []struct {
		name     string
		mutate   func(f *signupForm)
		wantKey  string
	}{
		{
			name:    "MissingEmail",
			mutate:  func(f *signupForm) { f.Email = "" },
			wantKey: "email",
		},
		{
			name:    "MalformedEmail",
			mutate:  func(f *signupForm) { f.Email = "not-an-email" },
			wantKey: "email",
		},
		{
			name:    "MobileWithLeadingZero",
			mutate:  func(f *signupForm) { f.MobileNumber = "0812345678" },
			wantKey: "mobile_number",
		},
		{
			name:    "MobileTooShort",
			mutate:  func(f *signupForm) { f.MobileNumber = "+6281" },
			wantKey: "mobile_number",
		},
		{
			name:    "PasswordTooShort",
			mutate:  func(f *signupForm) { f.Password = "short" },
			wantKey: "password",
		},
		{
			name:    "FullNameWithDigits",
			mutate:  func(f *signupForm) { f.FullName = "Arya 2nd" },
			wantKey: "full_name",
		},
		{
			name:    "FullNameTooShort",
			mutate:  func(f *signupForm) { f.FullName = "Ary" },
			wantKey: "full_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			form := valid
			tt.mutate(&form)

			// Act
			err := v.Validate(form)

			// Assert
			var verr V10ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected V10ValidationError, got %T: %v", err, err)
			}
			if _, ok := verr.Values()[tt.wantKey]; !ok {
				t.Fatalf("expected a message for %q, got %v", tt.wantKey, verr.Values())
			}
		})
	}
}
