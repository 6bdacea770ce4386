package entity

type UserStatus int16

const (
	// UserStatusUnknown is mean status is not known / not set.
	UserStatusUnknown UserStatus = 0

	// UserStatusUnverified mean user exists but has not completed verification.
	UserStatusUnverified UserStatus = 1

	// UserStatusActive mean user is verified and allowed to use the app.
	UserStatusActive UserStatus = 2

	// UserStatusBanned mean user is blocked from using the app (policy/abuse/etc).
	UserStatusBanned UserStatus = 3

	// UserStatusInactive mean user is not currently active (e.g., deactivated, closed).
	UserStatusInactive UserStatus = 4
)

func (us UserStatus) String() string {
	switch us {
	case UserStatusActive:
		return "Active"
	case UserStatusBanned:
		return "Banned"
	case UserStatusInactive:
		return "Inactive"
	case UserStatusUnverified:
		return "Unverified"
	default:
		return "Unknown"
	}
}

// Ensure normalizes out-of-range values to UserStatusUnknown.
func (us UserStatus) Ensure() UserStatus {
	switch us {
	case UserStatusUnverified, UserStatusActive, UserStatusBanned, UserStatusInactive:
		return us
	default:
		return UserStatusUnknown
	}
}

// OTPPurpose identifies which workflow a one-time code belongs to. Codes for
// one purpose are never accepted for another.
type OTPPurpose int16

const (
	// OTPPurposeUnknown is mean purpose is not known / not set.
	OTPPurposeUnknown OTPPurpose = 0

	// OTPPurposeRegistration verifies account ownership after sign-up.
	OTPPurposeRegistration OTPPurpose = 1

	// OTPPurposeLogin authenticates an existing account without a password.
	OTPPurposeLogin OTPPurpose = 2
)

func (p OTPPurpose) String() string {
	switch p {
	case OTPPurposeRegistration:
		return "Registration"
	case OTPPurposeLogin:
		return "Login"
	default:
		return "Unknown"
	}
}
