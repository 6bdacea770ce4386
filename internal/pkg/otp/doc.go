// Package otp generates short one-time passcodes for delivery over SMS or
// email.
//
// Business code should depend on the Generator interface so tests can swap in
// a deterministic generator.
package otp
