package config

import (
	"testing"
	"time"
)

const sampleYAML = `
app:
  name: gokey
  debug: true
modules:
  identity:
    otp_length: 6
    otp_ttl_minutes: 5
    otp_max_attempts: 3
jwt:
  audiences:
    - gokey-clients
    - gokey-admin
`

func TestViperFromBytes(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	t.Cleanup(func() { _ = cfg.Close() })

	t.Run("TypedGetters", func(t *testing.T) {
		if got := cfg.GetString("app.name"); got != "gokey" {
			t.Fatalf("unexpected string: %q", got)
		}
		if !cfg.GetBool("app.debug") {
			t.Fatalf("expected debug true")
		}
		if got := cfg.GetInt("modules.identity.otp_length"); got != 6 {
			t.Fatalf("unexpected int: %d", got)
		}
		if got := cfg.GetInt32("modules.identity.otp_max_attempts"); got != 3 {
			t.Fatalf("unexpected int32: %d", got)
		}
	})

	t.Run("Durations", func(t *testing.T) {
		if got := cfg.GetMinute("modules.identity.otp_ttl_minutes"); got != 5*time.Minute {
			t.Fatalf("unexpected duration: %v", got)
		}
		if got := cfg.GetSecond("modules.identity.otp_ttl_minutes"); got != 5*time.Second {
			t.Fatalf("unexpected duration: %v", got)
		}
	})

	t.Run("Arrays", func(t *testing.T) {
		audiences := cfg.GetArray("jwt.audiences")
		if len(audiences) != 2 || audiences[0] != "gokey-clients" {
			t.Fatalf("unexpected array: %v", audiences)
		}
	})

	t.Run("MissingKeyIsZero", func(t *testing.T) {
		if got := cfg.GetInt("does.not.exist"); got != 0 {
			t.Fatalf("expected zero, got %d", got)
		}
		if got := cfg.GetString("does.not.exist"); got != "" {
			t.Fatalf("expected empty, got %q", got)
		}
	})

	t.Run("UnknownTypeRejected", func(t *testing.T) {
		if _, err := NewViperFromBytes("", []byte("{}")); err == nil {
			t.Fatalf("expected an error for missing config type")
		}
	})
}
