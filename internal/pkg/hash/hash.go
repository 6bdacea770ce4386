package hash

// Hash abstracts one-way hashing of secrets.
type Hash interface {
	// Hash derives a hash from the plaintext.
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether plaintext matches the hashed value.
	Verify(hashed, plaintext string) bool
}
