package core

// Secret wraps a sensitive string value with protection against
// accidental logging. The underlying value is never exposed through
// String(), GoString(), or JSON/text marshaling.
//
// Use Expose() to access the actual value when needed (e.g., for the
// Authorization header):
//
//	key := core.NewSecret("wec-abc123")
//	fmt.Println(key)   // prints: [REDACTED]
//	key.Expose()       // returns: "wec-abc123"
type Secret struct {
	value string
}

// NewSecret creates a new Secret from a string value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// String returns a redacted placeholder. Implements fmt.Stringer.
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString returns a redacted placeholder for %#v formatting.
// Implements fmt.GoStringer.
func (s Secret) GoString() string {
	return "core.Secret{[REDACTED]}"
}

// MarshalJSON returns a redacted JSON string so the key never leaks
// through serialized configuration.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"[REDACTED]"`), nil
}

// MarshalText returns a redacted text representation (e.g., for YAML).
// Implements encoding.TextMarshaler.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte("[REDACTED]"), nil
}

// Expose returns the actual secret value. Use only where the value is
// genuinely needed, and never log or serialize the result.
func (s Secret) Expose() string {
	return s.value
}

// IsEmpty returns true if the secret value is empty.
func (s Secret) IsEmpty() bool {
	return s.value == ""
}
