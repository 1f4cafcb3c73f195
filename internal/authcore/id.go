package authcore

import "github.com/google/uuid"

// NewProfileID mints a new profile identifier, used by RegisterProfile when
// the caller has no natural stable name of its own for a fresh entry.
func NewProfileID(provider string) string {
	p := Normalize(provider)
	if p == "" {
		p = "profile"
	}
	return p + "-" + uuid.NewString()
}
