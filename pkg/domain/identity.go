package domain

// Identity is the authenticated viewer as reported by the identity probe.
type Identity struct {
	Email string `json:"email"`
}

// Hints are the non-sensitive profile values returned by login and kept
// locally to pre-fill the session-start form. Never used for authorization.
type Hints struct {
	Role       string `json:"role"`
	Experience string `json:"experience"`
	TechStack  string `json:"tech_stack"`
}
