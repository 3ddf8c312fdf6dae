package domain

// Identity is the display identity derived from the session credential.
// It has no lifecycle of its own: it is recomputed whenever the token
// changes and destroyed with it.
type Identity struct {
	Username    string
	Roles       []string
	Permissions []string
}
