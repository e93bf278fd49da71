package models

// User is the identity returned by the remote auth service. The token is an
// opaque string; this service only stores and forwards it.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username,omitempty"`
	Token    string `json:"token,omitempty"`
}
