package models

// User is the authenticated caller as resolved from an access token.
type User struct {
	ID string
}
