package identity

import "time"

// User represents one phone-number-based account in the signup flow.
type User struct {
	CountryCode  string
	PhoneNumber  string
	FullPhone    string
	FullName     string
	PasswordHash []byte
	Verified     bool
	CreatedAt    time.Time
}

// Registration captures the fields submitted when a phone is first seen.
type Registration struct {
	FullPhone   string
	CountryCode string
	PhoneNumber string
}
