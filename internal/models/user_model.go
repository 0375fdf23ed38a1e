package models

import "time"

// User represents a registered account.
// PasswordHash never leaves the service: it is excluded from JSON and only
// persisted by the store.
type User struct {
	ID           string    `json:"id" firestore:"-"`
	Username     string    `json:"username" firestore:"username"`
	PasswordHash string    `json:"-" firestore:"passwordHash"`
	Email        string    `json:"email" firestore:"email"`
	Company      *string   `json:"company" firestore:"company"`
	Industry     *string   `json:"industry" firestore:"industry"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
}

// PublicUser is the registration response shape: the stored user without any credential.
type PublicUser struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Company  *string `json:"company"`
	Industry *string `json:"industry"`
}

// Public strips the credential from the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Company:  u.Company,
		Industry: u.Industry,
	}
}

// NewUser holds the caller-supplied fields of a new user.
type NewUser struct {
	Username     string
	PasswordHash string
	Email        string
	Company      *string
	Industry     *string
}
