// Package models defines the client-side data model: users, posts,
// comments, media and the impact classification.
package models

import (
	"strings"
	"unicode/utf8"
)

// User is a durable identity record, keyed by its normalised email.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	// Password is an encoded salted digest (see cryptox), nil for
	// federated-only accounts.
	Password  *string `json:"password"`
	Avatar    string  `json:"avatar,omitempty"`
	Federated bool    `json:"federated,omitempty"`
}

// LocalPart returns the part of email before '@'.
func LocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// DisplayName is the user's name, or the local part of the email when no
// name was given.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return LocalPart(u.Email)
}

// Initials takes the first letter of up to two name words. Without a name
// it uses the first letter of the email, and "U" as a last resort.
func (u *User) Initials() string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(u.Name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
		n++
		if n == 2 {
			break
		}
	}
	if b.Len() > 0 {
		return strings.ToUpper(b.String())
	}
	if r, _ := utf8.DecodeRuneInString(u.Email); r != utf8.RuneError {
		return strings.ToUpper(string(r))
	}
	return "U"
}

// Clone returns a copy that shares nothing with u.
func (u *User) Clone() *User {
	c := *u
	if u.Password != nil {
		p := *u.Password
		c.Password = &p
	}
	return &c
}
