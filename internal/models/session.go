package models

import "strings"

// Session is the authenticated caller, passed explicitly to services.
type Session struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	IsAdmin bool   `json:"isAdmin"`
}

// DisplayName is the local part of the session email.
func (s Session) DisplayName() string {
	name, _, _ := strings.Cut(s.Email, "@")
	return name
}
