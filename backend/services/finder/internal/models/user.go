package models

// User is a registered account. Email is the unique key.
type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Phone        string `json:"phone"`
	Vehicle      string `json:"vehicle"`
}

// Session is the authenticated account as seen by the rest of the application.
type Session struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Vehicle string `json:"vehicle"`
}

// Session strips credentials from the account.
func (u User) Session() Session {
	return Session{
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Vehicle: u.Vehicle,
	}
}

// ProfileUpdate carries the editable profile fields. Nil fields are left untouched.
type ProfileUpdate struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Vehicle *string `json:"vehicle,omitempty"`
}

// Empty reports whether the update changes nothing.
func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.Vehicle == nil
}
