package types

import (
	"time"

	"github.com/google/uuid"
)

// User is the full persisted row, password hash included.
// It never crosses the transport boundary; external responses use
// UserProfile instead.
type User struct {
	ID         uuid.UUID  `json:"id"`
	Password   string     `json:"-"` // Hashed password (never exposed)
	FirstName  string     `json:"first_name"`
	SecondName string     `json:"second_name"`
	Birthdate  *time.Time `json:"birthdate,omitempty"`
	Biography  *string    `json:"biography,omitempty"`
	City       *string    `json:"city,omitempty"`
}

// UserProfile is the externally visible projection of a user row.
// Birthdate is serialized as a calendar date, matching the wire
// contract of GET /user/get/{id}.
type UserProfile struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"first_name"`
	SecondName string    `json:"second_name"`
	Birthdate  *string   `json:"birthdate"`
	Biography  *string   `json:"biography"`
	City       *string   `json:"city"`
}

// BirthdateFormat is the calendar-date layout used on the wire and in
// registration input.
const BirthdateFormat = "2006-01-02"

// Profile projects the row into its external representation, dropping
// the password hash.
func (u *User) Profile() UserProfile {
	p := UserProfile{
		ID:         u.ID,
		FirstName:  u.FirstName,
		SecondName: u.SecondName,
		Biography:  u.Biography,
		City:       u.City,
	}
	if u.Birthdate != nil {
		b := u.Birthdate.Format(BirthdateFormat)
		p.Birthdate = &b
	}
	return p
}

// RegisterUserRequest is the structured registration input. Required
// vs. optional fields are declared here instead of arriving as an
// open-ended map.
type RegisterUserRequest struct {
	Password   string  `json:"password" validate:"required"`
	FirstName  string  `json:"first_name" validate:"required"`
	SecondName string  `json:"second_name" validate:"required"`
	Birthdate  *string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	Biography  *string `json:"biography"`
	City       *string `json:"city"`
}

// UserSearchQuery carries case-insensitive name prefixes.
// An empty prefix matches every row.
type UserSearchQuery struct {
	FirstName string
	LastName  string
}
