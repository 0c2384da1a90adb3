// Package models defines the data structures exchanged with the mcom-mall API
// and used across the client: user profiles, auth request payloads, and
// search results.
package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/nyaruka/phonenumbers"
)

// User is the profile record returned by the authentication endpoints.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// RawAuthPayload is the undecoded body of a registration or login response.
// The API has shipped several response shapes over time, so nothing beyond
// "valid JSON object" can be assumed about it. See the auth package for the
// normalization rules.
type RawAuthPayload map[string]any

// SignUpRequest is the body of POST /users/create.
type SignUpRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
}

// Validate runs the pre-network validation rules for registration.
func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.EmailFormat),
		validation.Field(&r.PhoneNumber, validation.Required, validation.By(validPhoneNumber)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(stringEquals(r.Password, "passwords do not match")),
		),
		validation.Field(&r.Role, validation.Required, validation.In("customer", "admin")),
	)
}

// SignInRequest is the body of POST /auth. The backend requires the role
// field even for plain logins.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate runs the pre-network validation rules for login.
func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

func validPhoneNumber(value interface{}) error {
	s, _ := value.(string)
	num, err := phonenumbers.Parse(s, "US")
	if err != nil {
		return err
	}
	if !phonenumbers.IsValidNumber(num) {
		return validation.NewError("validation_phone", "must be a valid phone number")
	}
	return nil
}

func stringEquals(expected, message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != expected {
			return validation.NewError("validation_equals", message)
		}
		return nil
	}
}
