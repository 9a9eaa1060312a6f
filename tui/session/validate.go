package session

import (
	"strings"
	"unicode/utf8"

	"github.com/skypointsocial/skypoint/tui/common"
)

// Form field keys.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldUsername        = "username"
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldConfirmPassword = "confirmPassword"
	FieldIDToken         = "idToken"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// ValidateLogin returns per-field errors for the login form. An empty map
// means the form may be submitted.
func ValidateLogin(email, password string) map[string]string {
	errs := map[string]string{}
	validateEmail(errs, email)
	if password == "" {
		errs[FieldPassword] = "Password is required"
	}
	return errs
}

// RegisterForm is the raw register form input.
type RegisterForm struct {
	Username        string
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// ValidateRegister returns per-field errors for the register form.
func ValidateRegister(f RegisterForm) map[string]string {
	errs := map[string]string{}
	switch {
	case strings.TrimSpace(f.Username) == "":
		errs[FieldUsername] = "Username is required"
	case utf8.RuneCountInString(f.Username) < minUsernameLength:
		errs[FieldUsername] = "Username must be at least 3 characters"
	}
	if strings.TrimSpace(f.FirstName) == "" {
		errs[FieldFirstName] = "First name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs[FieldLastName] = "Last name is required"
	}
	validateEmail(errs, f.Email)
	switch {
	case f.Password == "":
		errs[FieldPassword] = "Password is required"
	case utf8.RuneCountInString(f.Password) < minPasswordLength:
		errs[FieldPassword] = "Password must be at least 6 characters"
	}
	switch {
	case f.ConfirmPassword == "":
		errs[FieldConfirmPassword] = "Please confirm your password"
	case f.ConfirmPassword != f.Password:
		errs[FieldConfirmPassword] = "Passwords do not match"
	}
	return errs
}

func validateEmail(errs map[string]string, email string) {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		errs[FieldEmail] = "Email is required"
	case !common.IsValidEmail(email):
		errs[FieldEmail] = "Please enter a valid email"
	}
}
