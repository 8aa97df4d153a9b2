// Package validate performs client-side form validation. Violations never
// reach the network; they are returned as a FormError listing every failed
// field.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// FieldError is one failed validation rule.
type FieldError struct {
	Field   string
	Message string
}

// FormError aggregates every failed field of a form.
type FormError struct {
	Fields []FieldError
}

func (e *FormError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *FormError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *FormError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Email checks basic email shape.
func Email(value string) error {
	var errs FormError
	checkEmail(&errs, "email", value)
	return errs.orNil()
}

func checkEmail(errs *FormError, field, value string) {
	if value == "" {
		errs.add(field, "is required")
		return
	}
	if !emailPattern.MatchString(value) {
		errs.add(field, "is not a valid email address")
	}
}

func checkUsername(errs *FormError, value string) {
	switch {
	case value == "":
		errs.add("username", "is required")
	case len(value) < 3:
		errs.add("username", "must be at least 3 characters")
	case len(value) > 24:
		errs.add("username", "must be at most 24 characters")
	case !usernamePattern.MatchString(value):
		errs.add("username", "may only contain letters, digits, '-' and '_'")
	}
}

func checkPassword(errs *FormError, field, value string) {
	switch {
	case value == "":
		errs.add(field, "is required")
	case len(value) < 8:
		errs.add(field, "must be at least 8 characters")
	case len(value) > 64:
		errs.add(field, "must be at most 64 characters")
	}
}

// RegisterForm mirrors the registration form fields.
type RegisterForm struct {
	Email           string
	Username        string
	Password        string
	PasswordConfirm string
}

// Validate checks all registration rules and reports every violation.
func (f RegisterForm) Validate() error {
	var errs FormError
	checkEmail(&errs, "email", f.Email)
	checkUsername(&errs, f.Username)
	checkPassword(&errs, "password", f.Password)
	if f.PasswordConfirm == "" {
		errs.add("passwordConfirm", "is required")
	} else if f.Password != f.PasswordConfirm {
		errs.add("passwordConfirm", "does not match the password")
	}
	return errs.orNil()
}

// LoginForm mirrors the login form fields. The identity may be a username or
// an email address.
type LoginForm struct {
	Identity string
	Password string
}

func (f LoginForm) Validate() error {
	var errs FormError
	if f.Identity == "" {
		errs.add("identity", "is required")
	}
	if f.Password == "" {
		errs.add("password", "is required")
	}
	return errs.orNil()
}

// ResetPasswordForm mirrors the password reset form fields.
type ResetPasswordForm struct {
	Token           string
	Password        string
	PasswordConfirm string
}

func (f ResetPasswordForm) Validate() error {
	var errs FormError
	if f.Token == "" {
		errs.add("token", "is required")
	}
	checkPassword(&errs, "password", f.Password)
	if f.PasswordConfirm == "" {
		errs.add("passwordConfirm", "is required")
	} else if f.Password != f.PasswordConfirm {
		errs.add("passwordConfirm", "does not match the password")
	}
	return errs.orNil()
}

// ChangePasswordForm mirrors the change password form fields.
type ChangePasswordForm struct {
	CurrentPassword string
	NewPassword     string
	NewConfirm      string
}

func (f ChangePasswordForm) Validate() error {
	var errs FormError
	if f.CurrentPassword == "" {
		errs.add("currentPassword", "is required")
	}
	checkPassword(&errs, "newPassword", f.NewPassword)
	if f.NewConfirm != "" && f.NewPassword != f.NewConfirm {
		errs.add("newPasswordConfirm", "does not match the new password")
	}
	return errs.orNil()
}
