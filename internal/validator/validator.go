package validator

import (
	"errors"
	"regexp"

	"finboard/internal/models"
)

var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidAccountCode = errors.New("invalid account code")
	ErrMissingName        = errors.New("name is required")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidReportType  = errors.New("invalid report type")
)

var (
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	codeRegex     = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.\-]{0,31}$`)
)

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrInvalidPassword
	}
	return nil
}

func ValidateAccountCode(code string) error {
	if !codeRegex.MatchString(code) {
		return ErrInvalidAccountCode
	}
	return nil
}

func ValidateName(name string) error {
	if name == "" {
		return ErrMissingName
	}
	return nil
}

func ValidateAccountType(accountType string) error {
	if !models.ValidAccountType(accountType) {
		return ErrInvalidAccountType
	}
	return nil
}

func ValidateReportType(reportType string) error {
	if !models.ValidReportType(reportType) {
		return ErrInvalidReportType
	}
	return nil
}
