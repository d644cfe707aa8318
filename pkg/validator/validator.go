package validator

import (
	"strings"
	"time"
	"unicode"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

func ValidateSignup(mobileOrEmail, fullName, username, password, dateOfBirth string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(mobileOrEmail) == "" {
		errs.Add("mobile_or_email", "Email or mobile number is required")
	}

	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		errs.Add("full_name", "Full name is required")
	} else if len(fullName) > 100 {
		errs.Add("full_name", "Full name is too long")
	}

	username = strings.TrimSpace(username)
	if username == "" {
		errs.Add("username", "Username is required")
	} else if len(username) < 3 {
		errs.Add("username", "Username must be at least 3 characters")
	} else if len(username) > 50 {
		errs.Add("username", "Username is too long")
	}

	validatePassword(password, errs)

	if strings.TrimSpace(dateOfBirth) == "" {
		errs.Add("date_of_birth", "Date of birth is required")
	} else if !validDate(dateOfBirth) {
		errs.Add("date_of_birth", "Invalid date of birth")
	}

	return errs
}

func ValidateLogin(identifier, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(identifier) == "" {
		errs.Add("identifier", "Email or phone is required")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateUploadRequest(fileName, contentType string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(fileName) == "" {
		errs.Add("file_name", "File name is required")
	} else if strings.ContainsAny(fileName, "/\\") {
		errs.Add("file_name", "File name must not contain path separators")
	}
	if strings.TrimSpace(contentType) == "" {
		errs.Add("content_type", "Content type is required")
	}

	return errs
}

// validatePassword enforces the signup screen's rule: at least 8
// characters with one digit and one special character.
func validatePassword(password string, errs ValidationErrors) {
	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
		return
	}

	var hasDigit, hasSpecial bool
	for _, ch := range password {
		switch {
		case unicode.IsDigit(ch):
			hasDigit = true
		case !unicode.IsLetter(ch):
			hasSpecial = true
		}
	}

	if !hasDigit || !hasSpecial {
		errs.Add("password", "Password must include at least 1 number and 1 special character")
	}
}

func validDate(raw string) bool {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if _, err := time.Parse(layout, raw); err == nil {
			return true
		}
	}
	return false
}
