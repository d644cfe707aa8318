package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateSignup_Valid(t *testing.T) {
	errs := ValidateSignup("alice@example.com", "Alice Smith", "alice", "secret123!", "1995-04-02")
	require.False(t, errs.HasErrors())
}

func TestValidateSignup_MissingFields(t *testing.T) {
	req := require.New(t)

	errs := ValidateSignup("", "", "", "", "")
	req.True(errs.HasErrors())
	req.Contains(errs, "mobile_or_email")
	req.Contains(errs, "full_name")
	req.Contains(errs, "username")
	req.Contains(errs, "password")
	req.Contains(errs, "date_of_birth")
}

func TestValidateSignup_PasswordPolicy(t *testing.T) {
	req := require.New(t)

	for _, password := range []string{"short1!", "longenoughbutplain", "nodigits!!", "nospecial123"} {
		errs := ValidateSignup("alice@example.com", "Alice", "alice", password, "1995-04-02")
		req.Contains(errs, "password", "password %q should be rejected", password)
	}

	errs := ValidateSignup("alice@example.com", "Alice", "alice", "secret123!", "1995-04-02")
	req.NotContains(errs, "password")
}

func TestValidateSignup_UsernameLength(t *testing.T) {
	req := require.New(t)

	errs := ValidateSignup("alice@example.com", "Alice", "ab", "secret123!", "1995-04-02")
	req.Contains(errs, "username")

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	errs = ValidateSignup("alice@example.com", "Alice", string(long), "secret123!", "1995-04-02")
	req.Contains(errs, "username")
}

func TestValidateSignup_DateOfBirth(t *testing.T) {
	req := require.New(t)

	errs := ValidateSignup("alice@example.com", "Alice", "alice", "secret123!", "not-a-date")
	req.Contains(errs, "date_of_birth")

	errs = ValidateSignup("alice@example.com", "Alice", "alice", "secret123!", "1995-04-02T00:00:00Z")
	req.NotContains(errs, "date_of_birth")
}

func TestValidateLogin(t *testing.T) {
	req := require.New(t)

	errs := ValidateLogin("", "")
	req.Contains(errs, "identifier")
	req.Contains(errs, "password")

	errs = ValidateLogin("alice@example.com", "secret123!")
	req.False(errs.HasErrors())
}

func TestValidateUploadRequest(t *testing.T) {
	req := require.New(t)

	errs := ValidateUploadRequest("", "")
	req.Contains(errs, "file_name")
	req.Contains(errs, "content_type")

	errs = ValidateUploadRequest("../escape.png", "image/png")
	req.Contains(errs, "file_name")

	errs = ValidateUploadRequest("photo.png", "image/png")
	req.False(errs.HasErrors())
}
