package validation

import (
	"context"
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/onboard-api/internal/domain"
	"github.com/phrazzld/onboard-api/internal/store"
)

const (
	// MinPasswordLength is the minimum number of characters in a password.
	MinPasswordLength = 8

	// MaxPasswordBytes is the longest password bcrypt accepts.
	MaxPasswordBytes = 72

	// MinAge and MaxAge bound the optional age of a user, inclusive.
	MinAge = 0
	MaxAge = 120
)

var validate = validator.New()

// ValidateEmailFormat reports whether email is a well-formed address.
// Addresses are compared as exact strings elsewhere, so no case folding
// happens here.
func ValidateEmailFormat(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// ValidatePasswordComplexity reports whether password has at least
// MinPasswordLength characters, at least one letter and at least one digit.
func ValidatePasswordComplexity(password string) bool {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return false
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// ValidatePasswordLength reports whether password fits within
// MaxPasswordBytes, the longest input bcrypt hashes.
func ValidatePasswordLength(password string) bool {
	return len(password) <= MaxPasswordBytes
}

// ValidateAge returns store.ErrInvalidAge unless age is nil or within
// [MinAge, MaxAge].
func ValidateAge(age *int) error {
	if age == nil {
		return nil
	}
	if *age < MinAge || *age > MaxAge {
		return fmt.Errorf("%w: got %d", store.ErrInvalidAge, *age)
	}
	return nil
}

// ValidateGender returns store.ErrInvalidGender unless gender is nil or one of
// domain.Genders.
func ValidateGender(gender *domain.Gender) error {
	if gender == nil {
		return nil
	}
	if !slices.Contains(domain.Genders, *gender) {
		return fmt.Errorf("%w: got %q", store.ErrInvalidGender, string(*gender))
	}
	return nil
}

// IsEmailUnique reports whether no user currently holds email.
//
// Two concurrent callers can both see true for the same address; only the
// unique constraint on users.email decides which insert wins.
func IsEmailUnique(ctx context.Context, q store.DBTX, email string) (bool, error) {
	var count int
	if err := q.GetContext(ctx, &count, "SELECT COUNT(*) FROM users WHERE email = $1", email); err != nil {
		return false, err
	}
	return count == 0, nil
}
