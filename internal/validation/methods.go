package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/models"

	"github.com/shopspring/decimal"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validator collects messages per field
type Validator struct {
	Errors map[string][]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string][]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator
func (v *Validator) AddError(field, message string) {
	v.Errors[field] = append(v.Errors[field], message)
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Has reports whether field already failed a rule.
func (v *Validator) Has(field string) bool {
	return len(v.Errors[field]) > 0
}

// Err returns the collected errors as a validation DomainError, or nil.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return apperrors.Validation(v.Errors)
}

// Required checks that a trimmed string is not empty
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, fmt.Sprintf("The %s field is required.", label(field)))
}

// RequiredID checks that a reference id was given
func (v *Validator) RequiredID(field string, id uint) {
	v.Check(id != 0, field, fmt.Sprintf("The %s field is required.", label(field)))
}

// RequiredDate checks that a date was given
func (v *Validator) RequiredDate(field string, d models.Date) {
	v.Check(!d.IsZero(), field, fmt.Sprintf("The %s field is required.", label(field)))
}

// MinLength checks if a string has at least n characters
func (v *Validator) MinLength(field, value string, n int) {
	v.Check(utf8.RuneCountInString(value) >= n, field,
		fmt.Sprintf("The %s field must be at least %d characters.", label(field), n))
}

// MaxLength checks if a string has at most n characters
func (v *Validator) MaxLength(field, value string, n int) {
	v.Check(utf8.RuneCountInString(value) <= n, field,
		fmt.Sprintf("The %s field must not be greater than %d characters.", label(field), n))
}

// Email validates email format
func (v *Validator) Email(field, email string) {
	v.Check(emailRegex.MatchString(email), field,
		fmt.Sprintf("The %s field must be a valid email address.", label(field)))
}

// In checks that value is one of allowed
func (v *Validator) In(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.AddError(field, fmt.Sprintf("The selected %s is invalid.", label(field)))
}

// TransactionType checks for income or expense
func (v *Validator) TransactionType(field string, t models.TransactionType) {
	v.Check(t.Valid(), field, fmt.Sprintf("The selected %s is invalid.", label(field)))
}

// MinAmount checks value >= min
func (v *Validator) MinAmount(field string, value, min decimal.Decimal) {
	v.Check(value.GreaterThanOrEqual(min), field,
		fmt.Sprintf("The %s field must be at least %s.", label(field), min.String()))
}

// MaxAmount checks value <= max
func (v *Validator) MaxAmount(field string, value, max decimal.Decimal) {
	v.Check(value.LessThanOrEqual(max), field,
		fmt.Sprintf("The %s field must not be greater than %s.", label(field), max.String()))
}

// AfterOrEqual checks that d is not before other. Nil dates pass.
func (v *Validator) AfterOrEqual(field string, d *models.Date, otherField string, other *models.Date) {
	if d == nil || other == nil {
		return
	}
	v.Check(!d.Before(other.Time), field,
		fmt.Sprintf("The %s field must be a date after or equal to %s.", label(field), label(otherField)))
}

// Confirmed checks that value equals its confirmation field
func (v *Validator) Confirmed(field, value, confirmation string) {
	v.Check(value == confirmation, field,
		fmt.Sprintf("The %s field confirmation does not match.", label(field)))
}

// Password validates length within bcrypt limits
func (v *Validator) Password(field, password string) {
	v.MinLength(field, password, MinPasswordLength)
	v.Check(len(password) <= MaxPasswordLength, field,
		fmt.Sprintf("The %s field must not be greater than %d bytes.", label(field), MaxPasswordLength))
}

func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
