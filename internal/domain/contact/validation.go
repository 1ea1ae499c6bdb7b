package contact

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var phoneRe = regexp.MustCompile(`^\+?\d{7,15}$`)

var (
	nameRules = []validation.Rule{
		validation.Required.Error("must not be empty"),
	}
	emailRules = []validation.Rule{
		validation.Required.Error("must not be empty"),
		is.EmailFormat.Error("invalid email format"),
	}
	phoneRules = []validation.Rule{
		validation.Required.Error("must not be empty"),
		validation.Match(phoneRe).Error("must contain 7-15 digits with an optional leading '+'"),
	}
	birthdayRules = []validation.Rule{
		validation.Required.Error("must be a calendar date"),
	}
)

// Validate checks a full contact payload. Names are checked for length only,
// surrounding whitespace is kept as sent.
func (d Draft) Validate() error {
	return toValidationError(validation.Errors{
		"first_name": validation.Validate(d.FirstName, nameRules...),
		"last_name":  validation.Validate(d.LastName, nameRules...),
		"email":      validation.Validate(d.Email, emailRules...),
		"phone":      validation.Validate(d.Phone, phoneRules...),
		"birthday":   validation.Validate(d.Birthday, birthdayRules...),
	}.Filter())
}

// Validate checks only the fields present in the patch.
func (p Patch) Validate() error {
	errs := validation.Errors{}
	if v, ok := p.FirstName.Get(); ok {
		errs["first_name"] = validation.Validate(v, nameRules...)
	}
	if v, ok := p.LastName.Get(); ok {
		errs["last_name"] = validation.Validate(v, nameRules...)
	}
	if v, ok := p.Email.Get(); ok {
		errs["email"] = validation.Validate(v, emailRules...)
	}
	if v, ok := p.Phone.Get(); ok {
		errs["phone"] = validation.Validate(v, phoneRules...)
	}
	if v, ok := p.Birthday.Get(); ok {
		errs["birthday"] = validation.Validate(v, birthdayRules...)
	}

	return toValidationError(errs.Filter())
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}

	fields := make(map[string]string, len(errs))
	for field, fe := range errs {
		fields[field] = fe.Error()
	}

	return &ValidationError{Fields: fields}
}
