package validator

import (
	"errors"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"contacts-api/internal/domain/contact"
	"contacts-api/internal/interface/api/rest/dto/auth"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt safe
)

var (
	ErrInvalidID   = errors.New("contact_id must be a positive integer")
	ErrInvalidDays = errors.New("days must be an integer")
)

func ValidateRegister(r auth.RegisterRequest) map[string]string {
	return toMap(validation.Errors{
		"email": validation.Validate(r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
		),
		"password": validation.Validate(r.Password,
			validation.Required.Error("password is required"),
			validation.RuneLength(minPasswordLen, maxPasswordLen).Error("password length must be 8-72 characters"),
		),
	}.Filter())
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	return toMap(validation.Errors{
		"username": validation.Validate(r.Login(), validation.Required.Error("username is required")),
		"password": validation.Validate(r.Password, validation.Required.Error("password is required")),
	}.Filter())
}

// ParsePage reads skip and limit query values. Empty values take the defaults.
func ParsePage(skip, limit string) (contact.Page, map[string]string) {
	p := contact.Page{Limit: contact.DefaultLimit}
	errs := validation.Errors{}

	if skip != "" {
		v, err := strconv.Atoi(skip)
		if err != nil {
			errs["skip"] = errors.New("must be an integer")
		} else {
			p.Skip = v
			errs["skip"] = validation.Validate(v, validation.Min(0).Error("must be greater than or equal to 0"))
		}
	}
	if limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil {
			errs["limit"] = errors.New("must be an integer")
		} else {
			p.Limit = v
			// ozzo skips rules on zero values, so the lower bound is checked by hand
			if v < 1 {
				errs["limit"] = errors.New("must be greater than or equal to 1")
			} else {
				errs["limit"] = validation.Validate(v,
					validation.Max(contact.MaxLimit).Error("must be less than or equal to 1000"),
				)
			}
		}
	}

	return p, toMap(errs.Filter())
}

// ParseDays returns the default window for an empty value. Range is checked by the service.
func ParseDays(days string) (int, error) {
	if days == "" {
		return contact.DefaultWindowDays, nil
	}
	v, err := strconv.Atoi(days)
	if err != nil {
		return 0, ErrInvalidDays
	}

	return v, nil
}

func ParseContactID(s string) (contact.ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, ErrInvalidID
	}

	return contact.ID(v), nil
}

func toMap(err error) map[string]string {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(errs))
	for k, v := range errs {
		out[k] = v.Error()
	}
	return out
}
