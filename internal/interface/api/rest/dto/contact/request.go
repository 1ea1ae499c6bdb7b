package contact

import (
	"bytes"
	"encoding/json"
	"time"

	domain "contacts-api/internal/domain/contact"
)

const DateLayout = time.DateOnly

type (
	// Request is the create payload. Pointers tell a missing field from an empty one.
	Request struct {
		FirstName      *string `json:"first_name"`
		LastName       *string `json:"last_name"`
		Email          *string `json:"email"`
		Phone          *string `json:"phone"`
		Birthday       *string `json:"birthday"`
		AdditionalData *string `json:"additional_data"`
	}

	// PatchRequest is the update payload. Each field records whether it was
	// sent at all and whether it was sent as null.
	PatchRequest struct {
		FirstName      Field[string] `json:"first_name"`
		LastName       Field[string] `json:"last_name"`
		Email          Field[string] `json:"email"`
		Phone          Field[string] `json:"phone"`
		Birthday       Field[string] `json:"birthday"`
		AdditionalData Field[string] `json:"additional_data"`
	}

	Field[T any] struct {
		Set   bool
		Null  bool
		Value T
	}
)

// UnmarshalJSON only runs for keys present in the document.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		return nil
	}

	return json.Unmarshal(data, &f.Value)
}

// ToDraft converts a create request. Problems are reported per field.
func ToDraft(r Request) (domain.Draft, map[string]string) {
	errs := make(map[string]string)
	required := func(field string, v *string) string {
		if v == nil {
			errs[field] = "field required"
			return ""
		}
		return *v
	}

	d := domain.Draft{
		FirstName:      required("first_name", r.FirstName),
		LastName:       required("last_name", r.LastName),
		Email:          required("email", r.Email),
		Phone:          required("phone", r.Phone),
		AdditionalData: r.AdditionalData,
	}
	if b := required("birthday", r.Birthday); r.Birthday != nil {
		t, err := time.Parse(DateLayout, b)
		if err != nil {
			errs["birthday"] = "must be YYYY-MM-DD"
		}
		d.Birthday = t
	}

	if len(errs) == 0 {
		return d, nil
	}
	return d, errs
}

func ToPatch(r PatchRequest) (domain.Patch, map[string]string) {
	errs := make(map[string]string)
	var p domain.Patch

	str := func(field string, f Field[string]) domain.Optional[string] {
		switch {
		case !f.Set:
			return domain.None[string]()
		case f.Null:
			errs[field] = "must not be null"
			return domain.None[string]()
		}
		return domain.Some(f.Value)
	}

	p.FirstName = str("first_name", r.FirstName)
	p.LastName = str("last_name", r.LastName)
	p.Email = str("email", r.Email)
	p.Phone = str("phone", r.Phone)

	if b, ok := str("birthday", r.Birthday).Get(); ok {
		t, err := time.Parse(DateLayout, b)
		if err != nil {
			errs["birthday"] = "must be YYYY-MM-DD"
		} else {
			p.Birthday = domain.Some(t)
		}
	}

	if r.AdditionalData.Set {
		if r.AdditionalData.Null {
			p.AdditionalData = domain.Some[*string](nil)
		} else {
			v := r.AdditionalData.Value
			p.AdditionalData = domain.Some(&v)
		}
	}

	if len(errs) == 0 {
		return p, nil
	}
	return p, errs
}
