package contact

import "time"

// Optional holds a value that may or may not have been supplied.
type Optional[T any] struct {
	value T
	set   bool
}

func Some[T any](v T) Optional[T] { return Optional[T]{value: v, set: true} }

func None[T any]() Optional[T] { return Optional[T]{} }

func (o Optional[T]) Get() (T, bool) { return o.value, o.set }

func (o Optional[T]) IsSet() bool { return o.set }

// Patch is a partial update. Absent fields leave the stored value unchanged.
// AdditionalData set to Some(nil) clears the notes.
type Patch struct {
	FirstName      Optional[string]
	LastName       Optional[string]
	Email          Optional[string]
	Phone          Optional[string]
	Birthday       Optional[time.Time]
	AdditionalData Optional[*string]
}

func (p Patch) Empty() bool {
	return !p.FirstName.IsSet() &&
		!p.LastName.IsSet() &&
		!p.Email.IsSet() &&
		!p.Phone.IsSet() &&
		!p.Birthday.IsSet() &&
		!p.AdditionalData.IsSet()
}
