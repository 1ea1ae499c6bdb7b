package contact

import "strings"

// SearchFilter narrows a contact list. Each non-empty criterion is a
// case-insensitive substring match and all criteria must hold.
type SearchFilter struct {
	FirstName *string
	LastName  *string
	Email     *string
}

func (f SearchFilter) IsEmpty() bool {
	return blank(f.FirstName) && blank(f.LastName) && blank(f.Email)
}

func (f SearchFilter) Match(c *Contact) bool {
	return contains(c.FirstName, f.FirstName) &&
		contains(c.LastName, f.LastName) &&
		contains(c.Email, f.Email)
}

func contains(field string, criterion *string) bool {
	if blank(criterion) {
		return true
	}

	return strings.Contains(strings.ToLower(field), strings.ToLower(*criterion))
}

func blank(s *string) bool { return s == nil || *s == "" }
