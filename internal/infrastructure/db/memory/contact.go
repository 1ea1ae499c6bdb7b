// Package memory keeps contacts and users in process memory. It backs the
// "memory" storage driver for local runs and the service tests.
package memory

import (
	"context"
	"sync"
	"time"

	"contacts-api/internal/domain/contact"
	"contacts-api/internal/domain/user"
)

// ContactStore holds contacts in insertion order. Units of work are
// serialized and roll back by restoring a snapshot. Like a database
// sequence, the id counter is not rolled back.
type ContactStore struct {
	mu       sync.Mutex
	nextID   int64
	contacts []contact.Contact
	now      func() time.Time
}

func NewContactStore() *ContactStore {
	return &ContactStore{now: time.Now}
}

func (s *ContactStore) Do(ctx context.Context, fn func(ctx context.Context, repo contact.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]contact.Contact, len(s.contacts))
	copy(snapshot, s.contacts)

	var committed bool
	defer func() {
		if !committed {
			s.contacts = snapshot
		}
	}()

	if err := fn(ctx, &contactRepo{s: s}); err != nil {
		return err
	}
	committed = true

	return nil
}

// contactRepo is only handed out inside Do, which already holds the lock.
type contactRepo struct {
	s *ContactStore
}

func (r *contactRepo) Create(_ context.Context, ownerID user.ID, req contact.Draft) (*contact.Contact, error) {
	r.s.nextID++
	now := r.s.now().UTC()
	c := contact.Contact{
		ID:             contact.ID(r.s.nextID),
		OwnerID:        ownerID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Birthday:       req.Birthday,
		AdditionalData: cloneString(req.AdditionalData),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.s.contacts = append(r.s.contacts, c)

	return clone(c), nil
}

func (r *contactRepo) FetchByID(_ context.Context, ownerID user.ID, id contact.ID) (*contact.Contact, error) {
	idx := r.index(ownerID, id)
	if idx < 0 {
		return nil, contact.ErrNotFound
	}

	return clone(r.s.contacts[idx]), nil
}

func (r *contactRepo) FetchByIDForUpdate(ctx context.Context, ownerID user.ID, id contact.ID) (*contact.Contact, error) {
	return r.FetchByID(ctx, ownerID, id)
}

func (r *contactRepo) Update(_ context.Context, ownerID user.ID, req contact.Contact) (*contact.Contact, error) {
	idx := r.index(ownerID, req.ID)
	if idx < 0 {
		return nil, contact.ErrNotFound
	}

	stored := &r.s.contacts[idx]
	stored.FirstName = req.FirstName
	stored.LastName = req.LastName
	stored.Email = req.Email
	stored.Phone = req.Phone
	stored.Birthday = req.Birthday
	stored.AdditionalData = cloneString(req.AdditionalData)
	stored.UpdatedAt = r.s.now().UTC()

	return clone(*stored), nil
}

func (r *contactRepo) Delete(_ context.Context, ownerID user.ID, id contact.ID) error {
	idx := r.index(ownerID, id)
	if idx < 0 {
		return contact.ErrNotFound
	}
	r.s.contacts = append(r.s.contacts[:idx:idx], r.s.contacts[idx+1:]...)

	return nil
}

func (r *contactRepo) FetchContacts(
	_ context.Context,
	ownerID user.ID,
	filter contact.SearchFilter,
	page contact.Page,
) (contact.Contacts, error) {
	page = page.Normalize()

	return r.scan(ownerID, filter, page.Skip, page.Limit), nil
}

func (r *contactRepo) FetchAll(_ context.Context, ownerID user.ID) (contact.Contacts, error) {
	return r.scan(ownerID, contact.SearchFilter{}, 0, -1), nil
}

// scan walks contacts in id order. A negative limit means no limit.
func (r *contactRepo) scan(ownerID user.ID, filter contact.SearchFilter, skip, limit int) contact.Contacts {
	var out contact.Contacts
	skipped := 0
	for i := range r.s.contacts {
		c := &r.s.contacts[i]
		if c.OwnerID != ownerID || !filter.Match(c) {
			continue
		}
		if skipped < skip {
			skipped++
			continue
		}
		if limit >= 0 && len(out) >= limit {
			break
		}
		out = append(out, clone(*c))
	}

	return out
}

func (r *contactRepo) EmailExists(
	_ context.Context,
	scope contact.EmailScope,
	ownerID user.ID,
	email string,
	excludeID contact.ID,
) (bool, error) {
	for i := range r.s.contacts {
		c := &r.s.contacts[i]
		if c.ID == excludeID || c.Email != email {
			continue
		}
		if scope == contact.EmailScopeOwner && c.OwnerID != ownerID {
			continue
		}
		return true, nil
	}

	return false, nil
}

func (r *contactRepo) index(ownerID user.ID, id contact.ID) int {
	for i := range r.s.contacts {
		if r.s.contacts[i].ID == id && r.s.contacts[i].OwnerID == ownerID {
			return i
		}
	}

	return -1
}

func clone(c contact.Contact) *contact.Contact {
	c.AdditionalData = cloneString(c.AdditionalData)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s

	return &v
}
