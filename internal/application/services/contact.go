package services

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"contacts-api/internal/application/ports"
	domain "contacts-api/internal/domain/contact"
	"contacts-api/internal/domain/user"
	"contacts-api/internal/infrastructure/metrics"
	"contacts-api/internal/infrastructure/mq"
)

type ContactService struct {
	uow       domain.UnitOfWork
	scope     domain.EmailScope
	publisher ports.EventPublisher
	mCounter  *prometheus.CounterVec
	clock     func() time.Time
	loc       *time.Location
}

type ContactServiceOption func(*ContactService)

// WithClock replaces time.Now as the source of "today".
func WithClock(clock func() time.Time) ContactServiceOption {
	return func(s *ContactService) { s.clock = clock }
}

func WithLocation(loc *time.Location) ContactServiceOption {
	return func(s *ContactService) { s.loc = loc }
}

func NewContactService(
	uow domain.UnitOfWork,
	scope domain.EmailScope,
	publisher ports.EventPublisher,
	mCounter *prometheus.CounterVec,
	opts ...ContactServiceOption,
) *ContactService {
	s := &ContactService{
		uow:       uow,
		scope:     scope,
		publisher: publisher,
		mCounter:  mCounter,
		clock:     time.Now,
		loc:       time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (cs *ContactService) CreateContact(
	ctx context.Context,
	ownerID user.ID,
	req domain.Draft,
) (*domain.Contact, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out *domain.Contact
	err := cs.uow.Do(ctx, func(ctx context.Context, repo domain.Repository) error {
		if err := cs.ensureEmailFree(ctx, repo, ownerID, req.Email, 0); err != nil {
			return err
		}

		c, err := repo.Create(ctx, ownerID, req)
		if err != nil {
			return err
		}
		out = c

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	cs.publisher.Publish(mq.NewContactEvent(mq.ContactCreated, out, cs.clock()))
	cs.mCounter.WithLabelValues(metrics.ContactCreated).Inc()

	return out, nil
}

func (cs *ContactService) FindContact(ctx context.Context, ownerID user.ID, id domain.ID) (*domain.Contact, error) {
	var out *domain.Contact
	err := cs.uow.Do(ctx, func(ctx context.Context, repo domain.Repository) error {
		c, err := repo.FetchByID(ctx, ownerID, id)
		out = c
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find contact %d: %w", id, err)
	}

	return out, nil
}

// FindContacts serves both listing and searching. An empty filter matches everything.
func (cs *ContactService) FindContacts(
	ctx context.Context,
	ownerID user.ID,
	filter domain.SearchFilter,
	page domain.Page,
) (domain.Contacts, error) {
	var out domain.Contacts
	err := cs.uow.Do(ctx, func(ctx context.Context, repo domain.Repository) error {
		found, err := repo.FetchContacts(ctx, ownerID, filter, page.Normalize())
		out = found
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find contacts: %w", err)
	}

	return out, nil
}

func (cs *ContactService) UpdateContact(
	ctx context.Context,
	ownerID user.ID,
	id domain.ID,
	patch domain.Patch,
) (*domain.Contact, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var out *domain.Contact
	err := cs.uow.Do(ctx, func(ctx context.Context, repo domain.Repository) error {
		c, err := repo.FetchByIDForUpdate(ctx, ownerID, id)
		if err != nil {
			return err
		}

		if email, ok := patch.Email.Get(); ok && email != c.Email {
			if err = cs.ensureEmailFree(ctx, repo, ownerID, email, c.ID); err != nil {
				return err
			}
		}

		c.Apply(patch)
		out, err = repo.Update(ctx, ownerID, *c)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update contact %d: %w", id, err)
	}

	cs.publisher.Publish(mq.NewContactEvent(mq.ContactUpdated, out, cs.clock()))
	cs.mCounter.WithLabelValues(metrics.ContactUpdated).Inc()

	return out, nil
}

func (cs *ContactService) DeleteContact(ctx context.Context, ownerID user.ID, id domain.ID) error {
	err := cs.uow.Do(ctx, func(ctx context.Context, repo domain.Repository) error {
		return repo.Delete(ctx, ownerID, id)
	})
	if err != nil {
		return fmt.Errorf("delete contact %d: %w", id, err)
	}

	cs.publisher.Publish(mq.NewContactEvent(mq.ContactDeleted, &domain.Contact{ID: id, OwnerID: ownerID}, cs.clock()))
	cs.mCounter.WithLabelValues(metrics.ContactDeleted).Inc()

	return nil
}

func (cs *ContactService) UpcomingBirthdays(
	ctx context.Context,
	ownerID user.ID,
	days int,
) (domain.UpcomingBirthdays, error) {
	if !domain.ValidWindow(days) {
		return nil, domain.ErrInvalidWindow
	}

	var all domain.Contacts
	err := cs.uow.Do(ctx, func(ctx context.Context, repo domain.Repository) error {
		found, err := repo.FetchAll(ctx, ownerID)
		all = found
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("upcoming birthdays: %w", err)
	}

	cs.mCounter.WithLabelValues(metrics.BirthdayLookups).Inc()

	return domain.FindUpcomingBirthdays(all, domain.Today(cs.clock(), cs.loc), days), nil
}

func (cs *ContactService) ensureEmailFree(
	ctx context.Context,
	repo domain.Repository,
	ownerID user.ID,
	email string,
	excludeID domain.ID,
) error {
	taken, err := repo.EmailExists(ctx, cs.scope, ownerID, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrEmailTaken
	}

	return nil
}
