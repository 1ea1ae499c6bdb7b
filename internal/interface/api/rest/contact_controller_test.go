package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "contacts-api/internal/domain/contact"
	"contacts-api/internal/domain/user"
	"contacts-api/internal/interface/api/rest/dto/contact"
)

type FakeContactService struct {
	CreateContactFunc     func(ctx context.Context, ownerID user.ID, req domain.Draft) (*domain.Contact, error)
	FindContactFunc       func(ctx context.Context, ownerID user.ID, id domain.ID) (*domain.Contact, error)
	FindContactsFunc      func(ctx context.Context, ownerID user.ID, filter domain.SearchFilter, page domain.Page) (domain.Contacts, error)
	UpdateContactFunc     func(ctx context.Context, ownerID user.ID, id domain.ID, patch domain.Patch) (*domain.Contact, error)
	DeleteContactFunc     func(ctx context.Context, ownerID user.ID, id domain.ID) error
	UpcomingBirthdaysFunc func(ctx context.Context, ownerID user.ID, days int) (domain.UpcomingBirthdays, error)
}

func (f *FakeContactService) CreateContact(ctx context.Context, ownerID user.ID, req domain.Draft) (*domain.Contact, error) {
	if f.CreateContactFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateContactFunc(ctx, ownerID, req)
}
func (f *FakeContactService) FindContact(ctx context.Context, ownerID user.ID, id domain.ID) (*domain.Contact, error) {
	if f.FindContactFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindContactFunc(ctx, ownerID, id)
}
func (f *FakeContactService) FindContacts(ctx context.Context, ownerID user.ID, filter domain.SearchFilter, page domain.Page) (domain.Contacts, error) {
	if f.FindContactsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindContactsFunc(ctx, ownerID, filter, page)
}
func (f *FakeContactService) UpdateContact(ctx context.Context, ownerID user.ID, id domain.ID, patch domain.Patch) (*domain.Contact, error) {
	if f.UpdateContactFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UpdateContactFunc(ctx, ownerID, id, patch)
}
func (f *FakeContactService) DeleteContact(ctx context.Context, ownerID user.ID, id domain.ID) error {
	if f.DeleteContactFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteContactFunc(ctx, ownerID, id)
}
func (f *FakeContactService) UpcomingBirthdays(ctx context.Context, ownerID user.ID, days int) (domain.UpcomingBirthdays, error) {
	if f.UpcomingBirthdaysFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UpcomingBirthdaysFunc(ctx, ownerID, days)
}

func someContact(id domain.ID, owner user.ID) *domain.Contact {
	return &domain.Contact{
		ID:        id,
		OwnerID:   owner,
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     fmt.Sprintf("ann%d@example.com", id),
		Phone:     "+380501234567",
		Birthday:  time.Date(1990, 2, 28, 0, 0, 0, 0, time.UTC),
	}
}

func validCreateBody() map[string]any {
	return map[string]any{
		"first_name": "Ann",
		"last_name":  "Lee",
		"email":      "ann@example.com",
		"phone":      "+380501234567",
		"birthday":   "1990-02-28",
	}
}

func TestContactController_RequiresAuth(t *testing.T) {
	r, auth, _ := newTestEngine(t)
	NewContactController(r, &FakeContactService{}, zap.NewNop(), auth)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, RouteContacts},
		{http.MethodPost, RouteContacts},
		{http.MethodGet, RouteContacts + "/1"},
		{http.MethodPut, RouteContacts + "/1"},
		{http.MethodDelete, RouteContacts + "/1"},
		{http.MethodGet, RouteUpcomingBirthdays},
	} {
		rr := doReq(t, r, tc.method, tc.path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, tc.method+" "+tc.path)
	}
}

func TestContactController_Create(t *testing.T) {
	tests := []struct {
		name        string
		body        any
		svcErr      error
		wantStatus  int
		wantError   string
		wantDetails []string
	}{
		{name: "201 created", body: validCreateBody(), wantStatus: http.StatusCreated},
		{name: "400 invalid json", body: "{", wantStatus: http.StatusBadRequest, wantError: "invalid request body"},
		{
			name: "400 missing and bad fields",
			body: map[string]any{
				"first_name": "",
				"email":      "nope",
				"phone":      "123",
				"birthday":   "1990/01/01",
			},
			wantStatus:  http.StatusBadRequest,
			wantDetails: []string{"first_name", "last_name", "email", "phone", "birthday"},
		},
		{
			name:       "409 email taken",
			body:       validCreateBody(),
			svcErr:     fmt.Errorf("create contact: %w", domain.ErrEmailTaken),
			wantStatus: http.StatusConflict,
			wantError:  "email already registered",
		},
		{
			name:        "400 service validation",
			body:        validCreateBody(),
			svcErr:      &domain.ValidationError{Fields: map[string]string{"phone": "bad"}},
			wantStatus:  http.StatusBadRequest,
			wantDetails: []string{"phone"},
		},
		{
			name:       "500 hides cause",
			body:       validCreateBody(),
			svcErr:     errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, auth, j := newTestEngine(t)
			var gotOwner user.ID
			var gotDraft domain.Draft
			NewContactController(r, &FakeContactService{
				CreateContactFunc: func(_ context.Context, ownerID user.ID, req domain.Draft) (*domain.Contact, error) {
					gotOwner, gotDraft = ownerID, req
					if tt.svcErr != nil {
						return nil, tt.svcErr
					}
					c := someContact(1, ownerID)
					c.Email = req.Email
					return c, nil
				},
			}, zap.NewNop(), auth)

			rr := doReq(t, r, http.MethodPost, RouteContacts, tt.body, bearer(t, j, "7"))
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())

			if tt.wantStatus == http.StatusCreated {
				got := decode[contact.Contact](t, rr)
				assert.Equal(t, int64(1), got.ID)
				assert.Equal(t, "ann@example.com", got.Email)
				assert.Equal(t, "1990-02-28", got.Birthday)
				assert.Equal(t, user.ID(7), gotOwner)
				assert.Equal(t, time.Date(1990, 2, 28, 0, 0, 0, 0, time.UTC), gotDraft.Birthday)
				return
			}

			body := decode[errorBody](t, rr)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body.Error)
			}
			for _, f := range tt.wantDetails {
				assert.Contains(t, body.Details, f)
			}
		})
	}
}

func TestContactController_List_AppliesFilters(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantFilter domain.SearchFilter
		wantPage   domain.Page
	}{
		{
			name:       "plain list",
			query:      "",
			wantStatus: http.StatusOK,
			wantPage:   domain.Page{Limit: 100},
		},
		{
			name:       "filters and paging",
			query:      "?first_name=jo&email=corp&skip=2&limit=5",
			wantStatus: http.StatusOK,
			wantFilter: domain.SearchFilter{FirstName: ptr("jo"), Email: ptr("corp")},
			wantPage:   domain.Page{Skip: 2, Limit: 5},
		},
		{name: "bad limit", query: "?limit=0", wantStatus: http.StatusBadRequest},
		{name: "bad skip", query: "?skip=-1", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, auth, j := newTestEngine(t)
			called := false
			NewContactController(r, &FakeContactService{
				FindContactsFunc: func(_ context.Context, ownerID user.ID, filter domain.SearchFilter, page domain.Page) (domain.Contacts, error) {
					called = true
					assert.Equal(t, user.ID(3), ownerID)
					assert.Equal(t, tt.wantFilter, filter)
					assert.Equal(t, tt.wantPage, page)
					return domain.Contacts{someContact(1, ownerID), someContact(2, ownerID)}, nil
				},
			}, zap.NewNop(), auth)

			rr := doReq(t, r, http.MethodGet, RouteContacts+tt.query, nil, bearer(t, j, "3"))
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantStatus != http.StatusOK {
				assert.False(t, called)
				return
			}
			got := decode[contact.Contacts](t, rr)
			require.Len(t, got, 2)
			assert.Equal(t, int64(1), got[0].ID)
		})
	}
}

func TestContactController_GetUpdateDelete(t *testing.T) {
	notFound := fmt.Errorf("wrapped: %w", domain.ErrNotFound)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		svc        *FakeContactService
		wantStatus int
	}{
		{
			name:   "get 200",
			method: http.MethodGet,
			path:   RouteContacts + "/5",
			svc: &FakeContactService{FindContactFunc: func(_ context.Context, o user.ID, id domain.ID) (*domain.Contact, error) {
				return someContact(id, o), nil
			}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "get bad id",
			method:     http.MethodGet,
			path:       RouteContacts + "/abc",
			svc:        &FakeContactService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "get foreign or missing 404",
			method: http.MethodGet,
			path:   RouteContacts + "/5",
			svc: &FakeContactService{FindContactFunc: func(context.Context, user.ID, domain.ID) (*domain.Contact, error) {
				return nil, notFound
			}},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "update 200 partial",
			method: http.MethodPut,
			path:   RouteContacts + "/5",
			body:   map[string]any{"phone": "+15551234567", "additional_data": nil},
			svc: &FakeContactService{UpdateContactFunc: func(_ context.Context, o user.ID, id domain.ID, p domain.Patch) (*domain.Contact, error) {
				assert.False(t, p.FirstName.IsSet())
				phone, ok := p.Phone.Get()
				assert.True(t, ok)
				notes, ok := p.AdditionalData.Get()
				assert.True(t, ok)
				assert.Nil(t, notes)
				c := someContact(id, o)
				c.Phone = phone
				return c, nil
			}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "update null email 400",
			method:     http.MethodPut,
			path:       RouteContacts + "/5",
			body:       map[string]any{"email": nil},
			svc:        &FakeContactService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "update invalid phone 400",
			method:     http.MethodPut,
			path:       RouteContacts + "/5",
			body:       map[string]any{"phone": "12"},
			svc:        &FakeContactService{UpdateContactFunc: func(_ context.Context, _ user.ID, _ domain.ID, p domain.Patch) (*domain.Contact, error) { return nil, p.Validate() }},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "update 409",
			method: http.MethodPut,
			path:   RouteContacts + "/5",
			body:   map[string]any{"email": "taken@example.com"},
			svc: &FakeContactService{UpdateContactFunc: func(context.Context, user.ID, domain.ID, domain.Patch) (*domain.Contact, error) {
				return nil, domain.ErrEmailTaken
			}},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "update 404",
			method: http.MethodPut,
			path:   RouteContacts + "/5",
			body:   map[string]any{"first_name": "X"},
			svc: &FakeContactService{UpdateContactFunc: func(context.Context, user.ID, domain.ID, domain.Patch) (*domain.Contact, error) {
				return nil, notFound
			}},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "delete 204",
			method: http.MethodDelete,
			path:   RouteContacts + "/5",
			svc: &FakeContactService{DeleteContactFunc: func(context.Context, user.ID, domain.ID) error {
				return nil
			}},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "delete 404",
			method: http.MethodDelete,
			path:   RouteContacts + "/5",
			svc: &FakeContactService{DeleteContactFunc: func(context.Context, user.ID, domain.ID) error {
				return notFound
			}},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, auth, j := newTestEngine(t)
			NewContactController(r, tt.svc, zap.NewNop(), auth)

			rr := doReq(t, r, tt.method, tt.path, tt.body, bearer(t, j, "1"))
			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantStatus == http.StatusNotFound {
				assert.Equal(t, "contact not found", decode[errorBody](t, rr).Error)
			}
		})
	}
}

func TestContactController_UpcomingBirthdays(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantDays   int
		wantStatus int
	}{
		{name: "default window", query: "", wantDays: 7, wantStatus: http.StatusOK},
		{name: "explicit", query: "?days=30", wantDays: 30, wantStatus: http.StatusOK},
		{name: "zero", query: "?days=0", wantDays: 0, wantStatus: http.StatusUnprocessableEntity},
		{name: "too many", query: "?days=366", wantDays: 366, wantStatus: http.StatusUnprocessableEntity},
		{name: "not a number", query: "?days=week", wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, auth, j := newTestEngine(t)
			NewContactController(r, &FakeContactService{
				UpcomingBirthdaysFunc: func(_ context.Context, o user.ID, days int) (domain.UpcomingBirthdays, error) {
					assert.Equal(t, tt.wantDays, days)
					if !domain.ValidWindow(days) {
						return nil, domain.ErrInvalidWindow
					}
					return domain.UpcomingBirthdays{{
						Contact:      someContact(1, o),
						DaysUntil:    3,
						NextBirthday: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
					}}, nil
				},
			}, zap.NewNop(), auth)

			rr := doReq(t, r, http.MethodGet, RouteUpcomingBirthdays+tt.query, nil, bearer(t, j, "1"))
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			got := decode[contact.UpcomingBirthdays](t, rr)
			require.Len(t, got, 1)
			assert.Equal(t, 3, got[0].DaysUntil)
			assert.Equal(t, "2024-01-02", got[0].NextBirthday)
			assert.Equal(t, int64(1), got[0].Contact.ID)
		})
	}
}

func ptr[T any](v T) *T { return &v }
