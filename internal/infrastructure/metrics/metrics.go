package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels of the general counter.
const (
	RequestsTotal       = "app_requests_total"
	ContactCreated      = "contact_created_total"
	ContactUpdated      = "contact_updated_total"
	ContactDeleted      = "contact_deleted_total"
	BirthdayLookups     = "birthday_lookups_total"
	UserRegistered      = "user_registered_total"
	LoginFailed         = "login_failed_total"
	AvatarUploaded      = "avatar_uploaded_total"
	EventsDropped       = "events_dropped_total"
	RateLimitedRequests = "rate_limited_total"
)

func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contacts",
			Name:      "general_counters",
		},
		[]string{"result"})
}

// NewUnregisteredCounter builds the same counter without touching the default registry.
func NewUnregisteredCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contacts",
			Name:      "general_counters",
		},
		[]string{"result"})
}
