package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth     = RouteApiV1 + "/auth"
	RouteRegister = RouteAuth + "/register"
	RouteLogin    = RouteAuth + "/login"

	// users
	RouteUsers    = RouteApiV1 + "/users"
	RouteMe       = RouteUsers + "/me"
	RouteMyAvatar = RouteMe + "/avatar"

	// contacts
	RouteContacts          = RouteApiV1 + "/contacts"
	RouteContact           = RouteContacts + "/:contact_id"
	RouteUpcomingBirthdays = RouteContacts + "/upcoming_birthdays"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
