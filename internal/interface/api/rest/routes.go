package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth  = RouteApiV1 + "/auth"
	RouteLogin = RouteAuth + "/login"

	RouteUsers         = RouteApiV1 + "/users"
	RouteUsersFind     = RouteUsers + "/find"
	RouteUsersLookup   = RouteUsers + "/lookup"
	RouteUsersPassword = RouteUsers + "/password"
	RouteUser          = RouteUsers + "/:user_id"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
