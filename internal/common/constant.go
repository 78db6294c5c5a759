package common

// Persisted storage keys. Each key has exactly one writer: the session store
// owns the first three, the active-pet store owns KeyCurrentPet.
const (
	KeyToken        = "token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
	KeyCurrentPet   = "currentPet"
)

// AdminRoleID is the role identifier granting access to admin-gated routes.
const AdminRoleID = 2

// DefaultCity is assumed when a user record carries no city.
const DefaultCity = "global"

// RequestIDHeaderName carries the client-generated request id on outbound
// HTTP requests.
const RequestIDHeaderName = "X-Request-ID"
