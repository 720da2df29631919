package auth

// Request-scoped keys shared between the auth gate and handlers.
const (
	// LocalsUserID is the fiber locals key holding the authenticated user id.
	LocalsUserID = "user_id"
	// LocalsClaims is the fiber locals key holding the full decoded claims.
	LocalsClaims = "claims"
	// TokenCookie is the cookie read by the gate and cleared by logout.
	TokenCookie = "token"
)
