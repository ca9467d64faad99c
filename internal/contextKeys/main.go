package contextkeys

// contextKey is a private type so context values set by this module can not
// collide with keys from other packages.
type contextKey string

// AuthIdentityKey holds the verified identity.Identity for the request
const AuthIdentityKey contextKey = "auth_identity"
