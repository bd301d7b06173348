package enums

type SessionStatus string

const (
	SessionUnknown         SessionStatus = "unknown"
	SessionRestoring       SessionStatus = "restoring"
	SessionAuthenticated   SessionStatus = "authenticated"
	SessionUnauthenticated SessionStatus = "unauthenticated"
)
