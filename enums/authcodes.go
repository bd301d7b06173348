package enums

// Error codes returned by the identity endpoints. The login endpoint embeds them
// in its failure message; data endpoints carry CodeUnauthenticated in GraphQL
// error extensions when the presented access token is no longer accepted.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailNotVerified   = "EMAIL_NOT_VERIFIED"
	CodeSlugNotSet         = "SLUG_NOT_SET"
	CodeUnauthenticated    = "UNAUTHENTICATED"
)
