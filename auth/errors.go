package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andreazagoit/upcominghub-native/enums"
)

var (
	// ErrInvalidCredentials is returned by SignIn when the email/password pair is
	// rejected, or when the input fails local validation before any network call.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailNotVerified is returned by SignIn for accounts that have not
	// completed email verification.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrUsernameNotSet is returned by SignIn for accounts with no slug
	// configured yet.
	ErrUsernameNotSet = errors.New("username not set")

	// ErrNoRefreshToken is returned by the refresh coordinator when no session is
	// present. It means "already signed out", not a fault.
	ErrNoRefreshToken = errors.New("no refresh token")

	// ErrRefreshFailed means the identity endpoint rejected or failed the token
	// exchange. It is terminal for the session: the facade tears the session down
	// rather than retrying.
	ErrRefreshFailed = errors.New("refresh failed")

	// ErrAuthenticationExpired is surfaced by the authenticated transport after a
	// failed refresh-and-retry cycle. The session has already been torn down.
	ErrAuthenticationExpired = errors.New("authentication expired")

	// ErrNotAuthenticated is returned when an authenticated call is attempted
	// with no tokens in the session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// classifyAuthCode maps the identity endpoint's error code (or a free-text
// message containing it) to a typed error. The message matching lives here and
// nowhere else; callers branch on the sentinel errors.
func classifyAuthCode(message string) error {
	switch {
	case strings.Contains(message, enums.CodeEmailNotVerified):
		return ErrEmailNotVerified
	case strings.Contains(message, enums.CodeSlugNotSet):
		return ErrUsernameNotSet
	case strings.Contains(message, enums.CodeInvalidCredentials):
		return ErrInvalidCredentials
	case message == "":
		return errors.New("sign in failed")
	default:
		return fmt.Errorf("sign in failed: %s", message)
	}
}
