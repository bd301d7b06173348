package auth

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// accessTokenExpired decodes the JWT payload of an access token and reports
// whether its exp claim is in the past. Tokens that are not JWTs or carry no exp
// claim cannot be judged locally and are reported as not expired; the server's
// 401 handling covers them.
func accessTokenExpired(token string, now time.Time) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	exp := gjson.GetBytes(payload, "exp").Int()
	if exp == 0 {
		return false
	}
	return time.Unix(exp, 0).Before(now)
}
