// identityd is a local development identity server implementing the credential,
// refresh, and profile endpoints the SDK consumes. Refresh tokens are single
// use: every successful refresh rotates the pair and invalidates the presented
// token, which is what the production identity API does and what the SDK's
// refresh deduplication exists for.
package main

import (
	"flag"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/andreazagoit/upcominghub-native/enums"
	"github.com/andreazagoit/upcominghub-native/interfaces/http/echo/middleware"
	"github.com/andreazagoit/upcominghub-native/models"
	utilscontext "github.com/andreazagoit/upcominghub-native/utils/context"
	"github.com/andreazagoit/upcominghub-native/utils/logger"
)

type account struct {
	password string
	user     models.User
}

type session struct {
	user         *models.User
	refreshToken string
}

type identity struct {
	mu       sync.Mutex
	accounts map[string]*account // keyed by email
	sessions map[string]*session // keyed by access token
	refresh  map[string]string   // refresh token -> access token
}

func newIdentity() *identity {
	id := &identity{
		accounts: make(map[string]*account),
		sessions: make(map[string]*session),
		refresh:  make(map[string]string),
	}
	id.accounts["demo@upcominghub.com"] = &account{
		password: "demo-password",
		user: models.User{
			ID:            "u-demo",
			Email:         "demo@upcominghub.com",
			Name:          "Demo User",
			Role:          string(enums.RoleUser),
			Slug:          "demo",
			Type:          "personal",
			EmailVerified: true,
		},
	}
	return id
}

// issue mints a fresh pair for user, replacing any previous session.
func (id *identity) issue(user *models.User) models.TokenPair {
	pair := models.TokenPair{
		AccessToken:  "at-" + uuid.New().String(),
		RefreshToken: "rt-" + uuid.New().String(),
	}
	id.sessions[pair.AccessToken] = &session{user: user, refreshToken: pair.RefreshToken}
	id.refresh[pair.RefreshToken] = pair.AccessToken
	return pair
}

func (id *identity) revoke(accessToken string) {
	if sess, ok := id.sessions[accessToken]; ok {
		delete(id.refresh, sess.refreshToken)
		delete(id.sessions, accessToken)
	}
}

func (id *identity) lookup(token string) *models.User {
	id.mu.Lock()
	defer id.mu.Unlock()
	if sess, ok := id.sessions[token]; ok {
		return sess.user
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "data": data})
}

func failure(c echo.Context, status int, code string) error {
	return c.JSON(status, map[string]interface{}{"success": false, "message": code, "code": code})
}

func (id *identity) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, enums.CodeInvalidCredentials)
	}

	id.mu.Lock()
	defer id.mu.Unlock()

	acc, ok := id.accounts[req.Email]
	if !ok || acc.password != req.Password {
		return failure(c, http.StatusUnauthorized, enums.CodeInvalidCredentials)
	}
	if !acc.user.EmailVerified {
		return failure(c, http.StatusForbidden, enums.CodeEmailNotVerified)
	}
	if acc.user.Slug == "" {
		return failure(c, http.StatusForbidden, enums.CodeSlugNotSet)
	}

	pair := id.issue(&acc.user)
	return success(c, map[string]interface{}{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"user":         acc.user,
	})
}

func (id *identity) handleRegister(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, enums.CodeInvalidCredentials)
	}

	id.mu.Lock()
	defer id.mu.Unlock()

	if _, exists := id.accounts[req.Email]; exists {
		return failure(c, http.StatusConflict, "EMAIL_TAKEN")
	}

	acc := &account{
		password: req.Password,
		user: models.User{
			ID:            "u-" + uuid.New().String(),
			Email:         req.Email,
			Name:          req.Name,
			Role:          string(enums.RoleUser),
			Slug:          req.Name,
			Type:          "personal",
			EmailVerified: true,
		},
	}
	id.accounts[req.Email] = acc

	pair := id.issue(&acc.user)
	return success(c, map[string]interface{}{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"user":         acc.user,
	})
}

func (id *identity) handleRefresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, enums.CodeUnauthenticated)
	}

	id.mu.Lock()
	defer id.mu.Unlock()

	accessToken, ok := id.refresh[req.RefreshToken]
	if !ok {
		// Already-rotated or unknown refresh token. Single use, no second chance.
		return failure(c, http.StatusUnauthorized, enums.CodeUnauthenticated)
	}
	sess := id.sessions[accessToken]
	id.revoke(accessToken)

	pair := id.issue(sess.user)
	return success(c, map[string]interface{}{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (id *identity) handleLogout(c echo.Context) error {
	token := utilscontext.GetTokenFromContext(c.Request().Context())

	id.mu.Lock()
	defer id.mu.Unlock()
	id.revoke(token)
	return success(c, map[string]interface{}{})
}

func (id *identity) handleMe(c echo.Context) error {
	user := utilscontext.GetUserFromContext(c.Request().Context())
	if user == nil {
		return failure(c, http.StatusUnauthorized, enums.CodeUnauthenticated)
	}
	return success(c, map[string]interface{}{"user": user})
}

func main() {
	addr := flag.String("addr", ":8787", "listen address")
	logLevel := flag.String("log-level", enums.LogLevelInfo, "log level")
	flag.Parse()

	logger.Init(&logger.Config{
		Level:       *logLevel,
		Env:         "development",
		ServiceName: "identityd",
	})
	defer logger.Sync()

	id := newIdentity()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.SetTokenInContext())
	e.Use(middleware.SetUserInContext(id.lookup))

	e.POST("/api/auth/credentials/login", id.handleLogin)
	e.POST("/api/auth/credentials/register", id.handleRegister)
	e.POST("/api/auth/credentials/logout", id.handleLogout)
	e.POST("/api/auth/refresh", id.handleRefresh)
	e.GET("/api/auth/credentials/me", id.handleMe)

	logger.LogInfo("identityd listening", zap.String("addr", *addr))
	if err := e.Start(*addr); err != nil {
		logger.LogFatal("server stopped", zap.Error(err))
	}
}
