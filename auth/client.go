package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/andreazagoit/upcominghub-native/models"
	"github.com/andreazagoit/upcominghub-native/otel"
)

// Identity endpoint paths.
const (
	loginPath    = "/api/auth/credentials/login"
	registerPath = "/api/auth/credentials/register"
	logoutPath   = "/api/auth/credentials/logout"
	refreshPath  = "/api/auth/refresh"
	mePath       = "/api/auth/credentials/me"
)

// Header names used by the session protocol. The refresh token travels in a side
// header so the server can opportunistically rotate tokens on any authenticated
// call; the two x-new-* response headers carry such a rotation back.
const (
	headerAuthorization   = "Authorization"
	headerRefreshToken    = "x-refresh-token"
	headerNewAccessToken  = "x-new-access-token"
	headerNewRefreshToken = "x-new-refresh-token"
	headerRequestID       = "X-Request-ID"
)

// identityClient issues the raw calls against the identity endpoints. It knows
// the wire envelope ({success, data, message}) and nothing about session state.
type identityClient struct {
	http        *resty.Client
	serviceName string
}

func newIdentityClient(cfg Config) *identityClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader(headerRequestID, uuid.New().String())
		return nil
	})
	client.OnBeforeRequest(otel.WithTraceHeaders)

	return &identityClient{http: client, serviceName: cfg.ServiceName}
}

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name,omitempty"`
}

// login exchanges credentials for a token pair and profile snapshot.
func (c *identityClient) login(ctx context.Context, creds credentials) (models.TokenPair, *models.User, error) {
	return c.credentialExchange(ctx, "login", loginPath, creds)
}

// register creates an account; the response envelope matches login.
func (c *identityClient) register(ctx context.Context, creds credentials) (models.TokenPair, *models.User, error) {
	return c.credentialExchange(ctx, "register", registerPath, creds)
}

func (c *identityClient) credentialExchange(ctx context.Context, op, path string, creds credentials) (models.TokenPair, *models.User, error) {
	ctx, finish := otel.StartHTTPSpan(ctx, c.serviceName, op, http.MethodPost, c.http.BaseURL, path)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(creds).
		Post(path)
	if err != nil {
		finish(0, err)
		return models.TokenPair{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	finish(resp.StatusCode(), nil)

	body := resp.Body()
	if !gjson.GetBytes(body, "success").Bool() {
		return models.TokenPair{}, nil, classifyAuthCode(gjson.GetBytes(body, "message").String())
	}

	pair := models.TokenPair{
		AccessToken:  gjson.GetBytes(body, "data.accessToken").String(),
		RefreshToken: gjson.GetBytes(body, "data.refreshToken").String(),
	}
	if !pair.Complete() {
		return models.TokenPair{}, nil, fmt.Errorf("%s: malformed response, token pair missing", op)
	}

	var user models.User
	if raw := gjson.GetBytes(body, "data.user").Raw; raw != "" {
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return models.TokenPair{}, nil, fmt.Errorf("%s: decode user: %w", op, err)
		}
	}
	return pair, &user, nil
}

// refresh exchanges a refresh token for a new pair. Any failure maps to
// ErrRefreshFailed; the caller decides whether the session comes down.
func (c *identityClient) refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	ctx, finish := otel.StartHTTPSpan(ctx, c.serviceName, "refresh", http.MethodPost, c.http.BaseURL, refreshPath)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"refreshToken": refreshToken}).
		Post(refreshPath)
	if err != nil {
		finish(0, err)
		return models.TokenPair{}, fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	finish(resp.StatusCode(), nil)

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK || !gjson.GetBytes(body, "success").Bool() {
		return models.TokenPair{}, ErrRefreshFailed
	}

	pair := models.TokenPair{
		AccessToken:  gjson.GetBytes(body, "data.accessToken").String(),
		RefreshToken: gjson.GetBytes(body, "data.refreshToken").String(),
	}
	if !pair.Complete() {
		return models.TokenPair{}, ErrRefreshFailed
	}
	return pair, nil
}

// logout invalidates the session server side. Best effort: the caller clears
// local state regardless of the outcome.
func (c *identityClient) logout(ctx context.Context, pair models.TokenPair) error {
	ctx, finish := otel.StartHTTPSpan(ctx, c.serviceName, "logout", http.MethodPost, c.http.BaseURL, logoutPath)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(headerAuthorization, "Bearer "+pair.AccessToken).
		SetHeader(headerRefreshToken, pair.RefreshToken).
		Post(logoutPath)
	if err != nil {
		finish(0, err)
		return fmt.Errorf("logout: %w", err)
	}
	finish(resp.StatusCode(), nil)

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("logout: status %d", resp.StatusCode())
	}
	return nil
}
