package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/andreazagoit/upcominghub-native/enums"
	"github.com/andreazagoit/upcominghub-native/models"
	"github.com/andreazagoit/upcominghub-native/otel"
	"github.com/andreazagoit/upcominghub-native/utils/logger"
)

// RequestOptions shapes a call made through the authenticated transport.
type RequestOptions struct {
	Method string // defaults to GET
	Body   interface{}
	Query  map[string]string
	Header map[string]string
}

// Transport issues requests with the current credentials attached and handles
// transparent re-authentication. Every data-fetching call in a host application
// (e.g. its GraphQL layer) goes through here.
type Transport struct {
	client      *identityClient
	state       *State
	coordinator *RefreshCoordinator

	// teardown is the forced sign-out path, wired in by the Manager.
	teardown func(ctx context.Context)
}

// Request sends an authenticated request to endpoint. On an unauthenticated
// response it refreshes once and retries once; no second retry, so a server that
// rejects even fresh tokens cannot loop the client. A second rejection, or a
// failed refresh, tears the session down and surfaces ErrAuthenticationExpired.
// Responses that do not signal an authentication failure are returned unmodified,
// whatever their status.
func (t *Transport) Request(ctx context.Context, endpoint string, opts RequestOptions) (*resty.Response, error) {
	sess := t.state.Read()
	if !sess.Tokens.Complete() {
		return nil, ErrNotAuthenticated
	}

	resp, err := t.send(ctx, endpoint, opts, sess.Tokens)
	if err != nil {
		return nil, err
	}
	if !isUnauthenticated(resp) {
		t.adoptRotatedTokens(ctx, resp)
		return resp, nil
	}

	pair, err := t.coordinator.Refresh(ctx)
	if err != nil {
		logger.LogInfo("token refresh failed, tearing session down", zap.Error(err))
		t.teardown(ctx)
		return nil, ErrAuthenticationExpired
	}

	retry, err := t.send(ctx, endpoint, opts, pair)
	if err != nil {
		return nil, err
	}
	if isUnauthenticated(retry) {
		// The server rejects a freshly minted token; keeping the session would
		// just replay this cycle on the next call.
		logger.LogInfo("request rejected after refresh, tearing session down")
		t.teardown(ctx)
		return nil, ErrAuthenticationExpired
	}
	t.adoptRotatedTokens(ctx, retry)
	return retry, nil
}

func (t *Transport) send(ctx context.Context, endpoint string, opts RequestOptions, pair models.TokenPair) (*resty.Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	ctx, finish := otel.StartHTTPSpan(ctx, t.client.serviceName, "request", method, t.client.http.BaseURL, endpoint)
	req := t.client.http.R().
		SetContext(ctx).
		SetHeader(headerAuthorization, "Bearer "+pair.AccessToken).
		SetHeader(headerRefreshToken, pair.RefreshToken)
	for k, v := range opts.Header {
		req.SetHeader(k, v)
	}
	if len(opts.Query) > 0 {
		req.SetQueryParams(opts.Query)
	}
	if opts.Body != nil {
		req.SetBody(opts.Body)
	}

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		finish(0, err)
		return nil, err
	}
	finish(resp.StatusCode(), nil)
	return resp, nil
}

// adoptRotatedTokens persists a new pair when the server opportunistically
// rotated tokens on a successful response. Same atomicity as a full refresh.
func (t *Transport) adoptRotatedTokens(ctx context.Context, resp *resty.Response) {
	access := resp.Header().Get(headerNewAccessToken)
	refresh := resp.Header().Get(headerNewRefreshToken)
	if access == "" || refresh == "" {
		return
	}
	t.coordinator.commit(ctx, models.TokenPair{AccessToken: access, RefreshToken: refresh})
	logger.LogDebug("adopted server-rotated tokens")
}

// isUnauthenticated reports whether a response marks the session as expired:
// an HTTP 401, or a 200 whose GraphQL error payload carries the UNAUTHENTICATED
// code. Every other response is an ordinary application result.
func isUnauthenticated(resp *resty.Response) bool {
	if resp.StatusCode() == http.StatusUnauthorized {
		return true
	}
	if resp.StatusCode() != http.StatusOK {
		return false
	}
	for _, e := range gjson.GetBytes(resp.Body(), "errors").Array() {
		if e.Get("extensions.code").String() == enums.CodeUnauthenticated {
			return true
		}
		if strings.Contains(e.Get("message").String(), enums.CodeUnauthenticated) {
			return true
		}
	}
	return false
}
