package middleware

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/mmynk/bucketlist/internal/models"
	"github.com/mmynk/bucketlist/pkg/logging"
)

type pingRequest struct{}

type fakeResolver struct {
	users map[string]*models.User
	err   error
}

func (f *fakeResolver) ResolveToken(_ context.Context, token string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[token], nil
}

// captureUser is a terminal handler that records the authenticated user.
func captureUser(gotID *int64, gotName *string) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		*gotID, _ = GetUserID(ctx)
		*gotName = GetUsername(ctx)
		return connect.NewResponse(&struct{}{}), nil
	}
}

func newRequest(authHeader string) *connect.Request[pingRequest] {
	req := connect.NewRequest(&pingRequest{})
	if authHeader != "" {
		req.Header().Set("Authorization", authHeader)
	}
	return req
}

func TestRequireAuth(t *testing.T) {
	resolver := &fakeResolver{users: map[string]*models.User{
		"good-token": {ID: 7, Username: "clement"},
	}}

	tests := []struct {
		name     string
		header   string
		wantCode connect.Code
		wantID   int64
	}{
		{name: "valid token", header: "Bearer good-token", wantID: 7},
		{name: "scheme is case-insensitive", header: "bearer good-token", wantID: 7},
		{name: "missing header", header: "", wantCode: connect.CodeUnauthenticated},
		{name: "wrong scheme", header: "Basic good-token", wantCode: connect.CodeUnauthenticated},
		{name: "empty token", header: "Bearer ", wantCode: connect.CodeUnauthenticated},
		{name: "unknown token", header: "Bearer bad-token", wantCode: connect.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int64
			var gotName string
			handler := RequireAuth(resolver)(captureUser(&gotID, &gotName))

			_, err := handler(context.Background(), newRequest(tt.header))
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, connect.CodeOf(err))
				assert.Zero(t, gotID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, gotID)
			assert.Equal(t, "clement", gotName)
		})
	}
}

func TestRequireAuthResolverFailure(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("database is locked")}
	var gotID int64
	var gotName string
	handler := RequireAuth(resolver)(captureUser(&gotID, &gotName))

	_, err := handler(context.Background(), newRequest("Bearer anything"))
	assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))
}

func TestGetUserIDUnauthenticated(t *testing.T) {
	id, ok := GetUserID(context.Background())
	assert.False(t, ok)
	assert.Zero(t, id)
	assert.Empty(t, GetUsername(context.Background()))
}

func TestLoggingInterceptor(t *testing.T) {
	resolver := &fakeResolver{users: map[string]*models.User{
		"good-token": {ID: 42, Username: "imani"},
	}}

	t.Run("logs authenticated user", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&buf, logging.ParseLevel("debug"))

		var gotID int64
		var gotName string
		handler := LoggingInterceptor(logger)(RequireAuth(resolver)(captureUser(&gotID, &gotName)))

		_, err := handler(context.Background(), newRequest("Bearer good-token"))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "RPC ok")
		assert.Contains(t, buf.String(), "user_id=42")
	})

	t.Run("logs rejected call", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&buf, logging.ParseLevel("debug"))

		var gotID int64
		var gotName string
		handler := LoggingInterceptor(logger)(RequireAuth(resolver)(captureUser(&gotID, &gotName)))

		_, err := handler(context.Background(), newRequest(""))
		require.Error(t, err)
		assert.Contains(t, buf.String(), "RPC error")
		assert.Contains(t, buf.String(), "unauthenticated")
	})
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	ok := m.Interceptor()(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&struct{}{}), nil
	})
	failing := m.Interceptor()(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("missing"))
	})

	for i := 0; i < 3; i++ {
		_, err := ok(context.Background(), newRequest(""))
		require.NoError(t, err)
	}
	_, err := failing(context.Background(), newRequest(""))
	require.Error(t, err)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues("", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("", "not_found")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requests))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestRateLimit(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0.001), 2)
	handler := RateLimit(limiter)(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&struct{}{}), nil
	})

	for i := 0; i < 2; i++ {
		_, err := handler(context.Background(), newRequest(""))
		require.NoError(t, err)
	}

	_, err := handler(context.Background(), newRequest(""))
	require.Error(t, err)
	assert.Equal(t, connect.CodeResourceExhausted, connect.CodeOf(err))
	assert.ErrorIs(t, err, ErrRateLimited)
}
