package middleware

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when a limited procedure is called too often.
var ErrRateLimited = errors.New("too many requests, try again later")

// RateLimit rejects calls once limiter runs out of tokens. It is meant for
// credential endpoints, so one limiter is shared by every caller.
func RateLimit(limiter *rate.Limiter) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if !limiter.Allow() {
				return nil, connect.NewError(connect.CodeResourceExhausted, ErrRateLimited)
			}
			return next(ctx, req)
		}
	}
}
