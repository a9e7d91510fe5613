package api

import "context"

type contextKey string

const routeKey contextKey = "route"

// WithRoute labels the request with its route template so that recorded
// events group by endpoint rather than by concrete URL.
func WithRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey, route)
}

// RouteFrom extracts the route template from the context.
func RouteFrom(ctx context.Context) string {
	if v, ok := ctx.Value(routeKey).(string); ok {
		return v
	}
	return "unknown"
}
