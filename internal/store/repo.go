package store

import (
	"context"
	"time"
)

// Keys under which session state is persisted. They match the names the
// web client used in browser storage so both can be reasoned about alike.
const (
	KeySessionToken  = "sessionToken"
	KeyProfile       = "profile"
	KeyWorkoutPlan   = "workoutPlan"
	KeyOptionCatalog = "optionCatalog"
)

// RequestEventData captures a single backend API call.
type RequestEventData struct {
	RequestID    string
	Method       string
	Route        string // route template, e.g. /profiles/{id}/workout-plan
	Status       int    // 0 when no response was received
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestEvent is a stored RequestEventData.
type RequestEvent struct {
	RequestEventData
	Sequence  int64
	Timestamp time.Time
}

// RouteStats aggregates request events for one method and route.
type RouteStats struct {
	Method       string
	Route        string
	Total        int
	Succeeded    int
	AvgLatencyMs float64
}

// EventRepo provides append and query access to request events.
type EventRepo interface {
	// AppendRequest records a backend API call.
	AppendRequest(ctx context.Context, data RequestEventData) error

	// RequestStats aggregates all recorded calls per method and route.
	RequestStats(ctx context.Context) ([]RouteStats, error)

	// RecentRequests returns up to limit events, newest first.
	RecentRequests(ctx context.Context, limit int) ([]RequestEvent, error)
}
