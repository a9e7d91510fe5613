package api

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/fitplan/internal/store"
)

// recordingTransport is a RoundTripper decorator that stores one event per
// request. Recording failures never fail the request.
type recordingTransport struct {
	next http.RoundTripper
	repo store.EventRepo
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	data := store.RequestEventData{
		RequestID: req.Header.Get("X-Request-ID"),
		Method:    req.Method,
		Route:     RouteFrom(req.Context()),
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	} else {
		data.Status = resp.StatusCode
		data.Success = resp.StatusCode < 400
	}

	// The request context may already be cancelled; the event should
	// still land.
	ctx := context.WithoutCancel(req.Context())
	if logErr := t.repo.AppendRequest(ctx, data); logErr != nil {
		logrus.WithError(logErr).Warn("failed to record request event")
	}
	return resp, err
}
