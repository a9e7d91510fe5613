// Package api is the HTTP client for the fitness planning backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/fitplan/internal/fitness"
	"github.com/abhisek/fitplan/internal/store"
)

// Route templates, relative to the base URL.
const (
	RouteListOptions  = "/fitness-options"
	RouteFetchOptions = "/options"
	RouteProfile      = "/profile"
	RoutePlan         = "/profiles/{id}/workout-plan"
)

// Generic messages used when the backend does not supply one.
const (
	msgOptionsFailed  = "Error fetching fitness options."
	msgProfileFailed  = "An unexpected error occurred. Please try again."
	msgPlanGetFailed  = "Failed to fetch workout plan"
	msgPlanGenFailed  = "Error generating workout plan"
	maxErrorBodyBytes = 64 << 10
)

// Client talks to the backend REST API.
type Client struct {
	baseURL  string
	http     *http.Client
	recorder store.EventRepo
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is kept.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRecorder records every request in repo. It wraps whichever HTTP
// client the other options settle on.
func WithRecorder(repo store.EventRepo) Option {
	return func(c *Client) { c.recorder = repo }
}

// New creates a client for the API rooted at baseURL, e.g.
// http://localhost:5002/api.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.recorder != nil {
		next := c.http.Transport
		if next == nil {
			next = http.DefaultTransport
		}
		h := *c.http
		h.Transport = &recordingTransport{next: next, repo: c.recorder}
		c.http = &h
	}
	return c, nil
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

// ListOptions fetches the option catalog with GET, passing age and the
// current selection as query parameters.
func (c *Client) ListOptions(ctx context.Context, age int, sel fitness.SelectionSet) (*fitness.Catalog, error) {
	if age <= 0 {
		return nil, fitness.NewValidationError(fitness.ErrInvalidAge)
	}
	q := url.Values{"age": {strconv.Itoa(age)}}
	if !sel.IsEmpty() {
		raw, err := json.Marshal(sel)
		if err != nil {
			return nil, fmt.Errorf("encode selections: %w", err)
		}
		q.Set("selections", string(raw))
	}

	var cat fitness.Catalog
	err := c.do(ctx, call{
		op:       "list options",
		method:   http.MethodGet,
		route:    RouteListOptions,
		path:     RouteListOptions,
		query:    q,
		fallback: msgOptionsFailed,
		schema:   CatalogSchema,
	}, &cat)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// FetchOptions fetches the option catalog with POST, sending age and the
// current selection so the backend can tailor the remaining options.
func (c *Client) FetchOptions(ctx context.Context, age int, sel fitness.SelectionSet) (*fitness.Catalog, error) {
	if age <= 0 {
		return nil, fitness.NewValidationError(fitness.ErrInvalidAge)
	}
	body := struct {
		Age        int                  `json:"age"`
		Selections fitness.SelectionSet `json:"selections"`
	}{age, sel}

	var cat fitness.Catalog
	err := c.do(ctx, call{
		op:       "fetch options",
		method:   http.MethodPost,
		route:    RouteFetchOptions,
		path:     RouteFetchOptions,
		body:     body,
		fallback: msgOptionsFailed,
		schema:   CatalogSchema,
	}, &cat)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// CreateProfile submits a profile and returns the resulting session. The
// token may be empty if the backend misbehaves; callers check it.
func (c *Client) CreateProfile(ctx context.Context, p fitness.Profile) (*fitness.Session, error) {
	var sess fitness.Session
	err := c.do(ctx, call{
		op:       "create profile",
		method:   http.MethodPost,
		route:    RouteProfile,
		path:     RouteProfile,
		body:     p,
		fallback: msgProfileFailed,
		schema:   SessionSchema,
	}, &sess)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// GetPlan fetches the plan for a profile. A missing plan yields
// *NotFoundError.
func (c *Client) GetPlan(ctx context.Context, id string) (*fitness.WorkoutPlan, error) {
	var plan fitness.WorkoutPlan
	err := c.do(ctx, call{
		op:       "get workout plan",
		method:   http.MethodGet,
		route:    RoutePlan,
		path:     planPath(id),
		fallback: msgPlanGetFailed,
		schema:   PlanSchema,
		notFound: "workout plan",
	}, &plan)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GeneratePlan asks the backend to build a new plan for the session.
func (c *Client) GeneratePlan(ctx context.Context, token string) (*fitness.WorkoutPlan, error) {
	var plan fitness.WorkoutPlan
	err := c.do(ctx, call{
		op:       "generate workout plan",
		method:   http.MethodPost,
		route:    RoutePlan,
		path:     planPath(token),
		fallback: msgPlanGenFailed,
		schema:   PlanSchema,
	}, &plan)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func planPath(id string) string {
	return "/profiles/" + url.PathEscape(id) + "/workout-plan"
}

type call struct {
	op       string
	method   string
	route    string
	path     string
	query    url.Values
	body     any
	fallback string
	schema   *Schema
	// notFound names the resource when a 404 is an expected outcome.
	notFound string
}

func (c *Client) do(ctx context.Context, cl call, out any) error {
	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		raw, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", cl.op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(WithRoute(ctx, cl.route), cl.method, target, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", cl.op, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := logrus.WithFields(logrus.Fields{
		"request_id": reqID,
		"method":     cl.method,
		"route":      cl.route,
	})

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &NetworkError{Op: cl.op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: cl.op, Err: fmt.Errorf("read body: %w", err)}
	}
	log = log.WithFields(logrus.Fields{
		"status":     resp.StatusCode,
		"latency_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode == http.StatusNotFound && cl.notFound != "" {
		log.Debug("resource not found")
		return &NotFoundError{Resource: cl.notFound}
	}
	if resp.StatusCode >= 400 {
		msg := errorMessage(raw, cl.fallback)
		log.WithField("error", msg).Warn("request rejected")
		return &ServerError{Op: cl.op, Status: resp.StatusCode, Msg: msg}
	}

	if err := validateResponse(cl.schema, raw); err != nil {
		log.WithError(err).Warn("malformed response")
		return &ServerError{Op: cl.op, Status: resp.StatusCode, Msg: cl.fallback, Err: err}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ServerError{Op: cl.op, Status: resp.StatusCode, Msg: cl.fallback, Err: err}
	}
	log.Debug("request completed")
	return nil
}

// errorMessage extracts {"error": "..."} from a response body.
func errorMessage(raw []byte, fallback string) string {
	if len(raw) > maxErrorBodyBytes {
		raw = raw[:maxErrorBodyBytes]
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return fallback
	}
	switch {
	case strings.TrimSpace(body.Error) != "":
		return body.Error
	case strings.TrimSpace(body.Message) != "":
		return body.Message
	}
	return fallback
}

// IsNotFound reports whether err is a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
