// Package fakebackend is an in-memory stand-in for the fitness planning
// backend, used by the devserver command and integration tests.
package fakebackend

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/abhisek/fitplan/internal/fitness"
)

const timestampLayout = naiveISO

type account struct {
	profile fitness.ProfileRecord
	plan    *fitness.WorkoutPlan
}

// Server holds profiles and plans in memory. It is safe for concurrent use.
type Server struct {
	mu       sync.Mutex
	faker    *gofakeit.Faker
	accounts map[string]*account
	byID     map[int64]string
	nextID   int64
	nextPlan int64

	// Now is the clock used for timestamps and plan dates.
	Now func() time.Time
}

// New creates an empty backend. The same seed produces the same plans.
func New(seed int64) *Server {
	return &Server{
		faker:    gofakeit.New(seed),
		accounts: make(map[string]*account),
		byID:     make(map[int64]string),
		Now:      time.Now,
	}
}

// Router returns the HTTP handler with every route mounted under /api.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(loggerMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/fitness-options", s.listOptions).Methods(http.MethodGet)
	api.HandleFunc("/options", s.fetchOptions).Methods(http.MethodPost)
	api.HandleFunc("/profile", s.createProfile).Methods(http.MethodPost)
	api.HandleFunc("/profiles/{id}/workout-plan", s.getPlan).Methods(http.MethodGet)
	api.HandleFunc("/profiles/{id}/workout-plan", s.generatePlan).Methods(http.MethodPost)
	return r
}

// Seed registers a profile directly and returns its session token.
func (s *Server) Seed(p fitness.Profile) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(p).Token
}

func (s *Server) listOptions(w http.ResponseWriter, r *http.Request) {
	age := 0
	if raw := r.URL.Query().Get("age"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid age")
			return
		}
		age = n
	}
	var sel fitness.SelectionSet
	if raw := r.URL.Query().Get("selections"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &sel); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid selections")
			return
		}
	}
	writeJSON(w, http.StatusOK, tailor(age, sel))
}

func (s *Server) fetchOptions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Age        int                  `json:"age"`
		Selections fitness.SelectionSet `json:"selections"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Age <= 0 {
		writeError(w, http.StatusBadRequest, "Age is required")
		return
	}
	writeJSON(w, http.StatusOK, tailor(body.Age, body.Selections))
}

func (s *Server) createProfile(w http.ResponseWriter, r *http.Request) {
	var p fitness.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	switch {
	case strings.TrimSpace(p.Name) == "":
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	case p.Age < 1 || p.Age > 120:
		writeError(w, http.StatusBadRequest, "Age must be between 1 and 120")
		return
	case strings.TrimSpace(p.FitnessGoal) == "":
		writeError(w, http.StatusBadRequest, "Fitness goal is required")
		return
	}

	s.mu.Lock()
	sess := s.addLocked(p)
	s.mu.Unlock()

	log.WithField("profile_id", sess.Profile.ID).Info("profile created")
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) addLocked(p fitness.Profile) fitness.Session {
	s.nextID++
	now := s.Now().UTC().Format(timestampLayout)
	rec := fitness.ProfileRecord{
		ID:              s.nextID,
		Name:            strings.TrimSpace(p.Name),
		Age:             p.Age,
		FitnessGoal:     p.FitnessGoal,
		Equipment:       nonNil(p.Equipment),
		WorkoutTypes:    nonNil(p.WorkoutTypes),
		ExperienceLevel: p.ExperienceLevel,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	token := uuid.NewString()
	s.accounts[token] = &account{profile: rec}
	s.byID[rec.ID] = token
	return fitness.Session{Token: token, Profile: rec}
}

// lookupLocked resolves a session token or a numeric profile id.
func (s *Server) lookupLocked(id string) *account {
	if a, ok := s.accounts[id]; ok {
		return a
	}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		if token, ok := s.byID[n]; ok {
			return s.accounts[token]
		}
	}
	return nil
}

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	a := s.lookupLocked(mux.Vars(r)["id"])
	var plan *fitness.WorkoutPlan
	if a != nil {
		plan = a.plan
	}
	s.mu.Unlock()

	if plan == nil {
		writeError(w, http.StatusNotFound, "No workout plan found")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) generatePlan(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	a := s.lookupLocked(mux.Vars(r)["id"])
	if a == nil {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	plan := generatePlan(s.faker, a.profile, s.Now().UTC())
	s.nextPlan++
	plan.ID = s.nextPlan
	a.plan = &plan
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"profile_id": plan.UserProfileID,
		"plan_id":    plan.ID,
	}).Info("workout plan generated")
	writeJSON(w, http.StatusCreated, plan)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Warn("write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusWriter captures the status code for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     sw.status,
			"request_id": r.Header.Get("X-Request-ID"),
			"duration":   time.Since(start),
		}).Info("request served")
	})
}
