// Package submission turns a completed setup form into a backend session.
package submission

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/abhisek/fitplan/internal/api"
	"github.com/abhisek/fitplan/internal/fitness"
)

const msgNoSession = "Failed to create profile session."

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=submission_test

// ProfileAPI creates profiles on the backend.
type ProfileAPI interface {
	CreateProfile(ctx context.Context, p fitness.Profile) (*fitness.Session, error)
}

// SessionSaver persists a created session.
type SessionSaver interface {
	SaveSession(ctx context.Context, sess fitness.Session) error
}

// Request is everything the setup form collected.
type Request struct {
	Name      string
	Age       int
	Selection fitness.SelectionSet
	// Catalog resolves selected ids to the names the backend expects.
	Catalog *fitness.Catalog
}

// Submitter validates, sends and persists profiles.
type Submitter struct {
	api      ProfileAPI
	sessions SessionSaver
}

// New creates a Submitter.
func New(profiles ProfileAPI, sessions SessionSaver) *Submitter {
	return &Submitter{api: profiles, sessions: sessions}
}

// Submit validates req locally and, only if it is valid, creates the
// profile and stores the resulting session.
//
// Errors are *fitness.ValidationError (nothing was sent), *api.NetworkError
// or *api.ServerError.
func (s *Submitter) Submit(ctx context.Context, req Request) (*fitness.Session, error) {
	if err := fitness.ValidateSubmission(req.Name, req.Age, req.Selection); err != nil {
		return nil, err
	}

	profile := fitness.BuildProfile(req.Name, req.Age, req.Selection, req.Catalog)
	sess, err := s.api.CreateProfile(ctx, profile)
	if err != nil {
		return nil, err
	}
	if sess == nil || strings.TrimSpace(sess.Token) == "" {
		return nil, &api.ServerError{Op: "create profile", Msg: msgNoSession}
	}

	if err := s.sessions.SaveSession(ctx, *sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	log.WithField("profile_id", sess.Profile.ID).Info("profile created")
	return sess, nil
}
