package store

import (
	"context"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/fitplan/internal/fitness"
)

// SessionStore persists the session token, the canonical profile, the last
// workout plan and the last good option catalog. It is passed explicitly to
// whatever needs it.
type SessionStore struct {
	drv *entsql.Driver
	kv  *kvRepo
}

// SaveSession stores a freshly created session and drops any plan cached
// for a previous profile.
func (s *SessionStore) SaveSession(ctx context.Context, sess fitness.Session) error {
	profile, err := json.Marshal(sess.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	kv := &kvRepo{conn: tx}
	if err := kv.Set(ctx, KeySessionToken, sess.Token); err != nil {
		tx.Rollback()
		return err
	}
	if err := kv.Set(ctx, KeyProfile, string(profile)); err != nil {
		tx.Rollback()
		return err
	}
	if err := kv.Delete(ctx, KeyWorkoutPlan); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// LoadSession returns the stored session, or nil when either the token or
// the profile is missing.
func (s *SessionStore) LoadSession(ctx context.Context) (*fitness.Session, error) {
	token, ok, err := s.kv.Get(ctx, KeySessionToken)
	if err != nil || !ok || token == "" {
		return nil, err
	}
	var sess fitness.Session
	found, err := s.loadJSON(ctx, KeyProfile, &sess.Profile)
	if err != nil || !found {
		return nil, err
	}
	sess.Token = token
	return &sess, nil
}

// SavePlan caches the plan for the current session.
func (s *SessionStore) SavePlan(ctx context.Context, plan *fitness.WorkoutPlan) error {
	return s.saveJSON(ctx, KeyWorkoutPlan, plan)
}

// LoadPlan returns the cached plan, or nil if there is none.
func (s *SessionStore) LoadPlan(ctx context.Context) (*fitness.WorkoutPlan, error) {
	var plan fitness.WorkoutPlan
	found, err := s.loadJSON(ctx, KeyWorkoutPlan, &plan)
	if err != nil || !found {
		return nil, err
	}
	return &plan, nil
}

// SaveCatalog records the last catalog fetched successfully.
func (s *SessionStore) SaveCatalog(ctx context.Context, c *fitness.Catalog) error {
	return s.saveJSON(ctx, KeyOptionCatalog, c)
}

// LoadCatalog returns the last good catalog, or nil.
func (s *SessionStore) LoadCatalog(ctx context.Context) (*fitness.Catalog, error) {
	var c fitness.Catalog
	found, err := s.loadJSON(ctx, KeyOptionCatalog, &c)
	if err != nil || !found {
		return nil, err
	}
	return &c, nil
}

// Clear forgets the session and everything derived from it. The cached
// catalog is kept since it does not depend on the profile.
func (s *SessionStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, KeySessionToken, KeyProfile, KeyWorkoutPlan)
}

func (s *SessionStore) saveJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, string(raw))
}

// loadJSON decodes the value under key into v. A value that no longer
// decodes is treated as absent.
func (s *SessionStore) loadJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, nil
	}
	return true, nil
}
