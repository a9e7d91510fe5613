package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"entgo.io/ent"

	"github.com/abhisek/fitplan/ent/schema"
	"github.com/abhisek/fitplan/internal/fitness"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"client_state", "api_request_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

// schemaColumns lists the storage columns an ent schema declares, mixins
// included.
func schemaColumns(mixins []ent.Mixin, fields []ent.Field) map[string]bool {
	cols := make(map[string]bool)
	for _, m := range mixins {
		fields = append(fields, m.Fields()...)
	}
	for _, f := range fields {
		d := f.Descriptor()
		name := d.Name
		if d.StorageKey != "" {
			name = d.StorageKey
		}
		cols[name] = true
	}
	return cols
}

func tableColumns(t *testing.T, s *Store, table string) map[string]bool {
	t.Helper()
	rows, err := s.DB().Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		t.Fatalf("table_info %s: %v", table, err)
	}
	defer rows.Close()
	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatal(err)
		}
		if name != "id" {
			cols[name] = true
		}
	}
	return cols
}

func TestTablesMatchEntSchema(t *testing.T) {
	s := openTestStore(t)
	tests := []struct {
		table string
		want  map[string]bool
	}{
		{"client_state", schemaColumns(nil, schema.ClientState{}.Fields())},
		{"api_request_events", schemaColumns(schema.APIRequestEvent{}.Mixin(), schema.APIRequestEvent{}.Fields())},
	}
	for _, tt := range tests {
		got := tableColumns(t, s, tt.table)
		if len(got) != len(tt.want) {
			t.Errorf("%s: columns %v, schema %v", tt.table, got, tt.want)
			continue
		}
		for col := range tt.want {
			if !got[col] {
				t.Errorf("%s: missing column %q", tt.table, col)
			}
		}
	}
}

func TestKVSetOverwrites(t *testing.T) {
	s := openTestStore(t)
	kv := &kvRepo{conn: s.drv}
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("get missing: ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, "k", "one"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "k", "two"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := kv.Get(ctx, "k")
	if err != nil || !ok || v != "two" {
		t.Fatalf("get = %q, %v, %v; want two", v, ok, err)
	}
	if err := kv.Delete(ctx, "k", "absent"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "k"); ok {
		t.Fatal("expected key to be gone")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	sessions := s.Sessions()
	ctx := context.Background()

	got, err := sessions.LoadSession(ctx)
	if err != nil || got != nil {
		t.Fatalf("empty store: session=%v err=%v", got, err)
	}

	want := fitness.Session{
		Token: "tok-123",
		Profile: fitness.ProfileRecord{
			ID: 7, Name: "Ana", Age: 30, FitnessGoal: "Lose Weight",
			Equipment: []string{"Bench"}, WorkoutTypes: []string{"HIIT"}, ExperienceLevel: "Beginner",
		},
	}
	if err := sessions.SaveSession(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = sessions.LoadSession(ctx)
	if err != nil || got == nil {
		t.Fatalf("load: %v %v", got, err)
	}
	if got.Token != want.Token || got.Profile.Name != "Ana" || got.Profile.ID != 7 {
		t.Errorf("loaded %+v, want %+v", got, want)
	}
}

func TestSessionWithoutProfileIsAbsent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := (&kvRepo{conn: s.drv}).Set(ctx, KeySessionToken, "tok"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Sessions().LoadSession(ctx)
	if err != nil || got != nil {
		t.Fatalf("token alone should not form a session: %v %v", got, err)
	}
}

func TestSaveSessionDropsStalePlan(t *testing.T) {
	s := openTestStore(t)
	sessions := s.Sessions()
	ctx := context.Background()

	plan := &fitness.WorkoutPlan{StartDate: "2025-01-01", PlanData: fitness.PlanData{
		Weeks: []fitness.Week{{WeekNumber: 1}},
	}}
	if err := sessions.SavePlan(ctx, plan); err != nil {
		t.Fatalf("save plan: %v", err)
	}
	if p, err := sessions.LoadPlan(ctx); err != nil || p == nil || len(p.PlanData.Weeks) != 1 {
		t.Fatalf("load plan: %v %v", p, err)
	}

	if err := sessions.SaveSession(ctx, fitness.Session{Token: "new"}); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if p, err := sessions.LoadPlan(ctx); err != nil || p != nil {
		t.Fatalf("plan should be cleared for the new session, got %v %v", p, err)
	}
}

func TestClearKeepsCatalog(t *testing.T) {
	s := openTestStore(t)
	sessions := s.Sessions()
	ctx := context.Background()

	cat := &fitness.Catalog{Goals: []fitness.Option{{ID: "g", Name: "G", Category: fitness.CategoryGoal}}}
	if err := sessions.SaveCatalog(ctx, cat); err != nil {
		t.Fatal(err)
	}
	if err := sessions.SaveSession(ctx, fitness.Session{Token: "t"}); err != nil {
		t.Fatal(err)
	}
	if err := sessions.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if sess, _ := sessions.LoadSession(ctx); sess != nil {
		t.Error("session should be cleared")
	}
	got, err := sessions.LoadCatalog(ctx)
	if err != nil || got == nil {
		t.Fatalf("catalog: %v %v", got, err)
	}
	if _, ok := got.Lookup(fitness.CategoryGoal, "g"); !ok {
		t.Error("catalog lost its goal")
	}
}

func TestCorruptValueIsAbsent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := (&kvRepo{conn: s.drv}).Set(ctx, KeyWorkoutPlan, "{not json"); err != nil {
		t.Fatal(err)
	}
	p, err := s.Sessions().LoadPlan(ctx)
	if err != nil || p != nil {
		t.Fatalf("corrupt plan: %v %v", p, err)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		if expected := int64(i + 1); seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestRequestStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []RequestEventData{
		{RequestID: "1", Method: "GET", Route: "/fitness-options", Status: 200, LatencyMs: 10, Success: true},
		{RequestID: "2", Method: "GET", Route: "/fitness-options", Status: 500, LatencyMs: 30, ErrorMessage: "boom"},
		{RequestID: "3", Method: "POST", Route: "/profile", Status: 201, LatencyMs: 20, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	stats, err := repo.RequestStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats = %+v, want 2 routes", stats)
	}
	opts := stats[0]
	if opts.Route != "/fitness-options" || opts.Total != 2 || opts.Succeeded != 1 || opts.AvgLatencyMs != 20 {
		t.Errorf("options stats = %+v", opts)
	}

	recent, err := repo.RecentRequests(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].RequestID != "3" || recent[1].ErrorMessage != "boom" {
		t.Errorf("recent = %+v", recent)
	}
	if recent[0].Timestamp.IsZero() {
		t.Error("timestamp not parsed")
	}
}
