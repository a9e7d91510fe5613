package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out a global monotonic sequence number so events
// keep their append order even when timestamps collide.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

const requestEventsTable = "api_request_events"

type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendRequest(ctx context.Context, data RequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ok := 0
	if data.Success {
		ok = 1
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(requestEventsTable).
		Columns("sequence", "timestamp", "request_id", "method", "route", "status", "latency_ms", "ok", "error_message").
		Values(seqNum, time.Now().UTC().Format(time.RFC3339Nano), data.RequestID, data.Method, data.Route,
			data.Status, data.LatencyMs, ok, data.ErrorMessage).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save request event: %w", err)
	}
	return nil
}

func (r *eventRepo) RequestStats(ctx context.Context) ([]RouteStats, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			"method",
			"route",
			entsql.As(entsql.Count("*"), "total"),
			entsql.As(entsql.Sum("ok"), "succeeded"),
			entsql.As(entsql.Avg("latency_ms"), "avg_latency"),
		).
		From(entsql.Table(requestEventsTable)).
		GroupBy("method", "route").
		OrderBy("route", "method").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query request stats: %w", err)
	}
	defer rows.Close()

	var out []RouteStats
	for rows.Next() {
		var (
			st  RouteStats
			avg sql.NullFloat64
		)
		if err := rows.Scan(&st.Method, &st.Route, &st.Total, &st.Succeeded, &avg); err != nil {
			return nil, fmt.Errorf("scan request stats: %w", err)
		}
		st.AvgLatencyMs = avg.Float64
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *eventRepo) RecentRequests(ctx context.Context, limit int) ([]RequestEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "timestamp", "request_id", "method", "route", "status", "latency_ms", "ok", "error_message").
		From(entsql.Table(requestEventsTable)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query recent requests: %w", err)
	}
	defer rows.Close()

	var out []RequestEvent
	for rows.Next() {
		var (
			ev RequestEvent
			ts string
			ok int
		)
		if err := rows.Scan(&ev.Sequence, &ts, &ev.RequestID, &ev.Method, &ev.Route,
			&ev.Status, &ev.LatencyMs, &ok, &ev.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan request event: %w", err)
		}
		ev.Success = ok == 1
		ev.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		out = append(out, ev)
	}
	return out, rows.Err()
}
