// Package adjudication persists sample draws and the manual
// correctness judgments made against them, so an adjudication session
// can be interrupted and resumed.
package adjudication

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mazen160/go-random"
	"steamlens/lib/sampling"
)

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

type Session struct {
	Id         string
	AppId      string
	Source     string
	Seed       int64
	Fraction   float64
	Population int
	CreatedAt  time.Time
}

type CreateSessionRequest struct {
	AppId      string
	Source     string
	Seed       int64
	Fraction   float64
	Population int
}

// CreateSession draws the sample for a labeled population and persists
// it together with the parameters that produced it, so the draw can be
// reproduced and audited later.
func (s Store) CreateSession(ctx context.Context, req CreateSessionRequest) (Session, error) {
	indices, err := sampling.Draw(req.Population, req.Fraction, req.Seed)
	if err != nil {
		return Session{}, err
	}

	id, err := random.String(12)
	if err != nil {
		return Session{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, err
	}
	defer tx.Rollback()

	createdAt := time.Now()
	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO sessions (id, app_id, source, seed, fraction, population, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, req.AppId, req.Source, req.Seed, req.Fraction, req.Population, createdAt.Unix(),
	)
	if err != nil {
		return Session{}, err
	}

	for _, idx := range indices {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO draws (session_id, review_idx) VALUES (?, ?)`,
			id, idx,
		)
		if err != nil {
			return Session{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Session{}, err
	}

	return Session{
		Id:         id,
		AppId:      req.AppId,
		Source:     req.Source,
		Seed:       req.Seed,
		Fraction:   req.Fraction,
		Population: req.Population,
		CreatedAt:  createdAt,
	}, nil
}

func (s Store) GetSession(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, app_id, source, seed, fraction, population, created_at
		 FROM sessions WHERE id = ?`,
		id,
	)

	var session Session
	var createdAt int64
	err := row.Scan(
		&session.Id, &session.AppId, &session.Source,
		&session.Seed, &session.Fraction, &session.Population, &createdAt,
	)
	if err == sql.ErrNoRows {
		return Session{}, fmt.Errorf("no adjudication session %q", id)
	}
	if err != nil {
		return Session{}, err
	}
	session.CreatedAt = time.Unix(createdAt, 0)
	return session, nil
}

func (s Store) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, app_id, source, seed, fraction, population, created_at
		 FROM sessions ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var session Session
		var createdAt int64
		err := rows.Scan(
			&session.Id, &session.AppId, &session.Source,
			&session.Seed, &session.Fraction, &session.Population, &createdAt,
		)
		if err != nil {
			return nil, err
		}
		session.CreatedAt = time.Unix(createdAt, 0)
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// Draws returns the sampled review indices of a session, in order.
func (s Store) Draws(ctx context.Context, sessionId string) ([]int, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT review_idx FROM draws WHERE session_id = ? ORDER BY review_idx`,
		sessionId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indices []int
	for rows.Next() {
		var idx int
		if err := rows.Scan(&idx); err != nil {
			return nil, err
		}
		indices = append(indices, idx)
	}
	return indices, rows.Err()
}

// Pending returns the sampled indices that have not been judged yet.
func (s Store) Pending(ctx context.Context, sessionId string) ([]int, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT d.review_idx FROM draws d
		 LEFT JOIN judgments j
		 ON j.session_id = d.session_id AND j.review_idx = d.review_idx
		 WHERE d.session_id = ? AND j.review_idx IS NULL
		 ORDER BY d.review_idx`,
		sessionId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indices []int
	for rows.Next() {
		var idx int
		if err := rows.Scan(&idx); err != nil {
			return nil, err
		}
		indices = append(indices, idx)
	}
	return indices, rows.Err()
}

// RecordJudgment stores a correctness verdict for a sampled review.
// Re-judging the same review replaces the earlier verdict.
func (s Store) RecordJudgment(ctx context.Context, sessionId string, reviewIdx int, correct bool) error {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO judgments (session_id, review_idx, correct, judged_at)
		 SELECT session_id, review_idx, ?, ? FROM draws
		 WHERE session_id = ? AND review_idx = ?
		 ON CONFLICT (session_id, review_idx)
		 DO UPDATE SET correct = excluded.correct, judged_at = excluded.judged_at`,
		correct, time.Now().Unix(), sessionId, reviewIdx,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("review %d was not drawn in session %q", reviewIdx, sessionId)
	}
	return nil
}

// Summary aggregates a session's judgments for the accuracy estimate.
func (s Store) Summary(ctx context.Context, sessionId string) (sampling.Report, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT
			(SELECT COUNT(*) FROM judgments WHERE session_id = ?),
			(SELECT COUNT(*) FROM judgments WHERE session_id = ? AND correct != 0)`,
		sessionId, sessionId,
	)

	var judged, correct int
	if err := row.Scan(&judged, &correct); err != nil {
		return sampling.Report{}, err
	}
	return sampling.Estimate(correct, judged)
}
