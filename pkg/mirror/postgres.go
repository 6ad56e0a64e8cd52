package mirror

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver
)

const createTableQuery = `
	CREATE TABLE IF NOT EXISTS faq_feedback (
		id          UUID PRIMARY KEY,
		question    TEXT NOT NULL,
		answer      TEXT NOT NULL,
		verdict     TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL
	)
`

// PostgresMirror stores submissions in the faq_feedback table
type PostgresMirror struct {
	db *sql.DB
}

// NewPostgresMirror connects to the database and makes sure the table exists
func NewPostgresMirror(ctx context.Context, databaseURL string) (*PostgresMirror, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, createTableQuery); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create faq_feedback table: %w", err)
	}

	return &PostgresMirror{db: db}, nil
}

// Name returns the mirror name
func (m *PostgresMirror) Name() string {
	return "postgres"
}

// Close closes the database connection
func (m *PostgresMirror) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// Submit inserts the verdict and counts the distinct disliked answers.
// Keyword blocking is not tracked in the table, so BlockedKeywords is always zero.
func (m *PostgresMirror) Submit(ctx context.Context, sub Submission) (*Counters, error) {
	_, err := m.db.ExecContext(ctx,
		`INSERT INTO faq_feedback (id, question, answer, verdict, created_at) VALUES ($1, $2, $3, $4, $5)`,
		uuid.NewString(), sub.Question, sub.Answer, string(sub.Verdict), time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to insert feedback: %w", err)
	}

	var counters Counters
	err = m.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT answer) FROM faq_feedback WHERE verdict = 'dislike'`,
	).Scan(&counters.BlockedAnswers)
	if err != nil {
		return nil, fmt.Errorf("failed to count blocked answers: %w", err)
	}

	return &counters, nil
}
