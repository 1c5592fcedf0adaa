package sqlstore

import (
	"context"
)

func (s *Store) initSchema(ctx context.Context) error {
	// Column types are chosen to be valid in both SQLite and PostgreSQL.
	// Results keep their own quiz title snapshot and outlive quiz deletion.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS quizzes (
			quiz_id TEXT PRIMARY KEY,
			owner TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			source TEXT NOT NULL,
			question_count INTEGER NOT NULL,
			created_at_unix BIGINT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS questions (
			question_id TEXT PRIMARY KEY,
			quiz_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			prompt TEXT NOT NULL,
			options_json TEXT NOT NULL,
			correct_index INTEGER NOT NULL,
			UNIQUE (quiz_id, position)
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			result_id TEXT PRIMARY KEY,
			owner TEXT NOT NULL,
			quiz_id TEXT NOT NULL,
			quiz_title TEXT NOT NULL,
			score INTEGER NOT NULL,
			total_questions INTEGER NOT NULL,
			percentage DOUBLE PRECISION NOT NULL,
			answers_json TEXT NOT NULL,
			completed_at_unix BIGINT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quizzes_owner_created_at ON quizzes(owner, created_at_unix DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_results_owner_completed_at ON results(owner, completed_at_unix DESC);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
