package sqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"study-quiz/internal/quiz"
)

// Accept persists a finalized result. A result is written once; storing
// the same result ID twice fails on the primary key.
func (s *Store) Accept(ctx context.Context, result quiz.Result) error {
	if result.ID == "" {
		return errors.New("result id is required")
	}
	if result.Owner == "" {
		return quiz.ErrInvalidUsername
	}
	if result.CompletedAt.IsZero() {
		result.CompletedAt = time.Now().UTC()
	}

	answersJSON, err := json.Marshal(result.Answers)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(
		ctx,
		s.rebind(`INSERT INTO results (result_id, owner, quiz_id, quiz_title, score, total_questions, percentage, answers_json, completed_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		result.ID,
		result.Owner,
		result.QuizID,
		result.QuizTitle,
		result.Score,
		result.TotalQuestions,
		result.Percentage,
		string(answersJSON),
		result.CompletedAt.UnixNano(),
	)
	return err
}

// ListResults returns owner's results, most recent first.
func (s *Store) ListResults(ctx context.Context, owner string, limit int) ([]quiz.Result, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(
		ctx,
		s.rebind(`SELECT result_id, owner, quiz_id, quiz_title, score, total_questions, percentage, answers_json, completed_at_unix
		 FROM results
		 WHERE owner = ?
		 ORDER BY completed_at_unix DESC, result_id ASC
		 LIMIT ?`),
		owner,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]quiz.Result, 0)
	for rows.Next() {
		var (
			item            quiz.Result
			answersJSON     string
			completedAtUnix int64
		)
		if err := rows.Scan(
			&item.ID,
			&item.Owner,
			&item.QuizID,
			&item.QuizTitle,
			&item.Score,
			&item.TotalQuestions,
			&item.Percentage,
			&answersJSON,
			&completedAtUnix,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(answersJSON), &item.Answers); err != nil {
			return nil, err
		}
		item.CompletedAt = time.Unix(0, completedAtUnix).UTC()
		results = append(results, item)
	}

	return results, rows.Err()
}

func (s *Store) DeleteResult(ctx context.Context, owner, resultID string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM results WHERE result_id = ? AND owner = ?`), resultID, owner)
	if err != nil {
		return err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return quiz.ErrResultNotFound
	}
	return nil
}

func (s *Store) GetStats(ctx context.Context, owner string) (quiz.Stats, error) {
	var stats quiz.Stats

	if err := s.db.QueryRowContext(
		ctx,
		s.rebind(`SELECT COUNT(*) FROM quizzes WHERE owner = ?`),
		owner,
	).Scan(&stats.QuizzesCreated); err != nil {
		return quiz.Stats{}, err
	}

	if err := s.db.QueryRowContext(
		ctx,
		s.rebind(`SELECT COUNT(*),
			COALESCE(SUM(score), 0),
			COALESCE(SUM(total_questions), 0),
			COALESCE(AVG(percentage), 0),
			COALESCE(MAX(percentage), 0)
		 FROM results
		 WHERE owner = ?`),
		owner,
	).Scan(
		&stats.Attempts,
		&stats.TotalCorrect,
		&stats.TotalQuestions,
		&stats.AveragePercentage,
		&stats.BestPercentage,
	); err != nil {
		return quiz.Stats{}, err
	}

	return stats, nil
}
