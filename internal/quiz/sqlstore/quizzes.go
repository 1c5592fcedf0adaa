package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"study-quiz/internal/quiz"
)

// CreateQuiz writes the quiz row and its questions in one transaction.
func (s *Store) CreateQuiz(ctx context.Context, q quiz.Quiz) error {
	if q.ID == "" {
		return errors.New("quiz id is required")
	}
	if q.Owner == "" {
		return quiz.ErrInvalidUsername
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(
		ctx,
		s.rebind(`INSERT INTO quizzes (quiz_id, owner, title, description, source, question_count, created_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		q.ID,
		q.Owner,
		q.Title,
		q.Description,
		q.Source,
		len(q.Questions),
		q.CreatedAt.UnixNano(),
	)
	if err != nil {
		return err
	}

	for idx, question := range q.Questions {
		optionsJSON, err := json.Marshal(question.Options)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(
			ctx,
			s.rebind(`INSERT INTO questions (question_id, quiz_id, position, prompt, options_json, correct_index)
			 VALUES (?, ?, ?, ?, ?, ?)`),
			question.ID,
			q.ID,
			idx,
			question.Question,
			string(optionsJSON),
			question.CorrectAnswer,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) GetQuiz(ctx context.Context, owner, quizID string) (quiz.Quiz, error) {
	var (
		loaded        quiz.Quiz
		createdAtUnix int64
	)
	err := s.db.QueryRowContext(
		ctx,
		s.rebind(`SELECT quiz_id, owner, title, description, source, created_at_unix
		 FROM quizzes WHERE quiz_id = ? AND owner = ?`),
		quizID,
		owner,
	).Scan(&loaded.ID, &loaded.Owner, &loaded.Title, &loaded.Description, &loaded.Source, &createdAtUnix)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.Quiz{}, quiz.ErrQuizNotFound
		}
		return quiz.Quiz{}, err
	}
	loaded.CreatedAt = time.Unix(0, createdAtUnix).UTC()

	rows, err := s.db.QueryContext(
		ctx,
		s.rebind(`SELECT question_id, prompt, options_json, correct_index
		 FROM questions
		 WHERE quiz_id = ?
		 ORDER BY position ASC`),
		quizID,
	)
	if err != nil {
		return quiz.Quiz{}, err
	}
	defer rows.Close()

	loaded.Questions = make([]quiz.Question, 0)
	for rows.Next() {
		var (
			question    quiz.Question
			optionsJSON string
		)
		if err := rows.Scan(&question.ID, &question.Question, &optionsJSON, &question.CorrectAnswer); err != nil {
			return quiz.Quiz{}, err
		}
		if err := json.Unmarshal([]byte(optionsJSON), &question.Options); err != nil {
			return quiz.Quiz{}, err
		}
		loaded.Questions = append(loaded.Questions, question)
	}

	return loaded, rows.Err()
}

func (s *Store) ListQuizzes(ctx context.Context, owner string, limit int) ([]quiz.QuizMetadata, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(
		ctx,
		s.rebind(`SELECT quiz_id, title, description, source, question_count, created_at_unix
		 FROM quizzes
		 WHERE owner = ?
		 ORDER BY created_at_unix DESC, quiz_id ASC
		 LIMIT ?`),
		owner,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]quiz.QuizMetadata, 0)
	for rows.Next() {
		var (
			item          quiz.QuizMetadata
			createdAtUnix int64
		)
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Source, &item.QuestionCount, &createdAtUnix); err != nil {
			return nil, err
		}
		item.CreatedAt = time.Unix(0, createdAtUnix).UTC()
		items = append(items, item)
	}

	return items, rows.Err()
}

// DeleteQuiz removes the quiz and its questions. Stored results for the
// quiz are history and stay.
func (s *Store) DeleteQuiz(ctx context.Context, owner, quizID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM quizzes WHERE quiz_id = ? AND owner = ?`), quizID, owner)
	if err != nil {
		return err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return quiz.ErrQuizNotFound
	}

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM questions WHERE quiz_id = ?`), quizID); err != nil {
		return err
	}

	return tx.Commit()
}
