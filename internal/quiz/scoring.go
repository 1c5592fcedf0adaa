package quiz

import (
	"context"
	"time"
)

const (
	VerdictExcellent    = "excellent"
	VerdictGood         = "good"
	VerdictKeepStudying = "keep_studying"
)

type UserAnswer struct {
	QuestionID     string `json:"question_id"`
	Question       string `json:"question"`
	SelectedAnswer int    `json:"selected_answer"`
	CorrectAnswer  int    `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// Result is the scored outcome of one submitted session. ID, Owner and
// CompletedAt are bookkeeping and take no part in scoring equality.
type Result struct {
	ID             string       `json:"id"`
	Owner          string       `json:"owner,omitempty"`
	QuizID         string       `json:"quiz_id"`
	QuizTitle      string       `json:"quiz_title"`
	Score          int          `json:"score"`
	TotalQuestions int          `json:"total_questions"`
	Percentage     float64      `json:"percentage"`
	Answers        []UserAnswer `json:"answers"`
	CompletedAt    time.Time    `json:"completed_at"`
}

// Verdict buckets the percentage the way result screens phrase feedback.
func (r Result) Verdict() string {
	switch {
	case r.Percentage >= 80:
		return VerdictExcellent
	case r.Percentage >= 60:
		return VerdictGood
	default:
		return VerdictKeepStudying
	}
}

// ResultSink stores finalized results.
type ResultSink interface {
	Accept(ctx context.Context, result Result) error
}

type SinkFunc func(ctx context.Context, result Result) error

func (f SinkFunc) Accept(ctx context.Context, result Result) error {
	return f(ctx, result)
}

// Score grades selected against q.
//
// Preconditions: q has at least one question and len(selected) equals the
// number of questions, and each selection is an option index or Unanswered.
// Violations return ErrInvalidInput instead of a
// result, so the percentage division never sees a zero total.
func Score(q Quiz, selected []int) (Result, error) {
	total := len(q.Questions)
	if total == 0 {
		return Result{}, invalidInput("quiz has no questions")
	}
	if len(selected) != total {
		return Result{}, invalidInput("got %d answers for %d questions", len(selected), total)
	}

	for idx, choice := range selected {
		if choice < Unanswered || choice >= OptionCount {
			return Result{}, invalidInput("answer %d for question %d out of range", choice, idx+1)
		}
	}

	answers := make([]UserAnswer, total)
	score := 0
	for idx, question := range q.Questions {
		isCorrect := selected[idx] == question.CorrectAnswer
		if isCorrect {
			score++
		}
		answers[idx] = UserAnswer{
			QuestionID:     question.ID,
			Question:       question.Question,
			SelectedAnswer: selected[idx],
			CorrectAnswer:  question.CorrectAnswer,
			IsCorrect:      isCorrect,
		}
	}

	return Result{
		QuizID:         q.ID,
		QuizTitle:      q.Title,
		Score:          score,
		TotalQuestions: total,
		Percentage:     100 * float64(score) / float64(total),
		Answers:        answers,
	}, nil
}
