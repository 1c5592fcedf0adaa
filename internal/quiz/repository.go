package quiz

import "context"

// Stats aggregates one owner's quiz activity.
type Stats struct {
	QuizzesCreated    int     `json:"quizzes_created"`
	Attempts          int     `json:"attempts"`
	AveragePercentage float64 `json:"average_percentage"`
	BestPercentage    float64 `json:"best_percentage"`
	TotalCorrect      int     `json:"total_correct"`
	TotalQuestions    int     `json:"total_questions"`
}

type QuizRepository interface {
	CreateQuiz(ctx context.Context, q Quiz) error
	GetQuiz(ctx context.Context, owner, quizID string) (Quiz, error)
	ListQuizzes(ctx context.Context, owner string, limit int) ([]QuizMetadata, error)
	DeleteQuiz(ctx context.Context, owner, quizID string) error
}

type ResultRepository interface {
	ResultSink
	ListResults(ctx context.Context, owner string, limit int) ([]Result, error)
	DeleteResult(ctx context.Context, owner, resultID string) error
	GetStats(ctx context.Context, owner string) (Stats, error)
}

// Generator turns a prompt into free text in the question block grammar.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
