package quiz

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

type GenerateRequest struct {
	Notes         string
	QuestionCount int
	Title         string
	Description   string
	Save          bool
}

// ParseRequest carries model output the caller obtained on its own.
type ParseRequest struct {
	Text        string
	Title       string
	Description string
	Save        bool
}

type Service struct {
	quizzes   QuizRepository
	results   ResultRepository
	generator Generator
	now       clock

	mu        sync.RWMutex
	quizCache map[string]Quiz
}

func NewService(quizzes QuizRepository, results ResultRepository, generator Generator) *Service {
	return &Service{
		quizzes:   quizzes,
		results:   results,
		generator: generator,
		now:       time.Now,
		quizCache: make(map[string]Quiz),
	}
}

// GenerateQuiz asks the generator for questions about notes and assembles
// whatever usable blocks come back. With req.Save the quiz is stored for owner.
func (s *Service) GenerateQuiz(ctx context.Context, owner string, req GenerateRequest) (Quiz, error) {
	owner, err := NormalizeUsername(owner)
	if err != nil {
		return Quiz{}, err
	}
	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		return Quiz{}, invalidInput("study notes are required")
	}
	if s.generator == nil {
		return Quiz{}, ErrGeneratorUnavailable
	}

	text, err := s.generator.Generate(ctx, BuildPrompt(notes, req.QuestionCount))
	if err != nil {
		return Quiz{}, fmt.Errorf("%w: %w", ErrGeneratorFailed, err)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = DefaultTitle(notes)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = DefaultDescription(notes)
	}

	return s.finishParsed(ctx, owner, text, title, description, req.Save)
}

func (s *Service) ParseQuiz(ctx context.Context, owner string, req ParseRequest) (Quiz, error) {
	owner, err := NormalizeUsername(owner)
	if err != nil {
		return Quiz{}, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return Quiz{}, invalidInput("quiz title is required")
	}
	return s.finishParsed(ctx, owner, req.Text, req.Title, req.Description, req.Save)
}

func (s *Service) finishParsed(ctx context.Context, owner, text, title, description string, save bool) (Quiz, error) {
	built, err := BuildQuiz(text, title, description)
	if err != nil {
		return Quiz{}, err
	}
	built.Owner = owner
	built.CreatedAt = s.now().UTC()

	if !save {
		return built, nil
	}
	if err := s.store(ctx, built); err != nil {
		return Quiz{}, err
	}
	return built, nil
}

// CreateQuiz stores a hand-authored quiz.
func (s *Service) CreateQuiz(ctx context.Context, owner string, draft NewQuiz) (Quiz, error) {
	owner, err := NormalizeUsername(owner)
	if err != nil {
		return Quiz{}, err
	}

	built, err := draft.Build(owner, s.now())
	if err != nil {
		return Quiz{}, err
	}
	if err := s.store(ctx, built); err != nil {
		return Quiz{}, err
	}
	return built, nil
}

// SaveQuiz stores a previously previewed quiz, possibly edited by the
// caller. Previews come from generated or pasted model text, so the quiz is
// stored as SourceAI and stamped now; the quiz and its questions get fresh
// identifiers and the quiz is revalidated.
func (s *Service) SaveQuiz(ctx context.Context, owner string, q Quiz) (Quiz, error) {
	owner, err := NormalizeUsername(owner)
	if err != nil {
		return Quiz{}, err
	}

	q.Owner = owner
	q.Title = strings.TrimSpace(q.Title)
	q.Description = strings.TrimSpace(q.Description)
	q.ID = NewID()
	q.Source = SourceAI
	q.CreatedAt = s.now().UTC()
	questions := make([]Question, len(q.Questions))
	for idx, question := range q.Questions {
		question.ID = NewID()
		questions[idx] = question
	}
	q.Questions = questions

	if err := q.Validate(); err != nil {
		return Quiz{}, err
	}
	if err := s.store(ctx, q); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (s *Service) store(ctx context.Context, q Quiz) error {
	if err := s.quizzes.CreateQuiz(ctx, q); err != nil {
		return err
	}
	s.setCachedQuiz(q)
	return nil
}

func (s *Service) GetQuiz(ctx context.Context, owner, quizID string) (Quiz, error) {
	owner, err := NormalizeUsername(owner)
	if err != nil {
		return Quiz{}, err
	}
	quizID = strings.TrimSpace(quizID)
	if quizID == "" {
		return Quiz{}, ErrQuizNotFound
	}

	if cached, ok := s.getCachedQuiz(owner, quizID); ok {
		return cached, nil
	}

	loaded, err := s.quizzes.GetQuiz(ctx, owner, quizID)
	if err != nil {
		return Quiz{}, err
	}
	s.setCachedQuiz(loaded)
	return loaded, nil
}

func (s *Service) ListQuizzes(ctx context.Context, owner string, limit int) ([]QuizMetadata, error) {
	owner, err := NormalizeUsername(owner)
	if err != nil {
		return nil, err
	}
	return s.quizzes.ListQuizzes(ctx, owner, limit)
}

func (s *Service) DeleteQuiz(ctx context.Context, owner, quizID string) error {
	owner, err := NormalizeUsername(owner)
	if err != nil {
		return err
	}

	s.dropCachedQuiz(owner, quizID)
	return s.quizzes.DeleteQuiz(ctx, owner, quizID)
}

// StartSession opens a new attempt at one of owner's quizzes.
func (s *Service) StartSession(ctx context.Context, owner, quizID string) (*Session, error) {
	loaded, err := s.GetQuiz(ctx, owner, quizID)
	if err != nil {
		return nil, err
	}

	session, err := NewSession(loaded, loaded.Owner)
	if err != nil {
		return nil, err
	}
	session.now = s.now
	return session, nil
}

// SubmitSession submits session and hands the result to the result sink.
// If storing fails the session stays submitted and the scored result is
// returned together with the error.
func (s *Service) SubmitSession(ctx context.Context, session *Session) (Result, error) {
	if session == nil {
		return Result{}, ErrSessionNotFound
	}

	result, err := session.Submit()
	if err != nil {
		return Result{}, err
	}
	if s.results == nil {
		return result, nil
	}
	if err := s.results.Accept(ctx, result); err != nil {
		return result, fmt.Errorf("store result: %w", err)
	}
	return result, nil
}

func (s *Service) ListResults(ctx context.Context, owner string, limit int) ([]Result, error) {
	owner, err := NormalizeUsername(owner)
	if err != nil {
		return nil, err
	}
	return s.results.ListResults(ctx, owner, limit)
}

func (s *Service) DeleteResult(ctx context.Context, owner, resultID string) error {
	owner, err := NormalizeUsername(owner)
	if err != nil {
		return err
	}
	return s.results.DeleteResult(ctx, owner, resultID)
}

func (s *Service) GetStats(ctx context.Context, owner string) (Stats, error) {
	owner, err := NormalizeUsername(owner)
	if err != nil {
		return Stats{}, err
	}
	return s.results.GetStats(ctx, owner)
}

// NormalizeUsername trims and lower-cases username; owners are stored in this form.
func NormalizeUsername(username string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(username))
	if normalized == "" {
		return "", ErrInvalidUsername
	}
	return normalized, nil
}
