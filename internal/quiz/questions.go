package quiz

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	OptionCount = 4
	Unanswered  = -1
)

const (
	SourceAI     = "ai"
	SourceManual = "manual"
)

type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

type Quiz struct {
	ID          string     `json:"id"`
	Owner       string     `json:"owner,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Source      string     `json:"source"`
	CreatedAt   time.Time  `json:"created_at"`
	Questions   []Question `json:"questions"`
}

// QuizMetadata is the list view of a stored quiz.
type QuizMetadata struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Source        string    `json:"source"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type NewQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// NewQuiz is a hand-authored quiz before identifiers are assigned.
type NewQuiz struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Questions   []NewQuestion `json:"questions"`
}

func (q Quiz) Metadata() QuizMetadata {
	return QuizMetadata{
		ID:            q.ID,
		Title:         q.Title,
		Description:   q.Description,
		Source:        q.Source,
		QuestionCount: len(q.Questions),
		CreatedAt:     q.CreatedAt,
	}
}

// Validate checks the invariants every stored quiz must satisfy.
func (q Quiz) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return invalidInput("quiz title is required")
	}
	if len(q.Questions) == 0 {
		return invalidInput("quiz needs at least one question")
	}
	for idx, question := range q.Questions {
		if err := validateQuestion(question.Question, question.Options, question.CorrectAnswer); err != nil {
			return invalidInput("question %d: %v", idx+1, err)
		}
	}
	return nil
}

// Build validates a hand-authored quiz and assigns identifiers.
func (n NewQuiz) Build(owner string, now time.Time) (Quiz, error) {
	built := Quiz{
		ID:          NewID(),
		Owner:       owner,
		Title:       strings.TrimSpace(n.Title),
		Description: strings.TrimSpace(n.Description),
		Source:      SourceManual,
		CreatedAt:   now.UTC(),
		Questions:   make([]Question, 0, len(n.Questions)),
	}
	for _, item := range n.Questions {
		options := make([]string, len(item.Options))
		for idx, option := range item.Options {
			options[idx] = strings.TrimSpace(option)
		}
		built.Questions = append(built.Questions, Question{
			ID:            NewID(),
			Question:      strings.TrimSpace(item.Question),
			Options:       options,
			CorrectAnswer: item.CorrectAnswer,
		})
	}

	if err := built.Validate(); err != nil {
		return Quiz{}, err
	}
	return built, nil
}

// NewID returns a process-wide unique identifier for quizzes, questions and results.
func NewID() string {
	return uuid.NewString()
}

func validateQuestion(text string, options []string, correct int) error {
	if strings.TrimSpace(text) == "" {
		return errorString("question text is empty")
	}
	if len(options) != OptionCount {
		return errorString("exactly 4 options are required")
	}
	seen := make(map[string]struct{}, OptionCount)
	for _, option := range options {
		if strings.TrimSpace(option) == "" {
			return errorString("options must not be empty")
		}
		if _, dup := seen[option]; dup {
			return errorString("options must be distinct")
		}
		seen[option] = struct{}{}
	}
	if correct < 0 || correct >= OptionCount {
		return errorString("correct answer must be between 0 and 3")
	}
	return nil
}

type errorString string

func (e errorString) Error() string { return string(e) }

// OptionLetter maps 0..3 to "A".."D".
func OptionLetter(index int) string {
	if index < 0 || index >= OptionCount {
		return ""
	}
	return string(rune('A' + index))
}

// NormalizeLetter returns the upper-cased single letter in answer, or "".
func NormalizeLetter(answer string) string {
	letter := strings.ToUpper(strings.TrimSpace(answer))
	if len(letter) != 1 {
		return ""
	}
	return letter
}

// LetterIndex maps "A".."D" (any case) to 0..3, or -1.
func LetterIndex(answer string) int {
	letter := NormalizeLetter(answer)
	if letter == "" {
		return -1
	}
	index := int(letter[0] - 'A')
	if index < 0 || index >= OptionCount {
		return -1
	}
	return index
}
