package quiz

import (
	"fmt"
	"time"
)

type Phase string

const (
	PhaseInProgress Phase = "in_progress"
	PhaseSubmitted  Phase = "submitted"
)

type clock func() time.Time

// SessionState is a copy of a session's navigable state.
type SessionState struct {
	QuizID          string `json:"quiz_id"`
	CurrentIndex    int    `json:"current_index"`
	SelectedAnswers []int  `json:"selected_answers"`
	Phase           Phase  `json:"phase"`
}

// Session is one attempt at a quiz. It is not safe for concurrent use:
// callers that share a session across goroutines must serialize access.
//
// Invariants: len(selected) == len(quiz.Questions) and 0 <= current <
// len(quiz.Questions) for the session's whole life. Rejected operations
// leave the state untouched.
type Session struct {
	quiz     Quiz
	owner    string
	current  int
	selected []int
	phase    Phase
	result   Result
	now      clock
}

func NewSession(q Quiz, owner string) (*Session, error) {
	if len(q.Questions) == 0 {
		return nil, invalidInput("quiz has no questions")
	}

	selected := make([]int, len(q.Questions))
	for idx := range selected {
		selected[idx] = Unanswered
	}

	return &Session{
		quiz:     q,
		owner:    owner,
		selected: selected,
		phase:    PhaseInProgress,
		now:      time.Now,
	}, nil
}

func (s *Session) SelectAnswer(option int) error {
	if s.phase == PhaseSubmitted {
		return ErrAlreadySubmitted
	}
	if option < 0 || option >= OptionCount {
		return invalidInput("option %d out of range", option)
	}
	s.selected[s.current] = option
	return nil
}

func (s *Session) GoTo(index int) error {
	if s.phase == PhaseSubmitted {
		return ErrAlreadySubmitted
	}
	if index < 0 || index >= len(s.selected) {
		return invalidInput("question index %d out of range", index)
	}
	s.current = index
	return nil
}

// Next moves forward one question. There is nothing after the last
// question, so Next there is rejected; the way on is Submit.
func (s *Session) Next() error {
	if s.phase == PhaseSubmitted {
		return ErrAlreadySubmitted
	}
	if s.current == len(s.selected)-1 {
		return invalidInput("no question after the last one")
	}
	s.current++
	return nil
}

// Previous moves back one question; on the first question it does nothing.
func (s *Session) Previous() error {
	if s.phase == PhaseSubmitted {
		return ErrAlreadySubmitted
	}
	if s.current > 0 {
		s.current--
	}
	return nil
}

// Submit scores the session once every question has an answer.
func (s *Session) Submit() (Result, error) {
	if s.phase == PhaseSubmitted {
		return Result{}, ErrAlreadySubmitted
	}
	if missing := s.Unanswered(); len(missing) > 0 {
		return Result{}, fmt.Errorf("%w: %d unanswered", ErrIncompleteAnswers, len(missing))
	}

	result, err := Score(s.quiz, s.selected)
	if err != nil {
		return Result{}, err
	}
	result.ID = NewID()
	result.Owner = s.owner
	result.CompletedAt = s.now().UTC()

	s.result = result
	s.phase = PhaseSubmitted
	return result, nil
}

func (s *Session) State() SessionState {
	selected := make([]int, len(s.selected))
	copy(selected, s.selected)
	return SessionState{
		QuizID:          s.quiz.ID,
		CurrentIndex:    s.current,
		SelectedAnswers: selected,
		Phase:           s.phase,
	}
}

// Unanswered lists the indexes still at Unanswered.
func (s *Session) Unanswered() []int {
	missing := make([]int, 0)
	for idx, answer := range s.selected {
		if answer == Unanswered {
			missing = append(missing, idx)
		}
	}
	return missing
}

func (s *Session) Current() Question {
	return s.quiz.Questions[s.current]
}

func (s *Session) Quiz() Quiz {
	return s.quiz
}

func (s *Session) Owner() string {
	return s.owner
}

func (s *Session) Phase() Phase {
	return s.phase
}

// Result returns the scored result once the session has been submitted.
func (s *Session) Result() (Result, bool) {
	if s.phase != PhaseSubmitted {
		return Result{}, false
	}
	return s.result, true
}
