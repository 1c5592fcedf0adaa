package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResult means no valid question survived assembly.
	ErrEmptyResult       = errors.New("no valid questions in generated text")
	ErrInvalidInput      = errors.New("invalid input")
	ErrIncompleteAnswers = errors.New("every question must be answered before submitting")
	ErrAlreadySubmitted  = errors.New("session already submitted")

	ErrQuizNotFound         = errors.New("quiz not found")
	ErrResultNotFound       = errors.New("result not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrInvalidUsername      = errors.New("invalid username")
	ErrGeneratorUnavailable = errors.New("quiz generator is not configured")
	ErrGeneratorFailed      = errors.New("quiz generation failed")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
