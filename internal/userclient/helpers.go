package userclient

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"study-quiz/internal/quiz"
)

const playHelp = "a-d answer, n/p next/previous, g <n> go to, s submit, q quit"

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  help")
	fmt.Fprintln(out, "  quizzes [limit]")
	fmt.Fprintln(out, "  play <quiz_id>")
	fmt.Fprintln(out, "  delete <quiz_id>")
	fmt.Fprintln(out, "  results [limit]")
	fmt.Fprintln(out, "  stats")
	fmt.Fprintln(out, "  exit")
}

func printSession(out io.Writer, view sessionView) {
	question := view.CurrentQuestion
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Q%d/%d: %s\n\n", view.CurrentIndex+1, view.QuestionCount, question.Question)
	for idx, option := range question.Options {
		marker := " "
		if question.Selected != nil && *question.Selected == idx {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s) %s\n", marker, quiz.OptionLetter(idx), option)
	}
	fmt.Fprintf(out, "\nAnswered %d of %d\n", view.AnsweredCount, view.QuestionCount)
}

func printResult(out io.Writer, view submitView) {
	result := view.Result
	fmt.Fprintf(out, "\nFinal score: %d/%d (%s%%)\n", result.Score, result.TotalQuestions, formatScore(result.Percentage))
	switch view.Verdict {
	case quiz.VerdictExcellent:
		fmt.Fprintln(out, "Excellent work!")
	case quiz.VerdictGood:
		fmt.Fprintln(out, "Good job! Keep practicing!")
	default:
		fmt.Fprintln(out, "Keep studying and try again!")
	}
	for idx, answer := range result.Answers {
		status := "correct"
		if !answer.IsCorrect {
			status = fmt.Sprintf("wrong, answer was %s", quiz.OptionLetter(answer.CorrectAnswer))
		}
		fmt.Fprintf(out, "Q%d: %s\n", idx+1, status)
	}
	for _, warning := range view.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
}

func parsePositiveLimit(args []string, index int, defaultValue int) (int, error) {
	if len(args) <= index {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(args[index])
	if err != nil || value <= 0 {
		return 0, errors.New("must be a positive integer")
	}
	return value, nil
}

func parseQuestionNumber(value string) (int, bool) {
	number, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || number <= 0 {
		return 0, false
	}
	return number, true
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}

func describeClientError(err error, serverURL string) error {
	if errors.Is(err, ErrServiceUnavailable) {
		return fmt.Errorf("quiz service unavailable at %s", serverURL)
	}
	return err
}
