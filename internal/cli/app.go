package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"study-quiz/internal/quiz"
)

const helpText = `Commands:
  a-d     choose an answer for the current question
  n / p   next / previous question
  g <n>   go to question n
  s       submit
  q       quit without submitting`

// Run plays q interactively for owner. Submitted results go through svc, so
// they reach whatever result store svc was built with.
func Run(ctx context.Context, svc *quiz.Service, q quiz.Quiz, owner string, in io.Reader, out io.Writer) error {
	session, err := quiz.NewSession(q, owner)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(in)
	fmt.Fprintf(out, "%s (%d questions)\n", q.Title, len(q.Questions))
	if q.Description != "" {
		fmt.Fprintln(out, q.Description)
	}
	fmt.Fprintln(out, helpText)

	printQuestion(out, session)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, "> ")
		line, readErr := reader.ReadString('\n')
		if readErr != nil && strings.TrimSpace(line) == "" {
			fmt.Fprintln(out, "\nQuit without submitting.")
			return nil
		}

		command := strings.ToLower(strings.TrimSpace(line))
		switch {
		case command == "":
			continue
		case command == "q":
			fmt.Fprintln(out, "Quit without submitting.")
			return nil
		case command == "?" || command == "h":
			fmt.Fprintln(out, helpText)
			continue
		case command == "s":
			result, err := svc.SubmitSession(ctx, session)
			if errors.Is(err, quiz.ErrIncompleteAnswers) {
				fmt.Fprintf(out, "Answer every question first. Unanswered: %s\n", formatNumbers(session.Unanswered()))
				continue
			}
			if err != nil && result.ID == "" {
				return err
			}
			printResult(out, q, result)
			if err != nil {
				fmt.Fprintf(out, "\nWarning: result could not be saved: %v\n", err)
			}
			return nil
		}

		if err := apply(session, command); err != nil {
			fmt.Fprintf(out, "%v\n", err)
			continue
		}
		printQuestion(out, session)
	}
}

func apply(session *quiz.Session, command string) error {
	switch {
	case command == "n":
		if err := session.Next(); err != nil {
			return errors.New("this is the last question; enter s to submit")
		}
		return nil
	case command == "p":
		return session.Previous()
	case strings.HasPrefix(command, "g"):
		number, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(command, "g")))
		if err != nil {
			return errors.New("usage: g <question number>")
		}
		if err := session.GoTo(number - 1); err != nil {
			return fmt.Errorf("no question %d", number)
		}
		return nil
	}

	if index := quiz.LetterIndex(command); index >= 0 {
		return session.SelectAnswer(index)
	}
	return errors.New("unknown command; enter ? for help")
}

func printQuestion(out io.Writer, session *quiz.Session) {
	state := session.State()
	question := session.Current()
	total := len(state.SelectedAnswers)

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Q%d/%d: %s\n\n", state.CurrentIndex+1, total, question.Question)
	for idx, option := range question.Options {
		marker := " "
		if state.SelectedAnswers[state.CurrentIndex] == idx {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s) %s\n", marker, quiz.OptionLetter(idx), option)
	}
	fmt.Fprintf(out, "\nAnswered %d of %d\n", total-len(session.Unanswered()), total)
}

func printResult(out io.Writer, q quiz.Quiz, result quiz.Result) {
	fmt.Fprintf(out, "\nFinal score: %d/%d (%.0f%%)\n", result.Score, result.TotalQuestions, result.Percentage)
	switch result.Verdict() {
	case quiz.VerdictExcellent:
		fmt.Fprintln(out, "Excellent work!")
	case quiz.VerdictGood:
		fmt.Fprintln(out, "Good job! Keep practicing!")
	default:
		fmt.Fprintln(out, "Keep studying and try again!")
	}

	fmt.Fprintln(out)
	for idx, answer := range result.Answers {
		if answer.IsCorrect {
			fmt.Fprintf(out, "Q%d: correct (%s)\n", idx+1, optionText(q, idx, answer.SelectedAnswer))
			continue
		}
		fmt.Fprintf(
			out,
			"Q%d: wrong. You chose %s) %s, correct answer was %s) %s\n",
			idx+1,
			quiz.OptionLetter(answer.SelectedAnswer),
			optionText(q, idx, answer.SelectedAnswer),
			quiz.OptionLetter(answer.CorrectAnswer),
			optionText(q, idx, answer.CorrectAnswer),
		)
	}
}

func optionText(q quiz.Quiz, questionIndex, optionIndex int) string {
	if questionIndex < 0 || questionIndex >= len(q.Questions) {
		return ""
	}
	options := q.Questions[questionIndex].Options
	if optionIndex < 0 || optionIndex >= len(options) {
		return ""
	}
	return options[optionIndex]
}

func formatNumbers(indexes []int) string {
	parts := make([]string, len(indexes))
	for i, idx := range indexes {
		parts[i] = strconv.Itoa(idx + 1)
	}
	return strings.Join(parts, ", ")
}
