package userclient

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParsePositiveLimit(t *testing.T) {
	if got, err := parsePositiveLimit([]string{"quizzes"}, 1, 10); err != nil || got != 10 {
		t.Fatalf("default parsePositiveLimit = (%d, %v), want (10, nil)", got, err)
	}
	if got, err := parsePositiveLimit([]string{"quizzes", "3"}, 1, 10); err != nil || got != 3 {
		t.Fatalf("valid parsePositiveLimit = (%d, %v), want (3, nil)", got, err)
	}
	if _, err := parsePositiveLimit([]string{"quizzes", "0"}, 1, 10); err == nil {
		t.Fatalf("expected validation error for non-positive limit")
	}
}

func TestParseQuestionNumber(t *testing.T) {
	if got, ok := parseQuestionNumber(" 2"); !ok || got != 2 {
		t.Fatalf("parseQuestionNumber valid = (%d, %t), want (2, true)", got, ok)
	}
	for _, value := range []string{"", "0", "x"} {
		if _, ok := parseQuestionNumber(value); ok {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}

func TestFormatScore(t *testing.T) {
	if got := formatScore(66.6666); got != "66.7" {
		t.Fatalf("formatScore = %q, want 66.7", got)
	}
}

func TestDescribeClientError(t *testing.T) {
	err := describeClientError(ErrServiceUnavailable, "http://quiz.test")
	if err.Error() != "quiz service unavailable at http://quiz.test" {
		t.Fatalf("unexpected message: %v", err)
	}

	other := errors.New("boom")
	if got := describeClientError(other, "http://quiz.test"); got != other {
		t.Fatalf("expected other errors to pass through, got %v", got)
	}
}

func TestRunRequiresUsername(t *testing.T) {
	var out bytes.Buffer
	if err := Run(context.Background(), strings.NewReader(""), &out, Config{}); err == nil {
		t.Fatal("expected error without username")
	}
}

func TestRunFailsWhenLoginDisabled(t *testing.T) {
	server := newTestServer(t, false)

	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader("exit\n"), &out, Config{
		Username:  "alice",
		ServerURL: server.url,
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError from login, got %v", err)
	}
}

func TestRunPlaysQuizAndShowsHistory(t *testing.T) {
	server := newTestServer(t, true)
	created := server.createQuiz(t, "alice")

	input := strings.Join([]string{
		"quizzes",
		"play " + created.ID,
		"s",
		"b",
		"n",
		"n",
		"b",
		"s",
		"results",
		"stats",
		"exit",
	}, "\n") + "\n"

	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader(input), &out, Config{
		Username:    "Alice",
		ServerURL:   server.url,
		HTTPTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"username=alice",
		created.ID,
		"Arithmetic (2 questions)",
		"every question must be answered before submitting",
		"no question after the last one",
		"Final score: 2/2 (100.0%)",
		"Excellent work!",
		"attempts:        1",
		"best:            100.0%",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestRunQuitAbandonsSession(t *testing.T) {
	server := newTestServer(t, true)
	created := server.createQuiz(t, "alice")

	input := "play " + created.ID + "\na\nq\nresults\n"

	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader(input), &out, Config{
		Username:  "alice",
		ServerURL: server.url,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "Quit without submitting.") {
		t.Fatalf("expected quit message, got:\n%s", output)
	}
	if !strings.Contains(output, "no results yet") {
		t.Fatalf("expected abandoned session to record nothing, got:\n%s", output)
	}
}

func TestRunReportsUnknownCommandsAndUsage(t *testing.T) {
	server := newTestServer(t, true)

	input := "bogus\nplay\ndelete\nquizzes zero\nplay missing\n"

	var out bytes.Buffer
	if err := Run(context.Background(), strings.NewReader(input), &out, Config{
		Username:  "alice",
		ServerURL: server.url,
	}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		`unknown command "bogus"`,
		"usage: play <quiz_id>",
		"usage: delete <quiz_id>",
		"invalid quizzes limit",
		"error: quiz not found",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}
