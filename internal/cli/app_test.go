package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"study-quiz/internal/quiz"
)

type memorySink struct {
	results []quiz.Result
	err     error
}

func (m *memorySink) Accept(_ context.Context, result quiz.Result) error {
	if m.err != nil {
		return m.err
	}
	m.results = append(m.results, result)
	return nil
}

func (m *memorySink) ListResults(context.Context, string, int) ([]quiz.Result, error) {
	return m.results, nil
}

func (m *memorySink) DeleteResult(context.Context, string, string) error {
	return quiz.ErrResultNotFound
}

func (m *memorySink) GetStats(context.Context, string) (quiz.Stats, error) {
	return quiz.Stats{}, nil
}

func testQuiz(t *testing.T) quiz.Quiz {
	t.Helper()

	raw := "Q1: What is 2+2?\nA) 3\nB) 4\nC) 5\nD) 6\nCorrect: B\n" +
		"Q2: Sky color?\nA) Green\nB) Blue\nC) Red\nD) Black\nCorrect: B\n"
	q, err := quiz.BuildQuiz(raw, "Warmup", "two easy ones")
	if err != nil {
		t.Fatalf("BuildQuiz failed: %v", err)
	}
	return q
}

func TestRunPlaysAndSubmits(t *testing.T) {
	sink := &memorySink{}
	svc := quiz.NewService(nil, sink, nil)
	in := strings.NewReader("b\ns\nn\nn\nx\na\ng 1\ns\n")
	var out bytes.Buffer

	if err := Run(context.Background(), svc, testQuiz(t), "alice", in, &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"Warmup (2 questions)",
		"Answer every question first. Unanswered: 2",
		"this is the last question",
		"unknown command",
		"Final score: 1/2 (50%)",
		"Keep studying and try again!",
		"Q2: wrong. You chose A) Green, correct answer was B) Blue",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q:\n%s", want, output)
		}
	}
	if len(sink.results) != 1 || sink.results[0].Owner != "alice" {
		t.Fatalf("expected stored result for alice, got %+v", sink.results)
	}
}

func TestRunQuitDoesNotSubmit(t *testing.T) {
	sink := &memorySink{}
	svc := quiz.NewService(nil, sink, nil)
	var out bytes.Buffer

	if err := Run(context.Background(), svc, testQuiz(t), "alice", strings.NewReader("a\nq\n"), &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Quit without submitting.") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	if len(sink.results) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(sink.results))
	}
}

func TestRunEOFQuits(t *testing.T) {
	svc := quiz.NewService(nil, nil, nil)
	var out bytes.Buffer

	if err := Run(context.Background(), svc, testQuiz(t), "alice", strings.NewReader("b"), &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Quit without submitting.") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRunWarnsWhenResultNotStored(t *testing.T) {
	sink := &memorySink{err: errors.New("disk full")}
	svc := quiz.NewService(nil, sink, nil)
	var out bytes.Buffer

	in := strings.NewReader("b\nn\nb\ns\n")
	if err := Run(context.Background(), svc, testQuiz(t), "alice", in, &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	output := out.String()
	if !strings.Contains(output, "Final score: 2/2 (100%)") || !strings.Contains(output, "Excellent work!") {
		t.Fatalf("expected full score:\n%s", output)
	}
	if !strings.Contains(output, "Warning: result could not be saved") {
		t.Fatalf("expected storage warning:\n%s", output)
	}
}

func TestRunRejectsEmptyQuiz(t *testing.T) {
	svc := quiz.NewService(nil, nil, nil)
	err := Run(context.Background(), svc, quiz.Quiz{Title: "empty"}, "alice", strings.NewReader(""), &bytes.Buffer{})
	if !errors.Is(err, quiz.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
