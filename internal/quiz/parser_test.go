package quiz

import (
	"errors"
	"testing"
)

func TestParseBlocksSingleQuestion(t *testing.T) {
	raw := "Q1: What is 2+2?\nA) 3\nB) 4\nC) 5\nD) 6\nCorrect: B"

	blocks := ParseBlocks(raw)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	block := blocks[0]
	if block.QuestionText != "What is 2+2?" {
		t.Fatalf("unexpected question text: %q", block.QuestionText)
	}
	if block.Options['A'] != "3" || block.Options['D'] != "6" {
		t.Fatalf("unexpected options: %+v", block.Options)
	}
	if block.CorrectLetter != "B" {
		t.Fatalf("expected correct letter B, got %q", block.CorrectLetter)
	}
}

func TestBuildQuizTwoPlusTwo(t *testing.T) {
	raw := "Q1: What is 2+2?\nA) 3\nB) 4\nC) 5\nD) 6\nCorrect: B"

	built, err := BuildQuiz(raw, "Math", "")
	if err != nil {
		t.Fatalf("BuildQuiz failed: %v", err)
	}
	if len(built.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(built.Questions))
	}
	question := built.Questions[0]
	want := []string{"3", "4", "5", "6"}
	for idx := range want {
		if question.Options[idx] != want[idx] {
			t.Fatalf("option %d = %q, want %q", idx, question.Options[idx], want[idx])
		}
	}
	if question.CorrectAnswer != 1 {
		t.Fatalf("expected correct answer 1, got %d", question.CorrectAnswer)
	}
	if question.ID == "" || built.ID == "" {
		t.Fatalf("expected identifiers to be assigned: %+v", built)
	}
	if built.Source != SourceAI {
		t.Fatalf("expected source %q, got %q", SourceAI, built.Source)
	}
}

func TestParseBlocksToleratesNoise(t *testing.T) {
	raw := "Sure! Here is your quiz.\r\n\r\n" +
		"  Q1:   Capital of France?  \r\n" +
		"A)Paris\r\n" +
		"B) Rome\r\n" +
		"some stray commentary\r\n" +
		"C) Madrid\r\n" +
		"D) Berlin\r\n" +
		"Correct: a) Paris\r\n"

	questions := Assemble(ParseBlocks(raw))
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].Question != "Capital of France?" {
		t.Fatalf("unexpected question text: %q", questions[0].Question)
	}
	if questions[0].Options[0] != "Paris" {
		t.Fatalf("unexpected first option: %q", questions[0].Options[0])
	}
	if questions[0].CorrectAnswer != 0 {
		t.Fatalf("expected correct answer 0, got %d", questions[0].CorrectAnswer)
	}
}

func TestParseBlocksIgnoresLinesBeforeFirstQuestion(t *testing.T) {
	raw := "A) orphan\nCorrect: A\nQ1: Real?\nA) yes\nB) no\nC) maybe\nD) never\nCorrect: A"

	blocks := ParseBlocks(raw)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Options['A'] != "yes" {
		t.Fatalf("orphan option leaked into block: %+v", blocks[0].Options)
	}
}

func TestParseBlocksLastWriteWins(t *testing.T) {
	raw := "Q1: Pick\nA) first\nA) second\nB) b\nC) c\nD) d\nCorrect: A\nCorrect: C"

	blocks := ParseBlocks(raw)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Options['A'] != "second" {
		t.Fatalf("expected repeated option to overwrite, got %q", blocks[0].Options['A'])
	}
	if blocks[0].CorrectLetter != "C" {
		t.Fatalf("expected repeated correct line to overwrite, got %q", blocks[0].CorrectLetter)
	}
}

func TestParseBlocksKeepsTruncatedFinalBlock(t *testing.T) {
	raw := "Q1: One\nA) a\nB) b\nC) c\nD) d\nCorrect: D\nQ2: Two\nA) a\nB) b"

	blocks := ParseBlocks(raw)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[1].QuestionText != "Two" || len(blocks[1].Options) != 2 {
		t.Fatalf("unexpected truncated block: %+v", blocks[1])
	}

	questions := Assemble(blocks)
	if len(questions) != 1 || questions[0].Question != "One" {
		t.Fatalf("expected only the complete block to survive, got %+v", questions)
	}
}

func TestAssembleRejectsIncompleteBlocks(t *testing.T) {
	full := func() RawBlock {
		return RawBlock{
			QuestionText:  "Question?",
			Options:       map[byte]string{'A': "a", 'B': "b", 'C': "c", 'D': "d"},
			CorrectLetter: "A",
		}
	}

	tests := []struct {
		name   string
		mutate func(b *RawBlock)
	}{
		{name: "missing option D", mutate: func(b *RawBlock) { delete(b.Options, 'D') }},
		{name: "blank option", mutate: func(b *RawBlock) { b.Options['B'] = "   " }},
		{name: "duplicate options", mutate: func(b *RawBlock) { b.Options['C'] = "a" }},
		{name: "missing correct", mutate: func(b *RawBlock) { b.CorrectLetter = "" }},
		{name: "correct out of range", mutate: func(b *RawBlock) { b.CorrectLetter = "E" }},
		{name: "empty question", mutate: func(b *RawBlock) { b.QuestionText = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := full()
			tt.mutate(&block)
			if got := Assemble([]RawBlock{block}); len(got) != 0 {
				t.Fatalf("expected block to be rejected, got %+v", got)
			}
		})
	}

	if got := Assemble([]RawBlock{full()}); len(got) != 1 {
		t.Fatalf("expected complete block to be kept, got %d", len(got))
	}
}

func TestAssembleAssignsDistinctIDs(t *testing.T) {
	raw := "Q1: One\nA) a\nB) b\nC) c\nD) d\nCorrect: A\n" +
		"Q2: Two\nA) a\nB) b\nC) c\nD) d\nCorrect: B\n"

	questions := Assemble(ParseBlocks(raw))
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].ID == questions[1].ID {
		t.Fatalf("expected distinct ids, got %q twice", questions[0].ID)
	}
}

func TestBuildQuizEmptyResult(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "prose", raw: "I could not generate a quiz from these notes."},
		{name: "only block missing D", raw: "Q1: What?\nA) a\nB) b\nC) c\nCorrect: A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildQuiz(tt.raw, "title", "")
			if !errors.Is(err, ErrEmptyResult) {
				t.Fatalf("expected ErrEmptyResult, got %v", err)
			}
		})
	}
}
