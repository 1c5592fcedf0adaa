package quiz

import (
	"fmt"
	"strings"
)

const (
	DefaultQuestionCount = 5
	MaxQuestionCount     = 20
	titleWordCount       = 5
)

// BuildPrompt asks the model for count questions in the block grammar
// ParseBlocks understands.
func BuildPrompt(notes string, count int) string {
	count = clampQuestionCount(count)

	var b strings.Builder
	b.WriteString("You are an AI that generates multiple-choice quiz questions.\n")
	fmt.Fprintf(&b, "Create EXACTLY %d questions based on the study notes below.\n\n", count)
	b.WriteString("FORMAT THE OUTPUT EXACTLY LIKE THIS:\n")
	for n := 1; n <= 2 && n <= count; n++ {
		fmt.Fprintf(&b, "Q%d: [Question %d here]\n", n, n)
		b.WriteString("A) [Option A]\nB) [Option B]\nC) [Option C]\nD) [Option D]\n")
		b.WriteString("Correct: [A/B/C/D]\n\n")
	}
	b.WriteString("IMPORTANT RULES:\n")
	b.WriteString("1. Each question MUST have exactly 4 options: A), B), C), D)\n")
	b.WriteString("2. Each option must start with the letter and parenthesis (A), B), etc.)\n")
	b.WriteString("3. The correct answer must be on its own line starting with \"Correct: \"\n")
	b.WriteString("4. Do NOT add explanations, markdown, or extra text\n")
	b.WriteString("5. Keep each question on a single line after \"Q1:\"\n\n")
	b.WriteString("STUDY NOTES:\n")
	b.WriteString(strings.TrimSpace(notes))
	return b.String()
}

// DefaultTitle and DefaultDescription name a generated quiz after the first
// few words of its notes.
func DefaultTitle(notes string) string {
	return "AI Quiz: " + leadingWords(notes, titleWordCount) + "..."
}

func DefaultDescription(notes string) string {
	return "AI-generated quiz based on: " + leadingWords(notes, titleWordCount) + "..."
}

func leadingWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func clampQuestionCount(count int) int {
	if count <= 0 {
		return DefaultQuestionCount
	}
	if count > MaxQuestionCount {
		return MaxQuestionCount
	}
	return count
}
