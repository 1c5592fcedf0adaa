package quiz

import (
	"regexp"
	"strings"
)

// RawBlock is one candidate question as it appeared in generated text.
// Fields may be missing; the assembler decides whether the block is usable.
type RawBlock struct {
	QuestionText string
	// Options is keyed by option letter 'A'..'D'.
	Options       map[byte]string
	CorrectLetter string
}

type scanState int

const (
	stateAwaitingQuestion scanState = iota
	stateBuildingBlock
)

var (
	questionLinePattern = regexp.MustCompile(`^Q(\d+):\s*(.*)$`)
	optionLinePattern   = regexp.MustCompile(`^([A-D])\)\s*(.*)$`)
	correctLinePattern  = regexp.MustCompile(`^Correct:\s*([A-Za-z])(?:[^A-Za-z].*)?$`)
)

// ParseBlocks scans raw line by line and returns every question block it
// finds, in order. It never fails: lines that match nothing are skipped and
// a block cut off by end of input is still returned with what it collected.
func ParseBlocks(raw string) []RawBlock {
	blocks := make([]RawBlock, 0)
	state := stateAwaitingQuestion
	var current RawBlock

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if match := questionLinePattern.FindStringSubmatch(line); match != nil {
			if state == stateBuildingBlock {
				blocks = append(blocks, current)
			}
			current = RawBlock{
				QuestionText: strings.TrimSpace(match[2]),
				Options:      make(map[byte]string, OptionCount),
			}
			state = stateBuildingBlock
			continue
		}

		if state != stateBuildingBlock {
			continue
		}

		if match := optionLinePattern.FindStringSubmatch(line); match != nil {
			current.Options[match[1][0]] = strings.TrimSpace(match[2])
			continue
		}
		if match := correctLinePattern.FindStringSubmatch(line); match != nil {
			current.CorrectLetter = strings.ToUpper(match[1])
		}
	}

	if state == stateBuildingBlock {
		blocks = append(blocks, current)
	}
	return blocks
}

// Assemble keeps the blocks that form a complete question and gives each a
// fresh identifier. A block is dropped whole if its text is empty, any of
// A-D is missing or blank, two options repeat, or the correct letter is
// absent or outside A-D.
func Assemble(blocks []RawBlock) []Question {
	questions := make([]Question, 0, len(blocks))
	for _, block := range blocks {
		question, ok := assembleBlock(block)
		if !ok {
			continue
		}
		question.ID = NewID()
		questions = append(questions, question)
	}
	return questions
}

func assembleBlock(block RawBlock) (Question, bool) {
	options := make([]string, OptionCount)
	for idx := range options {
		options[idx] = strings.TrimSpace(block.Options[byte('A'+idx)])
	}

	correct := LetterIndex(block.CorrectLetter)
	text := strings.TrimSpace(block.QuestionText)
	if err := validateQuestion(text, options, correct); err != nil {
		return Question{}, false
	}

	return Question{
		Question:      text,
		Options:       options,
		CorrectAnswer: correct,
	}, true
}

// BuildQuiz parses and assembles generated text into an unsaved quiz.
// It returns ErrEmptyResult when no block survives.
func BuildQuiz(raw, title, description string) (Quiz, error) {
	questions := Assemble(ParseBlocks(raw))
	if len(questions) == 0 {
		return Quiz{}, ErrEmptyResult
	}

	return Quiz{
		ID:          NewID(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Source:      SourceAI,
		Questions:   questions,
	}, nil
}
