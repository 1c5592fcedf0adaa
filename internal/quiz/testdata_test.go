package quiz

import "time"

func sampleQuiz() Quiz {
	return Quiz{
		ID:          "quiz-1",
		Owner:       "alice",
		Title:       "Arithmetic",
		Description: "basic sums",
		Source:      SourceManual,
		CreatedAt:   time.Unix(1700000000, 0).UTC(),
		Questions: []Question{
			{ID: "q1", Question: "What is 2+2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: 1},
			{ID: "q2", Question: "What is 3+3?", Options: []string{"6", "7", "8", "9"}, CorrectAnswer: 0},
			{ID: "q3", Question: "What is 5+5?", Options: []string{"8", "9", "10", "11"}, CorrectAnswer: 2},
		},
	}
}

func fixedClock(at time.Time) clock {
	return func() time.Time { return at }
}
