package httpapi

import (
	"time"

	"study-quiz/internal/quiz"
)

type generateQuizRequest struct {
	Notes         string `json:"notes"`
	QuestionCount int    `json:"question_count"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Save          bool   `json:"save"`
}

type parseQuizRequest struct {
	Text        string `json:"text"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Save        bool   `json:"save"`
}

type quizResponse struct {
	Quiz  quiz.Quiz `json:"quiz"`
	Saved bool      `json:"saved"`
}

type quizzesResponse struct {
	Quizzes []quiz.QuizMetadata `json:"quizzes"`
}

type answerRequest struct {
	Option *int   `json:"option"`
	Letter string `json:"letter"`
}

type gotoRequest struct {
	Index *int `json:"index"`
}

// sessionQuestionResponse is a question as a player sees it: no correct answer.
type sessionQuestionResponse struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Selected *int     `json:"selected,omitempty"`
}

type sessionResponse struct {
	SessionID       string                  `json:"session_id"`
	QuizID          string                  `json:"quiz_id"`
	QuizTitle       string                  `json:"quiz_title"`
	Phase           quiz.Phase              `json:"phase"`
	CurrentIndex    int                     `json:"current_index"`
	QuestionCount   int                     `json:"question_count"`
	AnsweredCount   int                     `json:"answered_count"`
	Unanswered      []int                   `json:"unanswered"`
	CurrentQuestion sessionQuestionResponse `json:"current_question"`
	StartedAt       time.Time               `json:"started_at"`
}

type submitResponse struct {
	Result   quiz.Result `json:"result"`
	Verdict  string      `json:"verdict"`
	Warnings []string    `json:"warnings,omitempty"`
}

type resultsResponse struct {
	Results []quiz.Result `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}
