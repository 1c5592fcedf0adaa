package httpapi

import (
	"study-quiz/internal/quiz"
)

type API struct {
	service       *quiz.Service
	sessions      *sessionRegistry
	questionCount int
}

func NewAPI(service *quiz.Service, questionCount int) *API {
	if questionCount <= 0 {
		questionCount = quiz.DefaultQuestionCount
	}
	return &API{
		service:       service,
		sessions:      newSessionRegistry(),
		questionCount: questionCount,
	}
}
