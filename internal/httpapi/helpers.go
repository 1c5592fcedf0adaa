package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"study-quiz/internal/auth"
	"study-quiz/internal/quiz"
)

const maxBodyBytes = 1 << 20

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrQuizNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "quiz not found"})
	case errors.Is(err, quiz.ErrResultNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "result not found"})
	case errors.Is(err, quiz.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
	case errors.Is(err, quiz.ErrInvalidUsername):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "a signed-in user is required"})
	case errors.Is(err, quiz.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, quiz.ErrIncompleteAnswers), errors.Is(err, quiz.ErrAlreadySubmitted):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, quiz.ErrEmptyResult):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "no valid questions could be parsed from the generated text"})
	case errors.Is(err, quiz.ErrGeneratorUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "quiz generation is not configured"})
	case errors.Is(err, quiz.ErrGeneratorFailed):
		log.Printf("quiz generation failed: %v", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to generate quiz"})
	default:
		log.Printf("request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

// decodeJSON reads a JSON body into dst and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	if errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body is required"})
		return false
	}
	return true
}

// ownerFrom returns the token subject in the normalized form owners are
// stored under, so tokens from other issuers match their own sessions.
func ownerFrom(r *http.Request) string {
	subject := auth.SubjectFromContext(r.Context())
	owner, err := quiz.NormalizeUsername(subject)
	if err != nil {
		return subject
	}
	return owner
}

func parseIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, errors.New(key + " must be a positive integer")
	}
	return parsed, nil
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func toSessionResponse(entry *sessionEntry) sessionResponse {
	session := entry.session
	state := session.State()
	current := session.Current()
	q := session.Quiz()

	question := sessionQuestionResponse{
		ID:       current.ID,
		Question: current.Question,
		Options:  current.Options,
	}
	if selected := state.SelectedAnswers[state.CurrentIndex]; selected != quiz.Unanswered {
		question.Selected = &selected
	}

	unanswered := session.Unanswered()
	return sessionResponse{
		SessionID:       entry.id,
		QuizID:          q.ID,
		QuizTitle:       q.Title,
		Phase:           state.Phase,
		CurrentIndex:    state.CurrentIndex,
		QuestionCount:   len(q.Questions),
		AnsweredCount:   len(q.Questions) - len(unanswered),
		Unanswered:      unanswered,
		CurrentQuestion: question,
		StartedAt:       entry.startedAt.UTC(),
	}
}
