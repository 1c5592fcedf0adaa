package httpapi

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"study-quiz/internal/quiz"
)

func (a *API) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	session, err := a.service.StartSession(r.Context(), ownerFrom(r), chi.URLParam(r, "quizID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	entry := a.sessions.add(session)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	writeJSON(w, http.StatusCreated, toSessionResponse(entry))
}

func (a *API) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	a.withSession(w, r, func(entry *sessionEntry) error {
		return nil
	})
}

func (a *API) HandleAbandonSession(w http.ResponseWriter, r *http.Request) {
	entry, err := a.sessions.get(ownerFrom(r), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	a.sessions.remove(entry.id)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) HandleSelectAnswer(w http.ResponseWriter, r *http.Request) {
	var request answerRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	option := quiz.Unanswered
	switch {
	case request.Option != nil:
		option = *request.Option
	case strings.TrimSpace(request.Letter) != "":
		option = quiz.LetterIndex(request.Letter)
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "option or letter is required"})
		return
	}

	a.withSession(w, r, func(entry *sessionEntry) error {
		return entry.session.SelectAnswer(option)
	})
}

func (a *API) HandleGoTo(w http.ResponseWriter, r *http.Request) {
	var request gotoRequest
	if !decodeJSON(w, r, &request) {
		return
	}
	if request.Index == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "index is required"})
		return
	}

	a.withSession(w, r, func(entry *sessionEntry) error {
		return entry.session.GoTo(*request.Index)
	})
}

func (a *API) HandleNext(w http.ResponseWriter, r *http.Request) {
	a.withSession(w, r, func(entry *sessionEntry) error {
		return entry.session.Next()
	})
}

func (a *API) HandlePrevious(w http.ResponseWriter, r *http.Request) {
	a.withSession(w, r, func(entry *sessionEntry) error {
		return entry.session.Previous()
	})
}

// HandleSubmit scores the attempt and hands it to the result store. Once
// the session is submitted it leaves the registry, even if storing failed;
// the caller still gets the scored result with a warning.
func (a *API) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	entry, err := a.sessions.get(ownerFrom(r), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	result, err := a.service.SubmitSession(r.Context(), entry.session)
	if entry.session.Phase() == quiz.PhaseSubmitted {
		a.sessions.remove(entry.id)
	}

	var warnings []string
	if err != nil {
		if errors.Is(err, quiz.ErrIncompleteAnswers) || errors.Is(err, quiz.ErrAlreadySubmitted) || result.ID == "" {
			writeServiceError(w, err)
			return
		}
		log.Printf("result %s for quiz %s not stored: %v", result.ID, result.QuizID, err)
		warnings = append(warnings, "result was scored but could not be saved to history")
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Result:   result,
		Verdict:  result.Verdict(),
		Warnings: warnings,
	})
}

// withSession runs op on the caller's session under its lock and replies
// with the resulting session view.
func (a *API) withSession(w http.ResponseWriter, r *http.Request, op func(entry *sessionEntry) error) {
	entry, err := a.sessions.get(ownerFrom(r), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := op(entry); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(entry))
}
