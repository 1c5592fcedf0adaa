package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"study-quiz/internal/quiz"
)

const defaultListLimit = 50

func (a *API) HandleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var request generateQuizRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	count := request.QuestionCount
	if count <= 0 {
		count = a.questionCount
	}

	generated, err := a.service.GenerateQuiz(r.Context(), ownerFrom(r), quiz.GenerateRequest{
		Notes:         request.Notes,
		QuestionCount: count,
		Title:         request.Title,
		Description:   request.Description,
		Save:          request.Save,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeQuiz(w, generated, request.Save)
}

func (a *API) HandleParseQuiz(w http.ResponseWriter, r *http.Request) {
	var request parseQuizRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	parsed, err := a.service.ParseQuiz(r.Context(), ownerFrom(r), quiz.ParseRequest{
		Text:        request.Text,
		Title:       request.Title,
		Description: request.Description,
		Save:        request.Save,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeQuiz(w, parsed, request.Save)
}

func (a *API) HandleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	var draft quiz.NewQuiz
	if !decodeJSON(w, r, &draft) {
		return
	}

	created, err := a.service.CreateQuiz(r.Context(), ownerFrom(r), draft)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeQuiz(w, created, true)
}

// HandleSaveQuiz stores a quiz returned earlier by generate or parse with
// save=false, after the caller has reviewed or edited it.
func (a *API) HandleSaveQuiz(w http.ResponseWriter, r *http.Request) {
	var preview quiz.Quiz
	if !decodeJSON(w, r, &preview) {
		return
	}

	saved, err := a.service.SaveQuiz(r.Context(), ownerFrom(r), preview)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeQuiz(w, saved, true)
}

func (a *API) HandleListQuizzes(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit", defaultListLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	items, err := a.service.ListQuizzes(r.Context(), ownerFrom(r), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quizzesResponse{Quizzes: items})
}

func (a *API) HandleGetQuiz(w http.ResponseWriter, r *http.Request) {
	loaded, err := a.service.GetQuiz(r.Context(), ownerFrom(r), chi.URLParam(r, "quizID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quizResponse{Quiz: loaded, Saved: true})
}

func (a *API) HandleDeleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteQuiz(r.Context(), ownerFrom(r), chi.URLParam(r, "quizID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) HandleListResults(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit", defaultListLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	results, err := a.service.ListResults(r.Context(), ownerFrom(r), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultsResponse{Results: results})
}

func (a *API) HandleDeleteResult(w http.ResponseWriter, r *http.Request) {
	resultID := strings.TrimSpace(chi.URLParam(r, "resultID"))
	if err := a.service.DeleteResult(r.Context(), ownerFrom(r), resultID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.service.GetStats(r.Context(), ownerFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func writeQuiz(w http.ResponseWriter, q quiz.Quiz, saved bool) {
	status := http.StatusOK
	if saved {
		status = http.StatusCreated
	}
	writeJSON(w, status, quizResponse{Quiz: q, Saved: saved})
}
