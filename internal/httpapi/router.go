package httpapi

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"study-quiz/internal/auth"
	"study-quiz/internal/quiz"
)

const (
	defaultRequestTimeout = 60 * time.Second
	maxErrorLogBytes      = 512
)

type RouterOptions struct {
	Auth           *auth.AuthService
	EnableDevLogin bool
	CORSOrigins    []string
	QuestionCount  int
	RequestTimeout time.Duration
}

func NewRouter(service *quiz.Service, opts RouterOptions) http.Handler {
	api := NewAPI(service, opts.QuestionCount)

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(logErrorResponses)
	r.Use(middleware.Timeout(timeout))
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	if opts.EnableDevLogin {
		r.Post("/auth/token", auth.LoginHandler(opts.Auth))
	}

	r.Route("/api", func(pr chi.Router) {
		pr.Use(auth.Middleware(opts.Auth))

		pr.Route("/quizzes", func(qr chi.Router) {
			qr.Post("/generate", api.HandleGenerateQuiz)
			qr.Post("/parse", api.HandleParseQuiz)
			qr.Post("/save", api.HandleSaveQuiz)
			qr.Post("/", api.HandleCreateQuiz)
			qr.Get("/", api.HandleListQuizzes)
			qr.Get("/{quizID}", api.HandleGetQuiz)
			qr.Delete("/{quizID}", api.HandleDeleteQuiz)
			qr.Post("/{quizID}/sessions", api.HandleStartSession)
		})

		pr.Route("/sessions/{sessionID}", func(sr chi.Router) {
			sr.Get("/", api.HandleGetSession)
			sr.Delete("/", api.HandleAbandonSession)
			sr.Post("/answer", api.HandleSelectAnswer)
			sr.Post("/goto", api.HandleGoTo)
			sr.Post("/next", api.HandleNext)
			sr.Post("/previous", api.HandlePrevious)
			sr.Post("/submit", api.HandleSubmit)
		})

		pr.Get("/results", api.HandleListResults)
		pr.Delete("/results/{resultID}", api.HandleDeleteResult)
		pr.Get("/stats", api.HandleStats)
	})

	return r
}

// statusRecorder keeps the status and a bounded copy of the body so error
// responses can be logged.
type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
	maxLogBytes  int
	logBody      bytes.Buffer
	truncated    bool
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if remaining := r.maxLogBytes - r.logBody.Len(); remaining > 0 {
		if len(p) > remaining {
			r.logBody.Write(p[:remaining])
			r.truncated = true
		} else {
			r.logBody.Write(p)
		}
	} else if len(p) > 0 {
		r.truncated = true
	}

	n, err := r.ResponseWriter.Write(p)
	r.bytesWritten += n
	return n, err
}

func logErrorResponses(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			maxLogBytes:    maxErrorLogBytes,
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode < http.StatusBadRequest {
			return
		}
		body := recorder.logBody.String()
		if recorder.truncated {
			body += "...(truncated)"
		}
		log.Printf(
			"[%s] %s %s -> %d (%d bytes): %s",
			middleware.GetReqID(r.Context()),
			r.Method,
			r.URL.Path,
			recorder.statusCode,
			recorder.bytesWritten,
			body,
		)
	})
}
