package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"study-quiz/internal/cli"
	"study-quiz/internal/config"
	"study-quiz/internal/gemini"
	"study-quiz/internal/quiz"
	"study-quiz/internal/quiz/sqlstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	inputPath := flag.String("input", "", "file with model output in the Q1:/A)-D)/Correct: format")
	notesPath := flag.String("notes", "", "file with study notes to generate a quiz from (needs GEMINI_API_KEY)")
	title := flag.String("title", "", "quiz title (defaults to the input file name or the first words of the notes)")
	count := flag.Int("count", cfg.QuestionCount, "number of questions to generate")
	dbDSN := flag.String("db", "", "store the quiz and result in this database (uses DB_DRIVER)")
	user := flag.String("user", envOr("USER", "player"), "username results are stored under")
	flag.Parse()

	if (*inputPath == "") == (*notesPath == "") {
		return errors.New("exactly one of -input or -notes is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		quizzes quiz.QuizRepository
		results quiz.ResultRepository
	)
	if *dbDSN != "" {
		store, err := sqlstore.Open(ctx, sqlstore.Driver(cfg.DBDriver), *dbDSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer store.Close()
		quizzes, results = store, store
	}

	var generator quiz.Generator
	if *notesPath != "" {
		generator = gemini.NewClient(gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		}, &http.Client{Timeout: cfg.GeminiTimeout})
	}

	svc := quiz.NewService(quizzes, results, generator)
	save := quizzes != nil

	var q quiz.Quiz
	if *inputPath != "" {
		text, err := os.ReadFile(*inputPath)
		if err != nil {
			return err
		}
		name := *title
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(*inputPath), filepath.Ext(*inputPath))
		}
		q, err = svc.ParseQuiz(ctx, *user, quiz.ParseRequest{Text: string(text), Title: name, Save: save})
		if err != nil {
			return err
		}
	} else {
		notes, err := os.ReadFile(*notesPath)
		if err != nil {
			return err
		}
		fmt.Println("Generating quiz...")
		q, err = svc.GenerateQuiz(ctx, *user, quiz.GenerateRequest{
			Notes:         string(notes),
			QuestionCount: *count,
			Title:         *title,
			Save:          save,
		})
		if err != nil {
			return err
		}
	}

	return cli.Run(ctx, svc, q, q.Owner, os.Stdin, os.Stdout)
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
