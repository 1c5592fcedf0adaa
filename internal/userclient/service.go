package userclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"study-quiz/internal/quiz"
)

const (
	defaultServer      = "http://127.0.0.1:8080"
	defaultListLimit   = 10
	defaultHTTPTimeout = 60 * time.Second
)

type Config struct {
	Username    string
	ServerURL   string
	Token       string
	ListLimit   int
	HTTPTimeout time.Duration
}

// Run is an interactive shell against a running quiz-service.
func Run(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	username := strings.TrimSpace(cfg.Username)
	if username == "" && strings.TrimSpace(cfg.Token) == "" {
		return errors.New("username is required")
	}

	serverURL := strings.TrimSpace(cfg.ServerURL)
	if serverURL == "" {
		serverURL = defaultServer
	}
	listLimit := cfg.ListLimit
	if listLimit <= 0 {
		listLimit = defaultListLimit
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	client := NewHTTPClient(serverURL, &http.Client{Timeout: timeout})
	if cfg.Token != "" {
		client.SetToken(cfg.Token)
	} else {
		signedIn, err := client.Login(ctx, username)
		if err != nil {
			return describeClientError(err, serverURL)
		}
		username = signedIn
	}
	reader := bufio.NewReader(in)

	fmt.Fprintf(out, "quiz-remote\nusername=%s\nserver=%s\n\n", username, serverURL)
	printHelp(out)

	for {
		fmt.Fprint(out, "\n> ")
		line, err := reader.ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		command := strings.ToLower(args[0])

		switch command {
		case "help":
			printHelp(out)
		case "exit":
			return nil
		case "quizzes":
			limit, parseErr := parsePositiveLimit(args, 1, listLimit)
			if parseErr != nil {
				fmt.Fprintf(out, "invalid quizzes limit: %v\n", parseErr)
				continue
			}
			if err := runList(ctx, out, client, limit); err != nil {
				fmt.Fprintf(out, "error: %v\n", describeClientError(err, serverURL))
			}
		case "results":
			limit, parseErr := parsePositiveLimit(args, 1, listLimit)
			if parseErr != nil {
				fmt.Fprintf(out, "invalid results limit: %v\n", parseErr)
				continue
			}
			if err := runResults(ctx, out, client, limit); err != nil {
				fmt.Fprintf(out, "error: %v\n", describeClientError(err, serverURL))
			}
		case "stats":
			if err := runStats(ctx, out, client); err != nil {
				fmt.Fprintf(out, "error: %v\n", describeClientError(err, serverURL))
			}
		case "delete":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: delete <quiz_id>")
				continue
			}
			if err := client.DeleteQuiz(ctx, args[1]); err != nil {
				fmt.Fprintf(out, "error: %v\n", describeClientError(err, serverURL))
				continue
			}
			fmt.Fprintf(out, "deleted quiz %s\n", args[1])
		case "play":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: play <quiz_id>")
				continue
			}
			err := runPlay(ctx, reader, out, client, args[1])
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", describeClientError(err, serverURL))
			}
		default:
			fmt.Fprintf(out, "unknown command %q\n", command)
			printHelp(out)
		}
	}
}

func runList(ctx context.Context, out io.Writer, client *HTTPClient, limit int) error {
	quizzes, err := client.ListQuizzes(ctx, limit)
	if err != nil {
		return err
	}
	if len(quizzes) == 0 {
		fmt.Fprintln(out, "no quizzes yet")
		return nil
	}

	for _, item := range quizzes {
		fmt.Fprintf(
			out,
			"%s  %-30s  %d questions  %s  %s\n",
			item.ID,
			item.Title,
			item.QuestionCount,
			item.Source,
			item.CreatedAt.Local().Format(time.DateTime),
		)
	}
	return nil
}

func runResults(ctx context.Context, out io.Writer, client *HTTPClient, limit int) error {
	results, err := client.ListResults(ctx, limit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "no results yet")
		return nil
	}

	for _, item := range results {
		fmt.Fprintf(
			out,
			"%s  %-30s  %d/%d  %s%%  %s\n",
			item.CompletedAt.Local().Format(time.DateTime),
			item.QuizTitle,
			item.Score,
			item.TotalQuestions,
			formatScore(item.Percentage),
			item.ID,
		)
	}
	return nil
}

func runStats(ctx context.Context, out io.Writer, client *HTTPClient) error {
	stats, err := client.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "quizzes created: %d\n", stats.QuizzesCreated)
	fmt.Fprintf(out, "attempts:        %d\n", stats.Attempts)
	fmt.Fprintf(out, "average:         %s%%\n", formatScore(stats.AveragePercentage))
	fmt.Fprintf(out, "best:            %s%%\n", formatScore(stats.BestPercentage))
	fmt.Fprintf(out, "answers correct: %d/%d\n", stats.TotalCorrect, stats.TotalQuestions)
	return nil
}

// runPlay drives a server-side session. Quitting abandons it.
func runPlay(ctx context.Context, reader *bufio.Reader, out io.Writer, client *HTTPClient, quizID string) error {
	view, err := client.StartSession(ctx, quizID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s (%d questions)\n", view.QuizTitle, view.QuestionCount)
	fmt.Fprintln(out, playHelp)
	printSession(out, view)

	for {
		fmt.Fprint(out, "play> ")
		line, readErr := reader.ReadString('\n')
		if readErr != nil && strings.TrimSpace(line) == "" {
			_ = client.Abandon(ctx, view.SessionID)
			return io.EOF
		}

		command := strings.ToLower(strings.TrimSpace(line))
		var next sessionView
		switch {
		case command == "":
			continue
		case command == "q":
			if err := client.Abandon(ctx, view.SessionID); err != nil {
				return err
			}
			fmt.Fprintln(out, "Quit without submitting.")
			return nil
		case command == "s":
			submitted, err := client.Submit(ctx, view.SessionID)
			if err != nil {
				var apiErr *APIError
				if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
					fmt.Fprintf(out, "%s\n", apiErr.Message)
					continue
				}
				return err
			}
			printResult(out, submitted)
			return nil
		case command == "n":
			next, err = client.Next(ctx, view.SessionID)
		case command == "p":
			next, err = client.Previous(ctx, view.SessionID)
		case strings.HasPrefix(command, "g"):
			number, ok := parseQuestionNumber(strings.TrimPrefix(command, "g"))
			if !ok {
				fmt.Fprintln(out, "usage: g <question number>")
				continue
			}
			next, err = client.GoTo(ctx, view.SessionID, number-1)
		default:
			index := quiz.LetterIndex(command)
			if index < 0 {
				fmt.Fprintln(out, "unknown command; enter a-d, n, p, g <n>, s or q")
				continue
			}
			next, err = client.SelectAnswer(ctx, view.SessionID, index)
		}

		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
				fmt.Fprintf(out, "%s\n", apiErr.Message)
				continue
			}
			return err
		}
		view = next
		printSession(out, view)
	}
}
