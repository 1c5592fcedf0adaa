package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"study-quiz/internal/userclient"
)

func main() {
	username := flag.String("username", "", "username to sign in as (required unless -token is set)")
	token := flag.String("token", "", "bearer token to use instead of signing in")
	server := flag.String("server", "http://127.0.0.1:8080", "quiz service base URL")
	limit := flag.Int("limit", 10, "default list size for quizzes and results")
	timeout := flag.Duration("timeout", 60*time.Second, "HTTP timeout")
	flag.Parse()

	if *username == "" && *token == "" {
		fmt.Fprintln(os.Stderr, "error: --username is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := userclient.Run(ctx, os.Stdin, os.Stdout, userclient.Config{
		Username:    *username,
		ServerURL:   *server,
		Token:       *token,
		ListLimit:   *limit,
		HTTPTimeout: *timeout,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
