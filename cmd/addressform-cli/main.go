package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-addressform/internal/config"
	"github.com/goliatone/go-addressform/pkg/prompt"
)

func main() {
	envFile := flag.String("env", "", "dotenv file to load before reading the environment (.env if empty)")
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "addressform: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &app{
		cfg:    cfg,
		driver: prompt.NewSurveyDriver(os.Stderr),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	if err := app.run(ctx); err != nil {
		if errors.Is(err, prompt.ErrAborted) || errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "addressform: %v\n", err)
		if errors.Is(err, errIncomplete) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
