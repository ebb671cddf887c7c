package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/promptclass"
	"github.com/poiesic/promptclass/api"
	"github.com/poiesic/promptclass/core"
	"github.com/poiesic/promptclass/metrics"
	"github.com/poiesic/promptclass/reembed"
	"github.com/poiesic/promptclass/report"
	"github.com/poiesic/promptclass/storage/badger"
	"github.com/urfave/cli/v2"
)

const (
	replBanner = "Bayesian Keyword Similarity Analysis. Please keep the prompt size minimum, upto 20 words max.\n" +
		"Type 'exit' to quit the program.\n\n"
	replPrompt = "Enter the text for keyword extraction: "
	replExit   = "Exiting program."
)

// classifier is the part of the Service the interactive commands use.
type classifier interface {
	Classify(ctx context.Context, text string) (*core.QueryResult, error)
}

// outputOptions controls how a result is printed.
type outputOptions struct {
	compare  [2]string
	keywords bool
	// source names the keyword file in "not recognized" messages.
	source string
}

func outputOptionsFromFlags(c *cli.Context) (outputOptions, error) {
	compare, err := parseCompare(c.String("compare"))
	if err != nil {
		return outputOptions{}, err
	}
	return outputOptions{
		compare:  compare,
		keywords: c.Bool("keywords"),
		source:   filepath.Base(c.String("config")),
	}, nil
}

// parseCompare splits "a,b" into two category names.
func parseCompare(value string) ([2]string, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return [2]string{}, fmt.Errorf("compare must name exactly two categories, got %q", value)
	}
	a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		return [2]string{}, fmt.Errorf("compare must name exactly two categories, got %q", value)
	}
	return [2]string{a, b}, nil
}

// printResult writes the report followed by the winner of the compared pair.
func printResult(out io.Writer, result *core.QueryResult, opts outputOptions) error {
	presenter := report.NewPresenter(result)

	var displayOpts []report.DisplayOption
	if opts.keywords {
		displayOpts = append(displayOpts, report.WithKeywords())
	}
	if err := presenter.Display(out, displayOpts...); err != nil {
		return err
	}

	winner, err := presenter.Winner(opts.compare[0], opts.compare[1])
	if errors.Is(err, report.ErrCategoryNotRecognized) {
		_, err = fmt.Fprintf(out, "%s Or %s not in defined category in %s\n", opts.compare[0], opts.compare[1], opts.source)
		return err
	}
	_, err = fmt.Fprintln(out, winner)
	return err
}

func classifyCommand(c *cli.Context) error {
	prompt := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("a prompt is required")
	}

	opts, err := outputOptionsFromFlags(c)
	if err != nil {
		return err
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.Classify(c.Context, prompt)
	switch core.StatusOf(err) {
	case core.StatusOK:
		return printResult(c.App.Writer, result, opts)
	case core.StatusInvalidPrompt, core.StatusNoRelevantKeywords:
		return cli.Exit(err.Error(), 2)
	default:
		return fmt.Errorf("classification failed: %w", err)
	}
}

func replCommand(c *cli.Context) error {
	opts, err := outputOptionsFromFlags(c)
	if err != nil {
		return err
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	return runREPL(c.Context, svc, c.App.Reader, c.App.Writer, opts)
}

// runREPL reads prompts line by line until "exit" or end of input.
func runREPL(ctx context.Context, svc classifier, in io.Reader, out io.Writer, opts outputOptions) error {
	fmt.Fprint(out, replBanner)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, replPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			fmt.Fprintln(out, replExit)
			return scanner.Err()
		}

		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.EqualFold(strings.TrimSpace(text), "exit") {
			fmt.Fprintln(out, replExit)
			return nil
		}

		result, err := svc.Classify(ctx, text)
		switch core.StatusOf(err) {
		case core.StatusOK:
			if err := printResult(out, result, opts); err != nil {
				return err
			}
		case core.StatusInvalidPrompt, core.StatusNoRelevantKeywords:
			fmt.Fprintln(out, err.Error())
		default:
			slog.Error("classification failed", "err", err)
			fmt.Fprintf(out, "Error: %v\n", err)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func serveCommand(c *cli.Context) error {
	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		gin.SetMode(gin.ReleaseMode)
	}

	recorder := metrics.NewRecorder()
	svc, err := newService(c, promptclass.WithMetrics(recorder))
	if err != nil {
		return err
	}
	defer svc.Close()

	router := api.NewRouter(svc,
		api.WithLogger(slog.Default()),
		api.WithMetricsHandler(recorder.Handler()))

	return api.ListenAndServe(ctx, c.String("addr"), router, slog.Default())
}

func reembedCommand(c *cli.Context) error {
	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cacheDir := c.String("cache-dir")
	if cacheDir == "" {
		return fmt.Errorf("cache-dir is required")
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		Force:          c.Bool("force"),
	}
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	settings, err := loadSettings(c)
	if err != nil {
		return err
	}
	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	provider, err := newProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedding provider: %w", err)
	}
	defer provider.Close()

	backend, err := badger.OpenBackend(cacheDir, false)
	if err != nil {
		return fmt.Errorf("failed to open vector cache: %w", err)
	}
	cache, err := badger.NewVectorCache(backend)
	if err != nil {
		backend.Close()
		return fmt.Errorf("failed to create vector cache: %w", err)
	}
	defer cache.Close()

	if c.Bool("purge") {
		if err := cache.Purge(ctx, provider.Model()); err != nil {
			return fmt.Errorf("failed to purge vector cache: %w", err)
		}
	}

	progress := c.App.ErrWriter
	reembedder, err := reembed.NewReembedder(cache, provider.Embedder(), provider.Model(),
		reembed.Vocabulary(settings.Categories), reembedConfig, progress)
	if err != nil {
		return err
	}

	fmt.Fprintf(progress, "Vector cache: %s\n", cacheDir)
	fmt.Fprintf(progress, "Embedding provider: %s\n", aiConfig.Provider)
	fmt.Fprintf(progress, "Embedding model: %s\n", provider.Model())
	fmt.Fprintln(progress)

	if _, err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}
