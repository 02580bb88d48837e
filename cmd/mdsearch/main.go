package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dgallion1/mdsearch/internal/api"
	"github.com/dgallion1/mdsearch/internal/config"
	"github.com/dgallion1/mdsearch/internal/discover"
	"github.com/dgallion1/mdsearch/internal/flatten"
	"github.com/dgallion1/mdsearch/internal/parser"
	"github.com/dgallion1/mdsearch/internal/query"
	"github.com/dgallion1/mdsearch/internal/report"
	"github.com/dgallion1/mdsearch/internal/search"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

const description = `Search Markdown outlines.

Every heading is searched together with everything nested beneath it, and
matches are printed with the chain of headings that leads to them.`

// errNoMatches maps to exit status 1, like grep.
var errNoMatches = errors.New("no matches")

type cli struct {
	Verbose bool `short:"v" help:"Log per-file progress to stderr."`

	Search searchCmd `cmd:"" default:"withargs" help:"Search files for keywords (default)."`
	Serve  serveCmd  `cmd:"" help:"Serve the search over HTTP."`
}

type searchCmd struct {
	Keywords        string `short:"k" required:"" help:"Keywords or regexes to search for; all must match."`
	Delimiter       string `short:"d" help:"Delimiter between keywords (default: whitespace)."`
	FileFolder      string `short:"f" name:"file-folder" default:"${folder}" help:"File or folder to search."`
	CaseSensitive   bool   `short:"c" help:"Match case."`
	Workers         int    `short:"t" default:"${workers}" help:"Files searched concurrently."`
	Extensions      string `short:"e" default:"${extensions}" help:"Comma-separated extensions of files to search."`
	ReplaceNewlines bool   `short:"r" help:"Join lines with a literal backslash-n so patterns can span lines."`
	FixedStrings    bool   `short:"F" help:"Treat keywords as literal strings, not regexes."`
	Color           string `enum:"auto,always,never" default:"auto" help:"Colorize output (${enum})."`
}

type serveCmd struct{}

func main() {
	cfg := config.Load()

	var c cli
	kctx := kong.Parse(&c,
		kong.Name("mdsearch"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Vars{
			"folder":     cfg.Folder,
			"workers":    fmt.Sprint(cfg.Workers),
			"extensions": cfg.Extensions,
		},
	)

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	err := kctx.Run(log, cfg)
	switch {
	case err == nil:
	case errors.Is(err, errNoMatches):
		os.Exit(1)
	default:
		log.Error(err.Error())
		os.Exit(2)
	}
}

func (s *searchCmd) Run(log *slog.Logger, cfg config.Config) error {
	q, err := query.Parse(s.Keywords, query.Options{
		Delimiter:     s.Delimiter,
		CaseSensitive: s.CaseSensitive,
		FixedStrings:  s.FixedStrings,
	})
	if err != nil {
		return err
	}
	patterns := make([]string, len(q.Terms))
	for i, p := range q.Terms {
		patterns[i] = p.String()
	}
	log.Debug("compiled query", "patterns", patterns)

	paths, err := discover.Files(s.FileFolder, discover.ParseExtensions(s.Extensions), log)
	if err != nil {
		return err
	}
	log.Debug("discovered files", "root", s.FileFolder, "count", len(paths))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	searcher := search.NewSearcher(search.Config{
		Query:   q,
		Flatten: flatten.Options{ReplaceNewlines: s.ReplaceNewlines},
		Parser:  parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
		Workers: s.Workers,
	}, log)

	rep := report.New(os.Stdout, report.Options{Color: useColor(s.Color)})
	sum, err := searcher.Run(ctx, paths, func(res search.FileResult) error {
		if res.Err != nil {
			return nil
		}
		return rep.File(res.Path, res.Matches)
	})
	if err != nil {
		return err
	}

	log.Debug("search complete",
		"files", humanize.Comma(int64(sum.Files)),
		"failed", sum.Failed,
		"read", humanize.Bytes(uint64(sum.Bytes)),
		"matches", humanize.Comma(int64(sum.Matches)),
	)
	if sum.Matches == 0 {
		return errNoMatches
	}
	return nil
}

func (s *serveCmd) Run(log *slog.Logger, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	// The server logs JSON to stdout, like any other long-running service.
	log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewServer(log, cfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting mdsearch", "port", cfg.Port, "folder", cfg.Folder)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		// color.NoColor reflects NO_COLOR and whether stdout is a terminal.
		return !color.NoColor
	}
}
