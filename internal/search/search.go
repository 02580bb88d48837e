package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/mdsearch/internal/flatten"
	"github.com/dgallion1/mdsearch/internal/parser"
	"github.com/dgallion1/mdsearch/internal/query"
	"github.com/dustin/go-humanize"
)

// Config controls a search run.
type Config struct {
	Query   *query.Query
	Flatten flatten.Options
	Parser  parser.Options
	Workers int // Files processed concurrently; 1 is strictly sequential.
}

// FileResult is the outcome of searching one document. Err is set when the
// file could not be read or decoded; such errors never abort a run.
type FileResult struct {
	Path    string
	Title   string
	Size    int64
	Records int
	Matches []query.Match
	Err     error
}

// Searcher runs the parse, flatten and evaluate pipeline over documents.
type Searcher struct {
	cfg Config
	log *slog.Logger
}

func NewSearcher(cfg Config, log *slog.Logger) *Searcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Searcher{cfg: cfg, log: log}
}

// SearchFile opens and searches a single document.
func (s *Searcher) SearchFile(ctx context.Context, path string) FileResult {
	res := FileResult{Path: path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	f, err := os.Open(path)
	if err != nil {
		res.Err = fmt.Errorf("open: %w", err)
		return res
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		if info.IsDir() {
			res.Err = fmt.Errorf("open %s: is a directory", path)
			return res
		}
		res.Size = info.Size()
	}

	s.searchReader(f, &res)
	if res.Err == nil {
		s.log.Debug("searched file",
			"path", path,
			"size", humanize.Bytes(uint64(res.Size)),
			"records", res.Records,
			"matches", len(res.Matches),
		)
	}
	return res
}

func (s *Searcher) searchReader(r io.Reader, res *FileResult) {
	p := parser.ForFile(res.Path, s.cfg.Parser)
	tree, err := p.Parse(r, res.Path)
	if err != nil {
		res.Err = err
		return
	}
	res.Title = tree.Title

	records := flatten.Tree(tree, s.cfg.Flatten)
	res.Records = len(records)
	res.Matches = s.cfg.Query.Evaluate(records)
}
