package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dgallion1/mdsearch/internal/discover"
	"github.com/dgallion1/mdsearch/internal/flatten"
	"github.com/dgallion1/mdsearch/internal/parser"
	"github.com/dgallion1/mdsearch/internal/query"
	"github.com/dgallion1/mdsearch/internal/search"
)

type searchResponse struct {
	Files  []fileMatches `json:"files"`
	Errors []fileError   `json:"errors"`
	Stats  searchStats   `json:"stats"`
}

type fileMatches struct {
	Path    string        `json:"path"`
	Title   string        `json:"title"`
	Matches []matchResult `json:"matches"`
}

type matchResult struct {
	Lineage []string   `json:"lineage"`
	Heading string     `json:"heading"`
	Text    string     `json:"text"`
	Spans   [][2]int   `json:"spans"`
	Terms   [][][2]int `json:"terms"`
}

type fileError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type searchStats struct {
	Files   int   `json:"files"`
	Failed  int   `json:"failed"`
	Matched int   `json:"matched"`
	Matches int   `json:"matches"`
	Bytes   int64 `json:"bytes"`
}

// handleSearch runs a query over the configured folder.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	params := r.URL.Query()
	keywords := params.Get("q")
	if keywords == "" {
		jsonError(w, "q query parameter is required", http.StatusBadRequest)
		return
	}

	q, err := query.Parse(keywords, query.Options{
		Delimiter:     params.Get("delimiter"),
		CaseSensitive: boolParam(params.Get("case_sensitive")),
		FixedStrings:  boolParam(params.Get("fixed_strings")),
	})
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	paths, err := discover.Files(s.cfg.Folder, discover.ParseExtensions(s.cfg.Extensions), s.log)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, discover.ErrNotFound) {
			status = http.StatusNotFound
		}
		jsonError(w, err.Error(), status)
		return
	}

	searcher := search.NewSearcher(search.Config{
		Query:   q,
		Flatten: flatten.Options{ReplaceNewlines: boolParam(params.Get("replace_newlines"))},
		Parser:  parser.Options{PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext},
		Workers: s.cfg.Workers,
	}, s.log)

	resp := searchResponse{Files: []fileMatches{}, Errors: []fileError{}}
	sum, err := searcher.Run(r.Context(), paths, func(res search.FileResult) error {
		if res.Err != nil {
			resp.Errors = append(resp.Errors, fileError{Path: res.Path, Error: res.Err.Error()})
			return nil
		}
		if len(res.Matches) == 0 {
			return nil
		}
		fm := fileMatches{Path: res.Path, Title: res.Title}
		for _, m := range res.Matches {
			fm.Matches = append(fm.Matches, toMatchResult(m))
		}
		resp.Files = append(resp.Files, fm)
		return nil
	})
	if err != nil {
		// Client went away.
		s.log.Warn("search aborted", "error", err)
		return
	}
	resp.Stats = searchStats(sum)
	s.stats.Record(time.Since(start), sum.Files, sum.Matches)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func toMatchResult(m query.Match) matchResult {
	out := matchResult{
		Lineage: m.Record.Lineage,
		Heading: m.Record.Heading,
		Text:    m.Record.Text,
		Spans:   toPairs(m.Merged()),
	}
	if out.Lineage == nil {
		out.Lineage = []string{}
	}
	for _, spans := range m.Spans {
		out.Terms = append(out.Terms, toPairs(spans))
	}
	return out
}

func toPairs(spans []query.Span) [][2]int {
	out := make([][2]int, 0, len(spans))
	for _, s := range spans {
		out = append(out, [2]int{s.Start, s.End})
	}
	return out
}

func boolParam(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
