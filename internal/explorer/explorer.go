// Package explorer fetches a DAO's proposals and attaches a summary to each.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bilgisen/daoexplorer/internal/ai"
	"github.com/bilgisen/daoexplorer/internal/logger"
	"github.com/bilgisen/daoexplorer/internal/metrics"
	"github.com/bilgisen/daoexplorer/internal/models"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyDAOName is returned before any fetch when the name is blank.
var ErrEmptyDAOName = errors.New("DAO name is required")

// minSummarizableRunes is the trimmed body length a proposal needs
// before it is sent to the summarizer.
const minSummarizableRunes = 20

// ProposalSource fetches proposals of a Snapshot space.
type ProposalSource interface {
	FetchProposals(ctx context.Context, daoName string, limit int) ([]models.Proposal, error)
}

// Summarizer produces a summary for a proposal. Implementations should not
// panic; a panic is still contained to the proposal that caused it.
type Summarizer interface {
	Summarize(ctx context.Context, title, body string) string
}

// Config tunes an Explorer
type Config struct {
	Limit          int
	MaxConcurrency int
}

// Result is what the handlers render
type Result struct {
	DAOName   string
	Proposals []models.Proposal
}

// Explorer orchestrates one request. It holds no per-request state.
type Explorer struct {
	source     ProposalSource
	summarizer Summarizer
	limit      int
	workers    int
}

func New(source ProposalSource, summarizer Summarizer, cfg Config) *Explorer {
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 1
	}
	return &Explorer{
		source:     source,
		summarizer: summarizer,
		limit:      cfg.Limit,
		workers:    cfg.MaxConcurrency,
	}
}

// Explore validates rawName, fetches the DAO's proposals and annotates
// every one of them with a non-empty AISummary, keeping source order.
func (e *Explorer) Explore(ctx context.Context, rawName string) (*Result, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return nil, ErrEmptyDAOName
	}

	proposals, err := e.source.FetchProposals(ctx, name, e.limit)
	if err != nil {
		logger.Get().Error().Err(err).Str("dao", name).Msg("Error fetching proposals")
		return nil, err
	}

	e.annotate(ctx, proposals)

	return &Result{DAOName: name, Proposals: proposals}, nil
}

func (e *Explorer) annotate(ctx context.Context, proposals []models.Proposal) {
	g := new(errgroup.Group)
	g.SetLimit(e.workers)

	for i := range proposals {
		p := &proposals[i]
		g.Go(func() error {
			p.AISummary = e.summarize(ctx, p)
			return nil
		})
	}

	// every task returns nil
	_ = g.Wait()
}

func (e *Explorer) summarize(ctx context.Context, p *models.Proposal) (summary string) {
	if utf8.RuneCountInString(strings.TrimSpace(p.Body)) <= minSummarizableRunes {
		metrics.Summaries.WithLabelValues(metrics.SourceLimited).Inc()
		return LimitedSummary(p.Title)
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Get().Warn().
				Str("id", p.ID).
				Interface("panic", r).
				Msg("Summary generation failed for proposal")
			metrics.Summaries.WithLabelValues(metrics.SourceRecovered).Inc()
			summary = ai.FallbackSummary(p.Title, p.Body)
		}
	}()

	summary = e.summarizer.Summarize(ctx, p.Title, p.Body)
	if strings.TrimSpace(summary) == "" {
		metrics.Summaries.WithLabelValues(metrics.SourceRecovered).Inc()
		summary = ai.FallbackSummary(p.Title, p.Body)
	}
	return summary
}

// LimitedSummary is attached to proposals with too little text to summarize.
func LimitedSummary(title string) string {
	return fmt.Sprintf("Summary: %s. This governance proposal has limited description available.", title)
}

// NoProposalsMessage is shown when a DAO has no proposals.
func NoProposalsMessage(name string) string {
	return "No proposals found for DAO: " + name
}
