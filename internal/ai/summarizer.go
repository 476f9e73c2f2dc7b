// Package ai produces plain-language summaries of governance proposals.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bilgisen/daoexplorer/internal/logger"
	"github.com/bilgisen/daoexplorer/internal/metrics"
)

const (
	defaultSummaryTimeout   = 10 * time.Second
	defaultSummaryMaxTokens = 100
	pingMaxTokens           = 5
)

// SummarizerConfig bounds each text-generation call
type SummarizerConfig struct {
	Timeout   time.Duration
	MaxTokens int
}

// Summarizer turns a proposal title and body into a short summary.
// It is safe for concurrent use.
type Summarizer struct {
	generator TextGenerator
	timeout   time.Duration
	maxTokens int
	postProc  *PostProcessor
}

// NewSummarizer creates a summarizer. gen may be nil, in which case every
// summary is UnavailableSummary and no network call is made.
func NewSummarizer(gen TextGenerator, cfg SummarizerConfig) *Summarizer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSummaryTimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultSummaryMaxTokens
	}
	return &Summarizer{
		generator: gen,
		timeout:   cfg.Timeout,
		maxTokens: cfg.MaxTokens,
		postProc:  NewPostProcessor(),
	}
}

// Configured reports whether a text generator is available
func (s *Summarizer) Configured() bool {
	return s.generator != nil
}

// Summarize always returns a usable, non-empty summary. Generation
// failures are logged and replaced by FallbackSummary.
func (s *Summarizer) Summarize(ctx context.Context, title, body string) (summary string) {
	log := logger.Get()

	if s.generator == nil {
		log.Warn().Msg("AI API key not configured, returning fallback summary")
		metrics.Summaries.WithLabelValues(metrics.SourceUnavailable).Inc()
		return UnavailableSummary
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("title", title).
				Interface("panic", r).
				Msg("AI summary panicked, using fallback")
			metrics.Summaries.WithLabelValues(metrics.SourceFallback).Inc()
			summary = FallbackSummary(title, body)
		}
	}()

	text, err := s.generate(ctx, title, body)
	if err != nil {
		log.Warn().
			Err(err).
			Str("title", truncateRunes(title, 30)).
			Msg("AI summary failed, using fallback")
		metrics.Summaries.WithLabelValues(metrics.SourceFallback).Inc()
		return FallbackSummary(title, body)
	}

	log.Info().
		Str("title", truncateRunes(title, 30)).
		Msg("Generated AI summary for proposal")
	metrics.Summaries.WithLabelValues(metrics.SourceAI).Inc()
	return text
}

func (s *Summarizer) generate(ctx context.Context, title, body string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.generator.Complete(ctx, BuildSummaryPrompt(title, body), s.maxTokens)
	metrics.SummaryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}

	return s.postProc.CleanSummary(raw)
}

// TestConnection issues a minimal request and reports whether it succeeded.
// It returns false when no generator is configured.
func (s *Summarizer) TestConnection(ctx context.Context) bool {
	if s.generator == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// A reply without text still proves the credential and endpoint work.
	if _, err := s.generator.Complete(ctx, PromptTemplates.Ping, pingMaxTokens); err != nil && !errors.Is(err, ErrEmptyCompletion) {
		logger.Get().Error().Err(err).Msg("AI connection test failed")
		return false
	}
	return true
}
