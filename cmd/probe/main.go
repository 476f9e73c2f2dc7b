// Command probe checks that the configured text-generation provider
// answers. It exits non-zero when summaries would fall back.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bilgisen/daoexplorer/internal/ai"
	"github.com/bilgisen/daoexplorer/internal/config"
	"github.com/bilgisen/daoexplorer/internal/logger"
)

func main() {
	title := flag.String("title", "", "summarize a sample proposal with this title")
	body := flag.String("body", "", "body of the sample proposal")
	flag.Parse()

	cfg := config.Load()
	if err := logger.Init(logger.Config{
		Level:  cfg.EffectiveLogLevel(),
		Output: "stderr",
		Pretty: true,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	log := logger.Get()

	summarizer := ai.NewSummarizer(ai.NewGenerator(cfg), ai.SummarizerConfig{
		Timeout:   cfg.AITimeout,
		MaxTokens: cfg.AIMaxTokens,
	})
	if !summarizer.Configured() {
		log.Error().Str("provider", cfg.AIProvider).Msg("No AI API key configured")
		os.Exit(1)
	}

	ctx := context.Background()
	if !summarizer.TestConnection(ctx) {
		log.Error().Str("provider", cfg.AIProvider).Str("model", cfg.AIModel).Msg("AI provider is not reachable")
		os.Exit(1)
	}
	log.Info().Str("provider", cfg.AIProvider).Str("model", cfg.AIModel).Msg("AI provider is reachable")

	if *title != "" {
		fmt.Println(summarizer.Summarize(ctx, *title, *body))
	}
}
