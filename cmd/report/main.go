package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/mzelenka/debate-pulse/internal/corpus"
	"github.com/mzelenka/debate-pulse/internal/render"
	"github.com/mzelenka/debate-pulse/internal/report"
	"github.com/mzelenka/debate-pulse/internal/sentiment"
	"github.com/mzelenka/debate-pulse/internal/textproc"
	"github.com/mzelenka/debate-pulse/internal/topics"
	"github.com/mzelenka/debate-pulse/pkg/config"
)

func main() {
	var (
		cfgPath = flag.String("config", "config.yaml", "Config file (optional, flags override its values)")
		input   = flag.String("input", "", "Input CSV path (overrides config)")
		output  = flag.String("output", "", "Output directory for image artifacts (overrides config)")
	)
	flag.Parse()

	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", *cfgPath))
	}
	if *input != "" {
		cfg.Input.Path = *input
	}
	if *output != "" {
		cfg.Report.OutputDir = *output
	}

	// Initialize the polarity scorer; its absence is a fatal configuration
	// error, never a silent degrade.
	var scorer sentiment.Scorer
	switch cfg.Scorer.Backend {
	case "openai":
		logger.Info("Using OpenAI scorer", zap.String("model", cfg.Scorer.OpenAI.Model))
		scorer = sentiment.NewGPTScorer(
			cfg.Scorer.OpenAI.APIKey,
			cfg.Scorer.OpenAI.Model,
			cfg.Scorer.OpenAI.MaxTokens,
			cfg.Scorer.OpenAI.Temperature,
			logger,
		)
	default:
		logger.Info("Using VADER scorer")
		scorer, err = sentiment.NewVADERScorer()
		if err != nil {
			logger.Fatal("Failed to initialize scorer", zap.Error(err))
		}
	}

	classifier := sentiment.NewClassifier(
		scorer,
		time.Duration(cfg.Scorer.TimeoutSeconds)*time.Second,
		logger,
	)
	normalizer := textproc.NewNormalizer(cfg.Report.ExtraStopTerms...)
	summarizer := topics.New(topics.Config{
		TopN:               cfg.Topics.TopTerms,
		CollocationCount:   cfg.Topics.Collocations,
		CollocationMinFreq: cfg.Topics.CollocationMinFreq,
		ConcordanceTerms:   cfg.Topics.ConcordanceTerms,
		ConcordanceLines:   cfg.Topics.ConcordanceLines,
		ConcordanceWindow:  cfg.Topics.ConcordanceWindow,
	}, logger)

	driver := report.NewDriver(
		report.Options{
			OutputDir:      cfg.Report.OutputDir,
			TopZones:       cfg.Report.TopZones,
			MinGroupSize:   cfg.Report.MinGroupSize,
			ChartThreshold: cfg.Report.ChartThreshold,
			Workers:        cfg.Report.Workers,
			TimeBucket:     time.Duration(cfg.Report.TimeBucketMinutes) * time.Minute,
			Unattributed:   cfg.Report.Unattributed,
		},
		corpus.NewLoader(logger),
		normalizer,
		classifier,
		summarizer,
		render.New(logger),
		logger,
	)

	if err := driver.Run(context.Background(), cfg.Input.Path); err != nil {
		logger.Fatal("Run failed", zap.Error(err), zap.String("input", cfg.Input.Path))
	}
}
