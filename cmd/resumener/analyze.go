package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/fordcg/ai-interview-system/internal/config"
	"github.com/fordcg/ai-interview-system/internal/extractor"
	"github.com/fordcg/ai-interview-system/internal/logger"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	logger.Init(logger.Config{Level: cfg.Logger.Level, Format: "pretty", TimeFormat: cfg.Logger.TimeFormat})
	return cfg, nil
}

func handleAnalyzeCommand(w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if *maxLen > 0 {
		cfg.Segmenter.MaxLength = *maxLen
	}
	text, err := readInput()
	if err != nil {
		return err
	}

	engine, closeEngine, err := extractor.NewFromConfig(cfg, logger.Component("extractor"))
	if err != nil {
		return err
	}
	defer closeEngine()

	analysis, err := engine.Analyze(context.Background(), uuid.NewString(), text)
	if err != nil {
		return err
	}
	return writeJSON(w, analysis)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
