/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"

	"github.com/suparena/factorytable/errors"
	"go.uber.org/zap"
)

// NewLogger builds a zap logger from cfg. Development mode uses the console
// encoder; otherwise output is JSON.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = level

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

func parseLevel(s string) (zap.AtomicLevel, error) {
	if s == "" {
		return zap.NewAtomicLevelAt(zap.InfoLevel), nil
	}
	level, err := zap.ParseAtomicLevel(s)
	if err != nil {
		return zap.AtomicLevel{}, errors.NewValidationError("log.level", err.Error())
	}
	return level, nil
}
