package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"avon-hello/logger"
)

// RoundingMode selects how each line is rounded to cents
type RoundingMode string

const (
	// RoundCeil always rounds up to the next cent
	RoundCeil RoundingMode = "ceil"
	// RoundHalfUp is standard rounding, used by the earliest invoices
	RoundHalfUp RoundingMode = "half_up"
)

// Config is the pricing configuration. Amounts are taken as given, so a zero
// tax rate or processing charge means none. An empty Rounding means RoundCeil.
type Config struct {
	// TaxRatePercent is applied to taxed lines, e.g. 9.386
	TaxRatePercent decimal.Decimal `json:"taxRatePercent"`
	// ProcessingCharge is added once per line flagged for processing
	ProcessingCharge decimal.Decimal `json:"processingCharge"`
	Rounding         RoundingMode    `json:"rounding"`
}

// DefaultConfig returns the current rates: 9.386% tax, $0.50 processing, round up
func DefaultConfig() Config {
	return Config{
		TaxRatePercent:   decimal.RequireFromString("9.386"),
		ProcessingCharge: decimal.RequireFromString("0.50"),
		Rounding:         RoundCeil,
	}
}

// Engine prices order lines
type Engine struct {
	config Config
	// 1 + rate, precomputed
	taxMultiplier decimal.Decimal
}

var defaultEngine = mustEngine(DefaultConfig())

// NewEngine creates a pricing engine from cfg
func NewEngine(cfg Config) (*Engine, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}
	return &Engine{
		config:        cfg,
		taxMultiplier: decimal.NewFromInt(1).Add(cfg.TaxRatePercent.Shift(-2)),
	}, nil
}

func mustEngine(cfg Config) *Engine {
	e, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// LoadEngine reads a JSON pricing config from configPath.
// An empty path or a missing file yields the default engine.
func LoadEngine(configPath string) (*Engine, error) {
	if configPath == "" {
		return defaultEngine, nil
	}

	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("⚠️ PricingEngine: config not found, using defaults", zap.String("path", configPath))
		return defaultEngine, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing config: %w", err)
	}

	var file fileConfig
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse pricing config: %w", err)
	}

	engine, err := NewEngine(file.apply(DefaultConfig()))
	if err != nil {
		return nil, err
	}
	logger.Info("✅ PricingEngine: loaded pricing config",
		zap.String("path", configPath),
		zap.String("taxRatePercent", engine.config.TaxRatePercent.String()),
		zap.String("rounding", string(engine.config.Rounding)))
	return engine, nil
}

// fileConfig is the on-disk form of Config. Fields missing from the file keep
// their default value.
type fileConfig struct {
	TaxRatePercent   *decimal.Decimal `json:"taxRatePercent"`
	ProcessingCharge *decimal.Decimal `json:"processingCharge"`
	Rounding         RoundingMode     `json:"rounding"`
}

func (f fileConfig) apply(cfg Config) Config {
	if f.TaxRatePercent != nil {
		cfg.TaxRatePercent = *f.TaxRatePercent
	}
	if f.ProcessingCharge != nil {
		cfg.ProcessingCharge = *f.ProcessingCharge
	}
	if f.Rounding != "" {
		cfg.Rounding = f.Rounding
	}
	return cfg
}

// Default returns the engine with the current rates
func Default() *Engine {
	return defaultEngine
}

func validateConfig(cfg *Config) error {
	if cfg.Rounding == "" {
		cfg.Rounding = RoundCeil
	}
	if cfg.TaxRatePercent.IsNegative() || cfg.TaxRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("taxRatePercent must be between 0 and 100")
	}
	if cfg.ProcessingCharge.IsNegative() {
		return fmt.Errorf("processingCharge must not be negative")
	}
	if cfg.Rounding != RoundCeil && cfg.Rounding != RoundHalfUp {
		return fmt.Errorf("rounding must be %q or %q", RoundCeil, RoundHalfUp)
	}
	return nil
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.config
}

func (e *Engine) round(d decimal.Decimal) decimal.Decimal {
	if e.config.Rounding == RoundHalfUp {
		return d.Round(2)
	}
	return d.RoundCeil(2)
}
