// Package config loads and validates ckg configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Config represents the complete ckg configuration.
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Storage     StorageConfig     `json:"storage" mapstructure:"storage"`
	Scip        ScipConfig        `json:"scip" mapstructure:"scip"`
	Synthesizer SynthesizerConfig `json:"synthesizer" mapstructure:"synthesizer"`
	Query       QueryConfig       `json:"query" mapstructure:"query"`
	Propagation PropagationConfig `json:"propagation" mapstructure:"propagation"`
	Risk        RiskConfig        `json:"risk" mapstructure:"risk"`
	Logging     LoggingConfig     `json:"logging" mapstructure:"logging"`
}

// StorageConfig controls the sqlite graph store location.
type StorageConfig struct {
	DirName string `json:"dirName" mapstructure:"dirName"` // default ".ckg"
}

// ScipConfig locates the optional SCIP index used for structural edges.
type ScipConfig struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	IndexPath string `json:"indexPath" mapstructure:"indexPath"`
}

// SynthesizerConfig tunes edge synthesis.
type SynthesizerConfig struct {
	MinEdgeWeight    float64 `json:"minEdgeWeight" mapstructure:"minEdgeWeight"`
	MaxCommits       int     `json:"maxCommits" mapstructure:"maxCommits"`
	MinCoChange      float64 `json:"minCoChange" mapstructure:"minCoChange"`
	MinCoChangeCount int     `json:"minCoChangeCount" mapstructure:"minCoChangeCount"`
	MinOwnership     float64 `json:"minOwnership" mapstructure:"minOwnership"`
	DebtThreshold    float64 `json:"debtThreshold" mapstructure:"debtThreshold"`
	DebtSimilarity   float64 `json:"debtSimilarity" mapstructure:"debtSimilarity"`
}

// QueryConfig tunes the analytical queries.
type QueryConfig struct {
	MinSimilarity  float64 `json:"minSimilarity" mapstructure:"minSimilarity"`
	MinClusterSize int     `json:"minClusterSize" mapstructure:"minClusterSize"`
	MinDebt        float64 `json:"minDebt" mapstructure:"minDebt"`
	HotspotLimit   int     `json:"hotspotLimit" mapstructure:"hotspotLimit"`
	MinOwnership   float64 `json:"minOwnership" mapstructure:"minOwnership"`
	ImpactMaxDepth int     `json:"impactMaxDepth" mapstructure:"impactMaxDepth"`
}

// PropagationConfig tunes cross-graph importance propagation.
type PropagationConfig struct {
	MinImportanceThreshold float64 `json:"minImportanceThreshold" mapstructure:"minImportanceThreshold"`
	ForwardWeight          float64 `json:"forwardWeight" mapstructure:"forwardWeight"`
	Alpha                  float64 `json:"alpha" mapstructure:"alpha"`
	NormalizeOutput        bool    `json:"normalizeOutput" mapstructure:"normalizeOutput"`
	MaxPropagationDepth    int     `json:"maxPropagationDepth" mapstructure:"maxPropagationDepth"`
	DampingOverridesPath   string  `json:"dampingOverridesPath" mapstructure:"dampingOverridesPath"`
}

// RiskConfig tunes epistemic risk detection.
type RiskConfig struct {
	MinRiskThreshold float64 `json:"minRiskThreshold" mapstructure:"minRiskThreshold"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"` // "json" or "human"
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Storage:  StorageConfig{DirName: ".ckg"},
		Scip:     ScipConfig{Enabled: false, IndexPath: "index.scip"},
		Synthesizer: SynthesizerConfig{
			MinEdgeWeight:    0.1,
			MaxCommits:       500,
			MinCoChange:      0.1,
			MinCoChangeCount: 2,
			MinOwnership:     0.05,
			DebtThreshold:    50,
			DebtSimilarity:   0.6,
		},
		Query: QueryConfig{
			MinSimilarity:  0.7,
			MinClusterSize: 2,
			MinDebt:        30,
			HotspotLimit:   20,
			MinOwnership:   0.1,
			ImpactMaxDepth: 3,
		},
		Propagation: PropagationConfig{
			MinImportanceThreshold: 0.01,
			ForwardWeight:          0.7,
			Alpha:                  0.7,
			NormalizeOutput:        true,
			MaxPropagationDepth:    10,
		},
		Risk: RiskConfig{
			MinRiskThreshold: 0.3,
		},
		Logging: LoggingConfig{Format: "human", Level: "info"},
	}
}

// Load reads config from <repoRoot>/.ckg/config.json, falling back to
// defaults when absent. CKG_* environment variables override file values.
func Load(repoRoot string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("repoRoot", repoRoot)
	v.SetDefault("storage.dirName", def.Storage.DirName)
	v.SetDefault("scip.enabled", def.Scip.Enabled)
	v.SetDefault("scip.indexPath", def.Scip.IndexPath)
	v.SetDefault("synthesizer.minEdgeWeight", def.Synthesizer.MinEdgeWeight)
	v.SetDefault("synthesizer.maxCommits", def.Synthesizer.MaxCommits)
	v.SetDefault("synthesizer.minCoChange", def.Synthesizer.MinCoChange)
	v.SetDefault("synthesizer.minCoChangeCount", def.Synthesizer.MinCoChangeCount)
	v.SetDefault("synthesizer.minOwnership", def.Synthesizer.MinOwnership)
	v.SetDefault("synthesizer.debtThreshold", def.Synthesizer.DebtThreshold)
	v.SetDefault("synthesizer.debtSimilarity", def.Synthesizer.DebtSimilarity)
	v.SetDefault("query.minSimilarity", def.Query.MinSimilarity)
	v.SetDefault("query.minClusterSize", def.Query.MinClusterSize)
	v.SetDefault("query.minDebt", def.Query.MinDebt)
	v.SetDefault("query.hotspotLimit", def.Query.HotspotLimit)
	v.SetDefault("query.minOwnership", def.Query.MinOwnership)
	v.SetDefault("query.impactMaxDepth", def.Query.ImpactMaxDepth)
	v.SetDefault("propagation.minImportanceThreshold", def.Propagation.MinImportanceThreshold)
	v.SetDefault("propagation.forwardWeight", def.Propagation.ForwardWeight)
	v.SetDefault("propagation.alpha", def.Propagation.Alpha)
	v.SetDefault("propagation.normalizeOutput", def.Propagation.NormalizeOutput)
	v.SetDefault("propagation.maxPropagationDepth", def.Propagation.MaxPropagationDepth)
	v.SetDefault("propagation.dampingOverridesPath", def.Propagation.DampingOverridesPath)
	v.SetDefault("risk.minRiskThreshold", def.Risk.MinRiskThreshold)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".ckg"))
	v.SetEnvPrefix("CKG")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.RepoRoot == "" {
		cfg.RepoRoot = repoRoot
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Synthesizer.MinEdgeWeight < 0 || c.Synthesizer.MinEdgeWeight > 1 {
		return fmt.Errorf("synthesizer.minEdgeWeight must be in [0,1], got %f", c.Synthesizer.MinEdgeWeight)
	}
	if c.Propagation.ForwardWeight < 0 || c.Propagation.ForwardWeight > 1 {
		return fmt.Errorf("propagation.forwardWeight must be in [0,1], got %f", c.Propagation.ForwardWeight)
	}
	if c.Propagation.Alpha < 0 || c.Propagation.Alpha > 1 {
		return fmt.Errorf("propagation.alpha must be in [0,1], got %f", c.Propagation.Alpha)
	}
	if c.Query.MinClusterSize < 1 {
		return fmt.Errorf("query.minClusterSize must be >= 1, got %d", c.Query.MinClusterSize)
	}
	if c.Query.ImpactMaxDepth < 1 {
		return fmt.Errorf("query.impactMaxDepth must be >= 1, got %d", c.Query.ImpactMaxDepth)
	}
	return nil
}

// DampingOverrides maps cross-graph edge type names to damping factors.
type DampingOverrides struct {
	Damping map[string]float64 `toml:"damping"`
}

// LoadDampingOverrides reads a TOML file of per-relation damping factors.
// A missing path yields an empty override set.
func LoadDampingOverrides(path string) (*DampingOverrides, error) {
	overrides := &DampingOverrides{Damping: map[string]float64{}}
	if path == "" {
		return overrides, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return overrides, nil
	}

	if _, err := toml.DecodeFile(path, overrides); err != nil {
		return nil, fmt.Errorf("failed to parse damping overrides %s: %w", path, err)
	}
	for name, d := range overrides.Damping {
		if d < 0 || d > 1 {
			return nil, fmt.Errorf("damping override %q out of range: %f", name, d)
		}
	}
	return overrides, nil
}

// RenderTOML renders the effective configuration as TOML for `ckg config show`.
func (c *Config) RenderTOML() (string, error) {
	data, err := gotoml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
