// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"time"

	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/squad"
	"github.com/nawaneetkmr-cyber/fpl-tactix/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for fpl-tactix.
type Configuration struct {
	Optimizer OptimizerConfig `yaml:"optimizer,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
	Output    OutputConfig    `yaml:"output,omitempty"`
	Server    ServerConfig    `yaml:"server,omitempty"`
}

// OptimizerConfig is the immutable tunable set handed to the engine for one
// solve. It travels by value; concurrent solves may carry different copies.
type OptimizerConfig struct {
	// Horizon is the number of future gameweeks to project over.
	Horizon int `yaml:"horizon,omitempty"`
	// Gamma is the per-gameweek geometric decay factor, in (0, 1].
	Gamma float64 `yaml:"gamma,omitempty"`
	// MaxTransfers caps transfers out per solve.
	MaxTransfers int `yaml:"maxTransfers,omitempty"`
	// HitPenalty is the points cost per transfer beyond the free allowance.
	HitPenalty float64 `yaml:"hitPenalty,omitempty"`
	// BenchWeight is the objective weight of non-starting squad members.
	BenchWeight float64 `yaml:"benchWeight,omitempty"`
	// InertiaThreshold is the net-improvement floor below which rolling
	// the transfer is recommended.
	InertiaThreshold float64 `yaml:"inertiaThreshold,omitempty"`
	// SolverTimeLimitSeconds caps exact-solver wall-clock time.
	SolverTimeLimitSeconds int `yaml:"solverTimeLimitSeconds,omitempty"`
	// BudgetEpsilon is added to the budget right-hand side to absorb
	// floating-point rounding at exact-budget boundaries.
	BudgetEpsilon float64 `yaml:"budgetEpsilon,omitempty"`
	// TopSuggestions is how many heuristic candidates are returned.
	TopSuggestions int `yaml:"topSuggestions,omitempty"`
	// Rules is the squad composition ruleset. Not file-configurable;
	// callers may override programmatically before a solve.
	Rules squad.Rules `yaml:"-"`
}

// LoggingConfig holds logging configuration options.
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, json
}

// ServerConfig holds HTTP API configuration options.
type ServerConfig struct {
	Address        string `yaml:"address,omitempty"`
	MaxUploadBytes int64  `yaml:"maxUploadBytes,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there, with defaults applied for anything unset.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// DefaultConfiguration returns a configuration with every default applied,
// for callers running without a config file.
func DefaultConfiguration() *Configuration {
	conf := &Configuration{}
	conf.ApplyDefaults()
	return conf
}

// ApplyDefaults fills unset fields with the standard defaults.
func (c *Configuration) ApplyDefaults() {
	c.Optimizer.ApplyDefaults()
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
	if c.Server.Address == "" {
		c.Server.Address = constants.DefaultServerAddress
	}
	if c.Server.MaxUploadBytes <= 0 {
		c.Server.MaxUploadBytes = constants.DefaultMaxUploadSizeBytes
	}
}

// ApplyDefaults fills unset optimizer tunables with the standard defaults.
func (o *OptimizerConfig) ApplyDefaults() {
	if o.Horizon <= 0 {
		o.Horizon = constants.DefaultHorizon
	}
	if o.Gamma <= 0 || o.Gamma > 1 {
		o.Gamma = constants.DefaultGamma
	}
	if o.MaxTransfers <= 0 {
		o.MaxTransfers = constants.DefaultMaxTransfers
	}
	if o.HitPenalty <= 0 {
		o.HitPenalty = constants.DefaultHitPenalty
	}
	if o.BenchWeight <= 0 {
		o.BenchWeight = constants.DefaultBenchWeight
	}
	if o.InertiaThreshold <= 0 {
		o.InertiaThreshold = constants.DefaultInertiaThreshold
	}
	if o.SolverTimeLimitSeconds <= 0 {
		o.SolverTimeLimitSeconds = int(constants.DefaultSolverTimeLimit / time.Second)
	}
	if o.BudgetEpsilon <= 0 {
		o.BudgetEpsilon = constants.DefaultBudgetEpsilon
	}
	if o.TopSuggestions <= 0 {
		o.TopSuggestions = constants.DefaultTopSuggestions
	}
	if o.Rules.SquadSize == 0 {
		o.Rules = squad.DefaultRules()
	}
}

// SolverTimeLimit returns the solver wall-clock budget as a duration.
func (o OptimizerConfig) SolverTimeLimit() time.Duration {
	return time.Duration(o.SolverTimeLimitSeconds) * time.Second
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for values that are legal but probably unintended.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	o := c.Optimizer
	if o.Horizon > 10 {
		warnings = append(warnings, fmt.Sprintf("horizon of %d gameweeks is unusually long; projections that far out carry little signal", o.Horizon))
	}
	if o.Gamma < 0.5 {
		warnings = append(warnings, fmt.Sprintf("gamma of %.2f discounts future gameweeks very aggressively", o.Gamma))
	}
	if o.MaxTransfers > 8 {
		warnings = append(warnings, fmt.Sprintf("max transfers of %d will slow exact solves considerably", o.MaxTransfers))
	}
	if o.BenchWeight >= 1 {
		warnings = append(warnings, fmt.Sprintf("bench weight of %.2f values bench players as highly as starters", o.BenchWeight))
	}
	if o.SolverTimeLimitSeconds > 120 {
		warnings = append(warnings, fmt.Sprintf("solver time limit of %ds will block callers for a long time on hard instances", o.SolverTimeLimitSeconds))
	}
	if err := o.Rules.Validate(); err != nil {
		warnings = append(warnings, fmt.Sprintf("squad rules are inconsistent: %v", err))
	}

	switch c.Output.Format {
	case constants.OutputFormatPretty, constants.OutputFormatJSON:
	default:
		warnings = append(warnings, fmt.Sprintf("unknown output format %q; expected %s or %s", c.Output.Format, constants.OutputFormatPretty, constants.OutputFormatJSON))
	}

	return warnings
}
