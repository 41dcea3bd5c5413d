package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nawaneetkmr-cyber/fpl-tactix/pkg/constants"
)

func TestApplyDefaults(t *testing.T) {
	conf := &Configuration{}
	conf.ApplyDefaults()

	o := conf.Optimizer
	if o.Horizon != constants.DefaultHorizon {
		t.Errorf("horizon = %d, want %d", o.Horizon, constants.DefaultHorizon)
	}
	if o.Gamma != constants.DefaultGamma {
		t.Errorf("gamma = %v, want %v", o.Gamma, constants.DefaultGamma)
	}
	if o.HitPenalty != constants.DefaultHitPenalty {
		t.Errorf("hit penalty = %v, want %v", o.HitPenalty, constants.DefaultHitPenalty)
	}
	if o.Rules.SquadSize != 15 {
		t.Errorf("squad size = %d, want 15", o.Rules.SquadSize)
	}
	if conf.Output.Format != constants.OutputFormatPretty {
		t.Errorf("output format = %q, want %q", conf.Output.Format, constants.OutputFormatPretty)
	}
	if conf.Server.Address != constants.DefaultServerAddress {
		t.Errorf("server address = %q, want %q", conf.Server.Address, constants.DefaultServerAddress)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	conf := &Configuration{}
	conf.Optimizer.Horizon = 3
	conf.Optimizer.Gamma = 0.9
	conf.ApplyDefaults()

	if conf.Optimizer.Horizon != 3 {
		t.Errorf("horizon = %d, want explicit 3", conf.Optimizer.Horizon)
	}
	if conf.Optimizer.Gamma != 0.9 {
		t.Errorf("gamma = %v, want explicit 0.9", conf.Optimizer.Gamma)
	}
}

func TestApplyDefaultsRejectsOutOfRangeGamma(t *testing.T) {
	conf := &Configuration{}
	conf.Optimizer.Gamma = 1.7
	conf.ApplyDefaults()
	if conf.Optimizer.Gamma != constants.DefaultGamma {
		t.Errorf("gamma = %v, want default for out-of-range input", conf.Optimizer.Gamma)
	}
}

func TestLoadConfiguration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	doc := `
optimizer:
  horizon: 4
  gamma: 0.8
  maxTransfers: 2
logging:
  level: debug
  format: console
output:
  format: json
server:
  address: ":9090"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error: %v", err)
	}
	if conf.Optimizer.Horizon != 4 {
		t.Errorf("horizon = %d, want 4", conf.Optimizer.Horizon)
	}
	if conf.Optimizer.Gamma != 0.8 {
		t.Errorf("gamma = %v, want 0.8", conf.Optimizer.Gamma)
	}
	if conf.Optimizer.MaxTransfers != 2 {
		t.Errorf("max transfers = %d, want 2", conf.Optimizer.MaxTransfers)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("logging = %+v, want debug/console", conf.Logging)
	}
	if conf.Output.Format != constants.OutputFormatJSON {
		t.Errorf("output format = %q, want json", conf.Output.Format)
	}
	if conf.Server.Address != ":9090" {
		t.Errorf("server address = %q, want :9090", conf.Server.Address)
	}
	// Untouched tunables still pick up defaults.
	if conf.Optimizer.HitPenalty != constants.DefaultHitPenalty {
		t.Errorf("hit penalty = %v, want default", conf.Optimizer.HitPenalty)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for a missing config file")
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	conf := DefaultConfiguration()
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("default configuration produced warnings: %v", warnings)
	}

	conf = DefaultConfiguration()
	conf.Optimizer.Horizon = 20
	conf.Optimizer.Gamma = 0.2
	conf.Output.Format = "csv"
	warnings := conf.ValidateConfiguration()
	if len(warnings) != 3 {
		t.Fatalf("got %d warnings, want 3: %v", len(warnings), warnings)
	}
	joined := strings.Join(warnings, "; ")
	for _, want := range []string{"horizon", "gamma", "output format"} {
		if !strings.Contains(joined, want) {
			t.Errorf("warnings %q do not mention %s", joined, want)
		}
	}
}

func TestSolverTimeLimit(t *testing.T) {
	o := OptimizerConfig{SolverTimeLimitSeconds: 7}
	if got := o.SolverTimeLimit().Seconds(); got != 7 {
		t.Errorf("SolverTimeLimit() = %vs, want 7s", got)
	}
}
