package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/config"
	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/server"
	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/snapshot"
	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/transfers"
	"github.com/nawaneetkmr-cyber/fpl-tactix/pkg/constants"
	"github.com/nawaneetkmr-cyber/fpl-tactix/pkg/report"
	"github.com/nawaneetkmr-cyber/fpl-tactix/pkg/validation"
)

var version = "dev"

// initializeLogger builds the zap logger from the logging section. The CLI
// flag takes precedence over the configured level; an empty level parses as
// info.
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var zapConfig zap.Config
	switch loggingConfig.Format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	case "", "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", loggingConfig.Format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("creating log directory %s: %w", dir, err)
			}
		}
		// Fail now rather than on the first log line.
		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file %s: %w", loggingConfig.OutputFile, err)
		}
		file.Close()

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", "", "path to configuration file (optional; defaults apply without one)")
	snapshotLocation := flag.String("snapshot", "", "path to the snapshot file (JSON or YAML)")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	suggestOnly := flag.Bool("suggest", false, "print greedy swap candidates instead of running the full solve")
	serve := flag.Bool("serve", false, "run the HTTP API instead of a one-shot plan")
	flag.Parse()

	// Load the config file to get logging configuration
	var conf *config.Configuration
	var err error
	if *configLocation != "" {
		conf, err = config.LoadConfiguration(*configLocation)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
			return
		}
	} else if _, statErr := os.Stat(constants.DefaultConfigFile); statErr == nil {
		conf, err = config.LoadConfiguration(constants.DefaultConfigFile)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", constants.DefaultConfigFile, err)
			return
		}
	} else {
		conf = config.DefaultConfiguration()
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	engine := transfers.NewEngine(logger, nil, conf.Optimizer)

	if *serve {
		runServer(logger, engine, conf)
		return
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if *snapshotLocation == "" {
		logger.Fatal("a snapshot file is required: pass -snapshot",
			zap.String("op", "main"),
		)
	}

	pool, state, err := snapshot.Load(*snapshotLocation)
	if err != nil {
		logger.Fatal("failed to load snapshot",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *suggestOnly {
		suggestions, err := engine.Suggest(pool, state)
		if err != nil {
			logger.Fatal("failed to compute suggestions",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		report.SuggestionsFormat(os.Stdout, suggestions)
		return
	}

	result, err := engine.Optimize(context.Background(), pool, state)
	if err != nil {
		logger.Fatal("failed to compute plan",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		report.PrettyFormat(os.Stdout, result)
	case constants.OutputFormatJSON:
		if err := report.JSONFormat(os.Stdout, result); err != nil {
			logger.Fatal("failed to encode result",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}

func runServer(logger *zap.Logger, engine *transfers.Engine, conf *config.Configuration) {
	handler := server.NewHandler(logger, engine, conf.Server.MaxUploadBytes, version)

	logger.Info("starting HTTP API",
		zap.String("op", "main"),
		zap.String("address", conf.Server.Address),
	)
	if err := http.ListenAndServe(conf.Server.Address, handler); err != nil {
		logger.Fatal("HTTP server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
