package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/iwvelando/service-optimizer/internal/config"
	"github.com/iwvelando/service-optimizer/internal/invoker"
	"github.com/iwvelando/service-optimizer/internal/orchestrator"
	"github.com/iwvelando/service-optimizer/internal/provider"
	"github.com/iwvelando/service-optimizer/internal/server"
	"github.com/iwvelando/service-optimizer/pkg/constants"
	"github.com/iwvelando/service-optimizer/pkg/optimization"
	"github.com/iwvelando/service-optimizer/pkg/output"
	"github.com/iwvelando/service-optimizer/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is overridden at build time via -ldflags.
var version = "development"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Verify the file is writable before handing it to zap.
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// buildService wires the provider, invoker, and orchestrator from
// configuration. The returned cleanup closes the metrics backend if one was
// opened.
func buildService(logger *zap.Logger, conf *config.Configuration) (*orchestrator.Service, func(), error) {
	cleanup := func() {}

	var backend provider.Backend
	if conf.Influx.Configured() {
		influx := provider.NewInfluxBackend(logger, conf.Influx)
		backend = influx
		cleanup = influx.Close
		logger.Info("using influxdb metrics backend",
			zap.String("op", "main"),
			zap.String("url", conf.Influx.URL),
		)
	} else {
		logger.Info("no metrics backend configured, using synthetic history",
			zap.String("op", "main"),
		)
	}
	adapter := provider.NewAdapter(logger, backend)

	var inv invoker.Invoker
	switch conf.Procedure.Strategy {
	case constants.StrategyInProcess:
		inv = invoker.NewInProcessInvoker(logger, invoker.BuiltinModule())
	default:
		if conf.Procedure.Path == "" {
			cleanup()
			return nil, nil, fmt.Errorf("procedure path is required for the %s strategy", constants.StrategyProcess)
		}
		inv = invoker.NewProcessInvoker(logger, conf.Procedure.Path, conf.Procedure.Args, conf.ProcedureTimeout())
	}

	service, err := orchestrator.NewService(logger, adapter, inv)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return service, cleanup, nil
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", "", "path to configuration file (optional, environment variables suffice)")
	serve := flag.Bool("serve", false, "run the HTTP server instead of a one-shot optimization")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to HTTP server configuration file")
	target := flag.String("target", "", "target system to optimize (one-shot mode)")
	attribute := flag.String("attribute", constants.AttributeResponseTime, "attribute to optimize (one-shot mode)")
	window := flag.Int("window", 30, "optimization window in days (one-shot mode)")
	outputFormat := flag.String("output-format", constants.OutputFormatPretty, "type of output: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	service, cleanup, err := buildService(logger, conf)
	if err != nil {
		logger.Fatal("failed to build optimization service",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	defer cleanup()

	if *serve {
		runServer(logger, service, *serverConfigLocation)
		return
	}

	if *outputFormat != constants.OutputFormatPretty && *outputFormat != constants.OutputFormatCSV {
		logger.Fatal("invalid output format: must be pretty or csv",
			zap.String("op", "main"),
			zap.String("format", *outputFormat),
		)
	}

	request, err := validation.ValidateRequest(optimization.Request{
		Target:     *target,
		Attribute:  *attribute,
		WindowDays: *window,
	})
	if err != nil {
		logger.Fatal("invalid optimization request",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), conf.ProcedureTimeout()+30*time.Second)
	defer cancel()

	response, err := service.Run(ctx, request)
	if err != nil {
		logger.Fatal("optimization run failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch *outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(response)
	case constants.OutputFormatCSV:
		output.CsvFormat(response)
	}
}

func runServer(logger *zap.Logger, service *orchestrator.Service, configPath string) {
	serverConf, err := server.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("failed to load server configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	handler := server.NewHandler(logger, service, serverConf.BodySizeBytes(), version)

	logger.Info("starting HTTP server",
		zap.String("op", "main"),
		zap.String("address", serverConf.Address),
	)
	if err := http.ListenAndServe(serverConf.Address, handler); err != nil {
		logger.Fatal("HTTP server terminated",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
