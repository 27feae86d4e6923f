package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/carmarket-ro/costengine/internal/config"
	"github.com/carmarket-ro/costengine/internal/server"
	"github.com/carmarket-ro/costengine/internal/tracing"
	"github.com/carmarket-ro/costengine/pkg/constants"
	"github.com/carmarket-ro/costengine/pkg/engine"
	"github.com/carmarket-ro/costengine/pkg/output"
	"github.com/carmarket-ro/costengine/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
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

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
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

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
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

func main() {
	// Optional .env for deployment-specific settings.
	_ = godotenv.Load()

	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	requestLocation := flag.String("request", constants.DefaultRequestFile, "path to quote request file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	listen := flag.Bool("listen", false, "serve the quote API over HTTP instead of processing a request file")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
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

	// Build the market tables with any configured overrides.
	tables, err := conf.Tables()
	if err != nil {
		logger.Fatal("failed to build market tables",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	eng := engine.New(tables, logger)

	if *listen {
		runServer(logger, conf, eng)
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

	request, err := config.LoadQuoteRequest(*requestLocation)
	if err != nil {
		logger.Fatal("failed to load quote request",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if err := request.Profile().Validate(time.Now().Year()); err != nil {
		logger.Fatal("vehicle profile rejected",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	quote := output.Quote{
		VehicleName: request.Vehicle.Name,
		Currency:    conf.Output.Currency,
	}

	if request.Loan != nil {
		result, err := eng.ComputeLoan(request.LoanParams())
		if err != nil {
			logger.Fatal("loan parameters rejected",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		quote.Loan = &result
	}

	if request.Insurance != nil {
		result, err := eng.ComputeInsurance(request.InsuranceParams())
		if err != nil {
			logger.Fatal("insurance parameters rejected",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		quote.Insurance = &result
	}

	if request.Ownership != nil {
		result, err := eng.ComputeOwnershipCost(request.OwnershipParams())
		if err != nil {
			logger.Fatal("ownership parameters rejected",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		quote.Ownership = &result
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, quote)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, quote)
	}
}

func runServer(logger *zap.Logger, conf *config.Configuration, eng *engine.Engine) {
	shutdown, err := tracing.Init(logger, "costengine", version, conf.Server.OTLPEndpoint)
	if err != nil {
		logger.Fatal("failed to initialize tracing",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	defer func() {
		_ = shutdown(context.Background())
	}()

	address := conf.Server.Address
	if address == "" {
		address = constants.DefaultServerAddress
	}

	handler := server.NewHandler(logger, eng, conf.Server.MaxBodyBytes, version)
	logger.Info("serving quote API",
		zap.String("op", "main"),
		zap.String("address", address),
	)
	if err := http.ListenAndServe(address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
