// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"strings"

	"github.com/carmarket-ro/costengine/pkg/market"
	"github.com/carmarket-ro/costengine/pkg/vehicle"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for costengine.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Market  MarketConfig  `yaml:"market,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty"` // pretty, csv
	Currency string `yaml:"currency,omitempty"`
}

// ServerConfig holds the HTTP API options.
type ServerConfig struct {
	Address      string `yaml:"address,omitempty"`
	MaxBodyBytes int64  `yaml:"maxBodyBytes,omitempty"`
	OTLPEndpoint string `yaml:"otlpEndpoint,omitempty"`
}

// MarketConfig holds optional overrides merged over the built-in market
// tables, so a deployment can retarget the engine without code changes.
type MarketConfig struct {
	CityMultipliers       map[string]float64 `yaml:"cityMultipliers,omitempty"`
	DefaultCityMultiplier float64            `yaml:"defaultCityMultiplier,omitempty"`
	FuelPrices            map[string]float64 `yaml:"fuelPrices,omitempty"`
	AllowedTermMonths     []int              `yaml:"allowedTermMonths,omitempty"`
	AllowedDeductibles    []float64          `yaml:"allowedDeductibles,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Tables merges the market overrides over the built-in defaults and returns
// the resulting lookup tables.
func (conf *Configuration) Tables() (market.Tables, error) {
	tables := market.DefaultTables()

	for city, multiplier := range conf.Market.CityMultipliers {
		if multiplier <= 0 {
			return tables, fmt.Errorf("city multiplier for %q must be positive, got %v", city, multiplier)
		}
		tables.CityMultipliers[strings.ToLower(city)] = multiplier
	}
	if conf.Market.DefaultCityMultiplier > 0 {
		tables.DefaultCityMultiplier = conf.Market.DefaultCityMultiplier
	}

	for fuel, price := range conf.Market.FuelPrices {
		ft, err := vehicle.ParseFuelType(fuel)
		if err != nil {
			return tables, fmt.Errorf("fuel price override: %w", err)
		}
		if price <= 0 {
			return tables, fmt.Errorf("fuel price for %q must be positive, got %v", fuel, price)
		}
		tables.FuelPrices[ft] = price
	}

	if len(conf.Market.AllowedTermMonths) > 0 {
		tables.AllowedTermMonths = conf.Market.AllowedTermMonths
	}
	if len(conf.Market.AllowedDeductibles) > 0 {
		tables.AllowedDeductibles = conf.Market.AllowedDeductibles
	}

	return tables, nil
}
