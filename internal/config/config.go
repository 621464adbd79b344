// Package config loads CLI settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/zoobzio/isotope/nucdata"
)

// Config holds the environment settings of the isotope command.
type Config struct {
	DB             string `env:"ISOTOPE_DB"`
	MCNPLibrary    string `env:"ISOTOPE_MCNP_LIBRARY"`
	NucData        string `env:"ISOTOPE_NUCDATA"`
	MaterialNumber int    `env:"ISOTOPE_MATERIAL_NUMBER" envDefault:"1"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Provider returns the nuclear data table named by NucData, or the
// embedded table when it is empty.
func (c Config) Provider() (*nucdata.Table, error) {
	if c.NucData == "" {
		return nucdata.Default()
	}
	return nucdata.Open(c.NucData)
}
