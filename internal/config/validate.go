// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

package config

import (
	"fmt"

	"github.com/tomtom215/movieseed/internal/logging"
	"github.com/tomtom215/movieseed/internal/validation"
)

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateAggregation(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateAggregation checks provider-specific requirements.
func (c *Config) validateAggregation() error {
	if !c.Aggregation.Enabled() {
		if c.Aggregation.CacheDir != "" {
			return fmt.Errorf("aggregation.cache_dir requires an aggregation provider")
		}
		return nil
	}

	if c.Aggregation.Provider == ProviderDuckDB && c.Aggregation.RatingsFile == "" {
		return fmt.Errorf("aggregation.ratings_file is required for provider %q", ProviderDuckDB)
	}
	return nil
}

// validateLogging checks the log level name.
func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	return nil
}
