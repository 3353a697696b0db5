// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment via caarlos0/env. The hub
// and device share one [StructuredConfig]; each variable maps through the
// `env` and `envPrefix` tags on it (APP_INSTANCE_ID, WORKERS_SYNC_FILTERS and
// so on), and variables that are unset simply leave the field for a later
// source to fill.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
