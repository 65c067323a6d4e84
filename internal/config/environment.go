// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Environment holds the process variables typo3-setup reacts to.
type Environment struct {
	ComposerRoot  string `env:"TYPO3_PATH_COMPOSER_ROOT"`
	WebRoot       string `env:"TYPO3_PATH_ROOT"`
	IsSetUp       string `env:"TYPO3_IS_SET_UP"`
	NoInteraction bool   `env:"TYPO3_SETUP_NO_INTERACTION"`
}

// ParseEnvironment reads an Environment from a variable snapshot instead of the
// live process environment.
func ParseEnvironment(vars map[string]string) (Environment, error) {
	var e Environment
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Environment{}, fmt.Errorf("error getting env configs: %w", err)
	}
	return e, nil
}

// ShouldRun reports whether setup is due: TYPO3_IS_SET_UP is set to a value
// other than "0". The variable is exported once the TYPO3 installer has run.
func (e Environment) ShouldRun() bool {
	v := strings.TrimSpace(e.IsSetUp)
	return v != "" && v != "0"
}

// config converts the environment into a configuration layer.
func (e Environment) config() *Config {
	return &Config{
		ComposerRoot:  e.ComposerRoot,
		WebRoot:       e.WebRoot,
		NoInteraction: e.NoInteraction,
	}
}
