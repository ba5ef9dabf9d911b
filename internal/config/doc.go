// Package config manages user-level settings stored at ~/.plugboard/config.yaml.
// Values can be overridden with PLUGBOARD_* environment variables, e.g.
// PLUGBOARD_PLUGINS_DIR or PLUGBOARD_LOG_LEVEL.
package config
