// Package config defines application configuration and its loading rules.
package config
