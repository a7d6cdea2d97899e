// Package config provides configuration structures and utilities for leaddeck.
// It defines the options for choosing lead sources, filter presets and report
// output, and loads the .leaddeck configuration file.
package config
