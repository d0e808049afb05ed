// Package config provides configuration loading, validation, and persistence
// for the voxd daemon.
//
// It uses Viper to layer a YAML config file (found in the XDG config dir or
// pointed at by VOXD_CONFIG) under VOXD_-prefixed environment variables, with
// godotenv picking up a .env file during development.
//
// # Usage
//
//	cfg, err := config.Load[Config]("voxd")
//
// Environment variables override file values using the VOXD_ prefix with
// underscore-separated paths (e.g., VOXD_POSTPROC_MODEL).
//
// The Store type handles the write side: the control API saves settings
// changes through it atomically, and the OpenSettings operation hands the
// file to xdg-open.
package config
