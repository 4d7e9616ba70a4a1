// Package config loads the process-wide settings that result constructors
// fall back to: the home directory, the default results root and the default
// tabular format.
//
// It uses Viper to read a YAML file and overlays environment variables that
// carry the RESULTKIT_ prefix, with underscore-separated paths mapped onto
// nested keys (RESULTKIT_RESULTS_DIR sets results.dir). A .env file is loaded
// with godotenv when found.
//
// # Usage
//
//	var cfg config.Config
//	if err := config.LoadConfig("resultkit", &cfg); err != nil { ... }
//	cfg.ApplyDefaults()
package config
