// Package config loads the application configuration.
//
// Values come from, in increasing precedence: built-in defaults, an optional
// config file (any format viper reads), and environment variables prefixed
// with COMMERCE_ where nested keys are joined with underscores, for example
// COMMERCE_DATABASE_DSN or COMMERCE_CACHE_REDIS_ADDR. LoadDotEnv can seed the
// environment from a .env file first.
package config
