// Package config loads structured configuration with Viper.
//
// Values come from an optional YAML file, then from a .env file loaded
// through godotenv, then from process environment variables carrying the
// configured prefix. Later sources override earlier ones.
//
// # Usage
//
//	var cfg httpfacade.Config
//	err := config.Load(&cfg, config.WithEnvPrefix("HTTPFACADE"), config.WithKey("http"))
//
// With that prefix HTTPFACADE_MAX_CONCURRENT sets max_concurrent and
// HTTPFACADE_TLS_CA_FILE sets tls.ca_file.
package config
