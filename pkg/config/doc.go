// Package config loads typed configuration structs from environment
// variables (and an optional .env file) exactly once per type.
//
//	type HTTPConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg HTTPConfig
//	config.MustLoad(&cfg)
//
// Configuration is read at startup and never reloaded; every component
// of the tenant-routing core takes its Config struct by value at
// construction time.
package config
