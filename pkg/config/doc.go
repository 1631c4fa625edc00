// Package config loads configuration structs from environment variables.
//
// Fields are described with github.com/caarlos0/env/v11 tags, and optional
// .env files are read with github.com/joho/godotenv:
//
//	type AppConfig struct {
//	    Addr     string `env:"HTTP_ADDR" envDefault:":8080"`
//	    RedisURL string `env:"REDIS_URL"`
//	}
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Each struct type is parsed once and cached for the rest of the process.
// ResetCache clears the cache between tests.
package config
