package internal

import "time"

type Config struct {
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath     string        `env:"BLUGE_FILEPATH,required=true"`
	LogLevel          string        `env:"LOG_LEVEL,required=true"`
	DebugPort         int           `env:"DEBUG_PORT,default=8081"`
	ToggleTimeout     time.Duration `env:"TOGGLE_TIMEOUT,required=true"`
	GCInterval        time.Duration `env:"GC_INTERVAL,required=true"`
	MetricInterval    time.Duration `env:"METRIC_INTERVAL,required=true"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`
	SearchLimit       int           `env:"SEARCH_LIMIT,default=10"`
}
