package configs

import (
	"flag"
	"io"
	"os"
)

type pathEnv struct {
	Path string `env:"GAME_SERVER_CONFIG"`
}

var candidates = []string{
	"./config.yaml",
	"./config.yml",
	"../../config.yaml", // keep for local dev
	"/etc/game-socket-server/config.yaml",
	"/app/config.yaml", // common in Docker
}

// DetermineConfigPath checks --config, then GAME_SERVER_CONFIG, then the
// usual locations. An empty result means defaults and env only.
func DetermineConfigPath(args []string) string {
	fs := flag.NewFlagSet("game-socket-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configPath string
	fs.StringVar(&configPath, "config", "", "path to config file")
	_ = fs.Parse(args)

	if configPath != "" {
		return configPath
	}

	var pe pathEnv
	if err := ParseEnv(&pe); err == nil && pe.Path != "" {
		return pe.Path
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
