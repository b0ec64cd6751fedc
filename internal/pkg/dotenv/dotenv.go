package dotenv

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// flagOverrides - флаги командной строки, перекрывающие переменные окружения.
var flagOverrides = map[string]struct {
	env   string
	usage string
}{
	"port":    {env: "PORT", usage: "Server port (overrides PORT environment variable)"},
	"targets": {env: "PROBE_TARGETS", usage: "Probe targets name=kind://address,... (overrides PROBE_TARGETS)"},
	"log":     {env: "LOG_LEVEL", usage: "Log level (overrides LOG_LEVEL)"},
}

// Load читает файлы окружения (по умолчанию .env), затем применяет флаги.
// Уже выставленные переменные окружения файлы не перекрывают.
func Load(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil {
		return err
	}
	return ApplyFlags(flag.CommandLine, os.Args[1:])
}

// ApplyFlags разбирает args и записывает непустые значения флагов в окружение.
func ApplyFlags(fs *flag.FlagSet, args []string) error {
	values := make(map[string]*string, len(flagOverrides))
	for name, o := range flagOverrides {
		if fs.Lookup(name) == nil {
			values[name] = fs.String(name, "", o.usage)
		}
	}

	if !fs.Parsed() {
		if err := fs.Parse(args); err != nil {
			return fmt.Errorf("parse flags: %w", err)
		}
	}

	for name, value := range values {
		if *value == "" {
			continue
		}
		env := flagOverrides[name].env
		if err := os.Setenv(env, *value); err != nil {
			return fmt.Errorf("failed to set %s environment variable: %w", env, err)
		}
	}
	return nil
}
