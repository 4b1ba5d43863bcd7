package configuration

import (
	"bufio"
	"os"
	"strings"
)

// LoadEnvFromFile reads KEY=VALUE pairs from the given files and exports the
// ones not already set. Missing files are skipped, comment and blank lines
// are ignored.
func LoadEnvFromFile(paths ...string) {
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			exportEnvLine(scanner.Text())
		}
		f.Close()
	}
}

func exportEnvLine(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	key, val, ok := strings.Cut(line, "=")
	if !ok {
		return
	}
	key = strings.TrimSpace(key)
	val = strings.Trim(strings.TrimSpace(val), `"'`)
	if key == "" {
		return
	}
	if _, exists := os.LookupEnv(key); !exists {
		os.Setenv(key, val)
	}
}
