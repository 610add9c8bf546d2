package config

import (
	"bufio"
	"os"
	"strings"
)

// loadEnvFiles loads simple KEY=VALUE pairs from the given files if they
// exist. Values already present in the environment win. Errors are ignored;
// this is a best-effort helper for local development.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			line = strings.TrimPrefix(line, "export ")
			key, val, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			key = strings.TrimSpace(key)
			val = strings.Trim(strings.TrimSpace(val), `"`)
			if key == "" {
				continue
			}
			if _, set := os.LookupEnv(key); set {
				continue
			}
			os.Setenv(key, val)
		}
		_ = f.Close()
	}
}
