package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

func dotEnvPath() string {
	if p := os.Getenv("DOTENV_PATH"); p != "" {
		return p
	}
	return DefaultDotEnvPath
}

// loadDotEnv exports the variables of the file at path into the process
// environment. Variables that are already set keep their value. A missing
// file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("error loading .env file %q: %w", path, err)
}
