package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadDotEnv copies the variables of a .env style file into the process
// environment so Load picks them up. Variables already set win. A missing
// file is not an error; loaded reports whether the file was read.
func LoadDotEnv(path string) (loaded bool, err error) {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return true, nil
}
