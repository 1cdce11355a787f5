package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings, read from the environment with an
// optional .env file on top.
type Config struct {
	Addr          string
	HistoryCSV    string
	BookmarksFile string
}

// Load reads configuration. A missing .env file is fine; defaults cover a
// local run out of the box.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:          getEnv("LOTTO_ADDR", ":8080"),
		HistoryCSV:    getEnv("LOTTO_HISTORY_CSV", "data/draws.csv"),
		BookmarksFile: getEnv("LOTTO_BOOKMARKS_FILE", "data/bookmarks.json"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
