package confs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadConfig loads environment variables from a .env file if present
// and validates essential settings when needed.
func LoadConfig() error {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		// Only log when the file truly doesn't exist; not an error for runtime
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}
	return nil
}

// AppAddr returns the listen address for the HTTP server.
func AppAddr() string {
	if addr := os.Getenv("APP_ADDR"); addr != "" {
		return addr
	}
	return "0.0.0.0:3536"
}

// SessionTTL returns how long a session stays valid before the sweeper
// may remove it. Defaults to 24 hours.
func SessionTTL() time.Duration {
	if raw := os.Getenv("SESSION_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			log.Printf("warning: invalid SESSION_TTL_HOURS %q, using default", raw)
		} else {
			return time.Duration(hours) * time.Hour
		}
	}
	return 24 * time.Hour
}
