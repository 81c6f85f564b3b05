package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	MazeWidth          int           // Number of logical cells per maze row
	MazeHeight         int           // Number of logical cells per maze column
	MazeSeed           int64         // Seed for maze generation and bot choices (0 = time based)
	TickRate           int           // Simulation ticks per second
	FrameRate          int           // Renders per second
	BotStepInterval    time.Duration // Initial time between two bot steps
	BotSpeedUpPeriod   time.Duration // Time between two speed-ups of the bot
	BotSpeedUpDelta    time.Duration // Amount the step interval shrinks on each speed-up
	BotMinStepInterval time.Duration // Lower bound of the step interval
	LogFile            string        // File receiving the application logs
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		MazeWidth:          getEnvAsIntWithDefault("MAZE_WIDTH", 10),
		MazeHeight:         getEnvAsIntWithDefault("MAZE_HEIGHT", 10),
		MazeSeed:           int64(getEnvAsIntWithDefault("MAZE_SEED", 0)),
		TickRate:           getEnvAsIntWithDefault("TICK_RATE", 60),
		FrameRate:          getEnvAsIntWithDefault("FRAME_RATE", 30),
		BotStepInterval:    getEnvAsDurationWithDefault("BOT_STEP_INTERVAL", 100*time.Millisecond),
		BotSpeedUpPeriod:   getEnvAsDurationWithDefault("BOT_SPEEDUP_PERIOD", time.Second),
		BotSpeedUpDelta:    getEnvAsDurationWithDefault("BOT_SPEEDUP_DELTA", 20*time.Millisecond),
		BotMinStepInterval: getEnvAsDurationWithDefault("BOT_MIN_STEP_INTERVAL", 10*time.Millisecond),
		LogFile:            getEnvWithDefault("LOG_FILE", "mazerun.log"),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an integer.
// It logs a fatal error if the variable is set but cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsDurationWithDefault retrieves the value of an environment variable as a duration (e.g. "150ms").
// It logs a fatal error if the variable is set but cannot be parsed.
func getEnvAsDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a duration: %v", key, err)
	}
	return value
}
