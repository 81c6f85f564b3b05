package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/mazerun/config"
	"github.com/beka-birhanu/mazerun/game"
	"github.com/beka-birhanu/mazerun/game/maze"
	"github.com/beka-birhanu/mazerun/service"
	"github.com/beka-birhanu/mazerun/service/i"
	"github.com/beka-birhanu/mazerun/terminal"
)

// Global variables for dependencies
var (
	logFile        *os.File
	appLogger      *log.Logger
	screen         *terminal.Screen
	sessionManager *service.SessionManager
)

func newLogger(prefix, color string, w io.Writer) *log.Logger {
	return log.New(w, fmt.Sprintf("%s[%s]%s ", color, prefix, config.ColorReset), log.LstdFlags)
}

func initLogFile() {
	var err error
	logFile, err = os.OpenFile(config.Envs.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		appLogger.Printf("%s[ERROR]%s opening log file: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}

	appLogger = newLogger("APP", config.ColorGreen, logFile)
	appLogger.Printf("%s[INFO]%s logging to %s", config.LogInfoColor, config.LogColorReset, config.Envs.LogFile)
}

func initSessionManager() {
	seed := config.Envs.MazeSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	sessionConfig := game.SessionConfig{
		Width:  config.Envs.MazeWidth,
		Height: config.Envs.MazeHeight,
		Rand:   rng,
		Layout: maze.Layout,
		Bot: game.BotConfig{
			StepInterval:    config.Envs.BotStepInterval,
			SpeedUpPeriod:   config.Envs.BotSpeedUpPeriod,
			SpeedUpDelta:    config.Envs.BotSpeedUpDelta,
			MinStepInterval: config.Envs.BotMinStepInterval,
		},
	}

	var err error
	sessionManager, err = service.NewSessionManager(&service.Config{
		SessionFactory: func() (i.GameSession, error) {
			s, err := game.NewSession(sessionConfig)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		TickRate:  config.Envs.TickRate,
		FrameRate: config.Envs.FrameRate,
		Logger:    newLogger("SESSION-MANAGER", config.ColorCyan, logFile),
	})
	if err != nil {
		appLogger.Printf("%s[ERROR]%s creating session manager: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}

	if _, err := sessionManager.NewSession(); err != nil {
		appLogger.Printf("%s[ERROR]%s creating first game session: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s session manager initialized with seed %d", config.LogInfoColor, config.LogColorReset, seed)
}

func initScreen() {
	var err error
	screen, err = terminal.Open()
	if err != nil {
		appLogger.Printf("%s[ERROR]%s opening terminal: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s terminal initialized", config.LogInfoColor, config.LogColorReset)
}

func main() {
	appLogger = newLogger("APP", config.ColorGreen, os.Stderr)

	initLogFile()
	defer logFile.Close()

	initSessionManager()
	initScreen()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands := make(chan i.Command)
	go screen.Listen(ctx, commands)

	err := sessionManager.Run(ctx, commands, screen)
	screen.Close()
	if err != nil {
		appLogger.Printf("%s[ERROR]%s running game: %v", config.LogErrorColor, config.LogColorReset, err)
		logFile.Close()
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s bye", config.LogInfoColor, config.LogColorReset)
}
