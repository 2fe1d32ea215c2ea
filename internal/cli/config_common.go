package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/dbgapdd/internal/config"
	"github.com/vvka-141/dbgapdd/internal/logging"
	"github.com/vvka-141/dbgapdd/pkg/dbgap"
)

// loadProjectConfig loads a .env file from the working directory if one
// exists, resolves the project configuration and applies the -v count.
func loadProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	var path string
	if f := cmd.Flag("config"); f != nil {
		path = f.Value.String()
	}

	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, err
	}

	if v, ok := verbosityOverride(cmd); ok {
		cfg.Verbosity = &v
	}
	return cfg, nil
}

// verbosityOverride turns repeated -v flags into a verbosity level, counting
// up from the default. ok is false when -v was not given.
func verbosityOverride(cmd *cobra.Command) (level int, ok bool) {
	f := cmd.Flag("verbose")
	if f == nil || !f.Changed {
		return 0, false
	}
	count, err := strconv.Atoi(f.Value.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return 0, false
	}
	return min(logging.DefaultVerbosity+count, logging.MaxVerbosity), true
}

func newLogger(cfg *config.ProjectConfig) *logging.ConsoleLogger {
	return logging.NewConsoleLogger(cfg.VerbosityLevel())
}

// interruptContext is cancelled on Ctrl+C or SIGTERM.
func interruptContext(logger dbgap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			logger.Warn("Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
