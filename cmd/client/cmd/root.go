// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"fluiddiary/internal/app/client"
	"fluiddiary/internal/app/client/config"
	"fluiddiary/internal/utils/logger"
)

var (
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	debug     bool
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "fluiddiary",
	Short: "Fluid diary with multi-device sync",
	Long: `fluiddiary keeps a three-day fluid intake and urination diary on this
device and optionally syncs it with other devices through a shared room.

Create a room on one device, join it from another with the room code or
share link, and both diaries merge into one.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if app != nil {
		app.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	viper.AutomaticEnv()

	cfg = config.MustLoad()
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if debug {
		cfg.Env = "local"
	}

	log = logger.New(cfg.Env)

	var err error
	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("app init: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), "app", app))
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "sync server address (host:port)")
}
