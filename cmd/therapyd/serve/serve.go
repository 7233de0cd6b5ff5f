// Package servecmder provides the serve command running the HTTP relay.
package servecmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Juliand6/therapy-assistant/api"
	"github.com/Juliand6/therapy-assistant/pkg/assistant"
	"github.com/Juliand6/therapy-assistant/pkg/assistant/backboard"
	"github.com/Juliand6/therapy-assistant/pkg/assistant/offline"
	"github.com/Juliand6/therapy-assistant/pkg/config"
	"github.com/Juliand6/therapy-assistant/pkg/logger"
	"github.com/Juliand6/therapy-assistant/pkg/notes"
	"github.com/Juliand6/therapy-assistant/pkg/store"
	"github.com/Juliand6/therapy-assistant/pkg/store/inmemory"
	"github.com/Juliand6/therapy-assistant/pkg/store/jsonfile"
)

type ServeCommander struct {
	listen       string
	storePath    string
	provider     string
	backboardURL string
	configDir    string
	debug        bool
	logger       *zap.Logger
}

const serveLongDesc string = `Run the therapyd HTTP relay.

Configuration merges CLI flags, THERAPYD_* environment variables, and an
optional config.toml. The Backboard credential is read from BACKBOARD_API_KEY
(a .env file next to the binary works); without one the relay falls back to
the offline keyword generator.`

const serveShortDesc string = "Run the therapyd HTTP relay"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address for the relay to listen on (default from config)")
	cmd.Flags().StringVarP(&cmder.storePath, "store", "s", "", "Path to the JSON document store (default from config)")
	cmd.Flags().StringVar(&cmder.provider, "provider", "", "Assistant provider (backboard, offline; default from config)")
	cmd.Flags().StringVar(&cmder.backboardURL, "backboard-url", "", "Backboard API base URL (default from config)")
	cmd.Flags().StringVarP(&cmder.configDir, "config-dir", "c", "", "Directory containing config.toml (default: working directory)")

	return cmd
}

func (c *ServeCommander) run() error {
	c.logger = logger.New(c.debug)
	defer c.logger.Sync()

	cfg, err := config.Load(c.configDir)
	if err != nil {
		return err
	}
	c.applyFlags(cfg)

	storer := c.newStoreDriver(cfg)
	defer storer.Close()

	ai := c.newAssistantDriver(cfg)
	defer ai.Close()

	service, err := notes.NewService(storer, ai, c.logger)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	server := api.NewServer(api.Config{ListenAddr: cfg.API.Listen}, service, c.logger)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("relay error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	}
}

// applyFlags overrides loaded config values with explicitly set flags.
func (c *ServeCommander) applyFlags(cfg *config.Config) {
	if c.listen != "" {
		cfg.API.Listen = c.listen
	}
	if c.storePath != "" {
		cfg.Store.Path = c.storePath
	}
	if c.provider != "" {
		cfg.Assistant.Provider = c.provider
	}
	if c.backboardURL != "" {
		cfg.Backboard.BaseURL = c.backboardURL
	}
}

func (c *ServeCommander) newStoreDriver(cfg *config.Config) store.Driver {
	if cfg.Store.Path != "" {
		c.logger.Info("using JSON file store", zap.String("path", cfg.Store.Path))
		return jsonfile.NewDriver(cfg.Store.Path)
	}

	c.logger.Info("using in-memory store")
	return inmemory.NewDriver()
}

func (c *ServeCommander) newAssistantDriver(cfg *config.Config) assistant.Driver {
	if cfg.Assistant.Provider == "backboard" && cfg.Backboard.APIKey == "" {
		c.logger.Warn("no Backboard API key configured, falling back to offline generator")
		cfg.Assistant.Provider = "offline"
	}

	switch cfg.Assistant.Provider {
	case "offline":
		c.logger.Info("using offline assistant driver")
		return offline.NewDriver()
	default:
		c.logger.Info("using Backboard assistant driver",
			zap.String("base_url", cfg.Backboard.BaseURL),
		)
		return backboard.NewClient(backboard.Config{
			BaseURL: cfg.Backboard.BaseURL,
			APIKey:  cfg.Backboard.APIKey,
		})
	}
}
