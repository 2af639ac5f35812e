package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/indieinfra/mockmedia/config"
	"github.com/indieinfra/mockmedia/logging"
	"github.com/indieinfra/mockmedia/storage/media"
	"github.com/indieinfra/mockmedia/storage/media/factory"
)

// app is the state shared by every subcommand once configuration is loaded.
type app struct {
	configFile string
	cfg        *config.Config
	logger     *logrus.Logger
	store      media.Store
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "mockmedia",
		Short:         "Store and serve inline image uploads for the mock messaging simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "Path to the configuration file (i.e., /etc/mockmedia.yml); built-in defaults when empty")

	root.AddCommand(
		newPutCommand(a),
		newResolveCommand(a),
		newFetchCommand(a),
	)

	return root
}

func (a *app) load() error {
	var (
		cfg *config.Config
		err error
	)

	if strings.TrimSpace(a.configFile) == "" {
		cfg, err = config.Default()
	} else {
		cfg, err = config.LoadConfig(a.configFile)
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	a.cfg = cfg
	a.logger = logging.New(cfg.Log, cfg.Debug)

	store, err := factory.Create(&cfg.Media, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize media store: %w", err)
	}
	a.store = store

	a.logger.Debugf("using %q media strategy", cfg.Media.Strategy)

	return nil
}
