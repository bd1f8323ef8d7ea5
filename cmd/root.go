// Package cmd implements the dispatch CLI.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/friomar/dispatch/app"
	"github.com/friomar/dispatch/config"
	"github.com/friomar/dispatch/infra/logger"
	"github.com/friomar/dispatch/infra/sqlite"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Trip dispatch and assignment service",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// openService loads the configuration and wires the service over the
// sqlite backend. The caller owns Close.
func openService() (*app.Service, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	db, err := sqlite.New(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	svc, err := app.New(cfg, app.Stores{Trips: db, Drivers: db}, db)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			logger.New("main").Errorf("store close: %v", cerr)
		}
		return nil, err
	}
	return svc, nil
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := openService()
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
