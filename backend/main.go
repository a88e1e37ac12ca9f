package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"riseabove/backend/app/db"
	"riseabove/backend/config"
	"riseabove/backend/global"
	"riseabove/backend/initialize"
	"riseabove/backend/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "riseabove",
		Short:         "RiseAbove skill and XP tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(configPath)
		},
	})
	return root
}

func serve(configPath string) error {
	app, err := initialize.Build(configPath)
	if err != nil {
		global.Logger.Error().Err(err).Msg("startup failed")
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	app.RunBackground(ctx)

	if err := server.StartHTTPServer(ctx, app.Cfg.HTTP.Addr(), app.Router); err != nil {
		global.Logger.Error().Err(err).Msg("http server")
		return err
	}
	return nil
}

func migrate(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		global.Logger.Error().Err(err).Msg("load config")
		return err
	}
	initialize.SetLogLevel(cfg.LogLevel)
	gdb, err := initialize.OpenDB(cfg)
	if err != nil {
		global.Logger.Error().Err(err).Msg("open db")
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := db.Migrate(gdb); err != nil {
		global.Logger.Error().Err(err).Msg("migrate")
		return err
	}
	global.Logger.Info().Str("driver", cfg.DB.Driver).Msg("schema up to date")
	return nil
}
