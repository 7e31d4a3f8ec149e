package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"schoolpay/cmd/fx/db_fx"
	"schoolpay/cmd/fx/mongo_fx"
	"schoolpay/internal/config"
)

// @title School Payments API
// @version 1.0
// @description Query and update school fee payment transactions.
// @BasePath /api
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:           "schoolpay",
		Short:         "School fee transaction service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load (default config.env, .env)")

	loadConfig := func() (config.Config, error) {
		return config.Load(envFiles...)
	}

	root.AddCommand(
		newServeCmd(loadConfig),
		newMigrateCmd(loadConfig),
		newImportCmd(loadConfig),
	)
	return root
}

// storeModule picks the repository implementations for the configured driver.
func storeModule(cfg config.Config) fx.Option {
	if cfg.Store.Driver == config.DriverMongo {
		return mongo_fx.Module
	}
	return db_fx.Module
}
