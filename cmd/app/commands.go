package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"schoolpay/cmd/fx/controllers_fx"
	"schoolpay/cmd/fx/import_fx"
	"schoolpay/cmd/fx/logger_fx"
	"schoolpay/cmd/fx/transaction_fx"
	"schoolpay/internal/config"
	"schoolpay/internal/services"
)

type configLoader func() (config.Config, error)

func newServeCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			app := fx.New(
				fx.Supply(cfg),
				logger_fx.Module,
				storeModule(cfg),
				transaction_fx.Module,
				import_fx.Module,
				controllers_fx.Module,

				fx.Provide(ProvideRouter),
				fx.Invoke(StartServer),
			)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

func newMigrateCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and indexes in the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			var log *zap.Logger
			// The store modules migrate while the app is being built.
			return runOnce(cmd.Context(), fx.New(
				fx.Supply(cfg),
				logger_fx.Module,
				storeModule(cfg),
				fx.Populate(&log),
			), func(ctx context.Context) error {
				log.Info("migration complete", zap.String("driver", cfg.Store.Driver))
				return nil
			})
		},
	}
}

func newImportCmd(load configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-load students or transactions from CSV",
	}

	sub := func(use, short string, pick func(svc services.ImportServiceInterface) func(context.Context, io.Reader) (int, error), defaultPath func(config.Config) string) *cobra.Command {
		var file string
		c := &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := load()
				if err != nil {
					return err
				}
				if file == "" {
					file = defaultPath(cfg)
				}

				var (
					svc services.ImportServiceInterface
					log *zap.Logger
				)
				return runOnce(cmd.Context(), fx.New(
					fx.Supply(cfg),
					logger_fx.Module,
					storeModule(cfg),
					import_fx.Module,
					fx.Populate(&svc, &log),
				), func(ctx context.Context) error {
					f, err := os.Open(file)
					if err != nil {
						return fmt.Errorf("open %s: %w", file, err)
					}
					defer f.Close()

					n, err := pick(svc)(ctx, f)
					if err != nil {
						return err
					}
					log.Info("import complete", zap.String("file", file), zap.Int("rows", n))
					return nil
				})
			},
		}
		c.Flags().StringVarP(&file, "file", "f", "", "CSV file (defaults to the configured import path)")
		return c
	}

	cmd.AddCommand(
		sub("students", "Import students",
			func(svc services.ImportServiceInterface) func(context.Context, io.Reader) (int, error) {
				return svc.ImportStudents
			},
			func(cfg config.Config) string { return cfg.Import.StudentsPath }),
		sub("transactions", "Import transactions",
			func(svc services.ImportServiceInterface) func(context.Context, io.Reader) (int, error) {
				return svc.ImportTransactions
			},
			func(cfg config.Config) string { return cfg.Import.TransactionsPath }),
	)
	return cmd
}

// runOnce starts app, runs fn, and always stops the app so store handles are closed.
func runOnce(parent context.Context, app *fx.App, fn func(ctx context.Context) error) error {
	if err := app.Err(); err != nil {
		return err
	}
	if parent == nil {
		parent = context.Background()
	}

	startCtx, cancel := context.WithTimeout(parent, 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	runErr := fn(parent)

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return err
	}
	return runErr
}
