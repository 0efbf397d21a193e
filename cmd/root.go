// Package cmd is the hotelfood command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"hotelfood/configs"
	"hotelfood/pkg/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "hotelfood",
	Short: "Hotel food ordering backend",
	Long: `hotelfood serves the customer menu and cart, the kitchen order board and the
admin dashboard over HTTP.

Commands:
  serve    - run the HTTP server
  migrate  - create or update the database schema
  seed     - load the default menu
  staff    - manage kitchen/admin accounts`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile == "" {
			return nil
		}
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "extra .env file loaded before the environment")
}

// bootstrap loads config, logger and a migrated database.
func bootstrap() (*configs.Config, *logrus.Logger, *gorm.DB, error) {
	cfg := configs.LoadConfig()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := configs.ConnectionDB(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := configs.SetupDatabase(db); err != nil {
		return nil, nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return cfg, log, db, nil
}
