package cmd

import (
	"github.com/spf13/cobra"

	"hotelfood/configs"
)

var seedReset bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the default categories and dishes",
	Long: `Load the default menu (4 categories, 8 dishes) and the staff accounts named in the
environment. Existing dishes are left alone.

Examples:
  hotelfood seed            # add whatever is missing
  hotelfood seed --reset    # wipe menu items and categories first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		if err := configs.SeedMenu(db, seedReset, log); err != nil {
			return err
		}
		return configs.SeedStaff(db, cfg, log)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "delete existing menu items and categories first")
	rootCmd.AddCommand(seedCmd)
}
