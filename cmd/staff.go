package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hotelfood/configs"
	"hotelfood/entity"
)

var (
	staffUsername string
	staffPassword string
	staffRole     string
)

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Manage kitchen and admin accounts",
}

var staffCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a staff account or reset its password",
	Long: `Create a staff account, or reset the password and role of an existing one.

Examples:
  hotelfood staff create --username chef --password s3cret --role kitchen
  hotelfood staff create --username boss --password s3cret --role admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !entity.IsStaffRole(staffRole) {
			return fmt.Errorf("--role must be %q or %q", entity.RoleKitchen, entity.RoleAdmin)
		}
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		s, err := configs.UpsertStaff(db, staffUsername, staffPassword, staffRole)
		if err != nil {
			return err
		}
		log.WithField("username", s.Username).WithField("role", s.Role).Info("staff account saved")
		return nil
	},
}

func init() {
	staffCreateCmd.Flags().StringVar(&staffUsername, "username", "", "login name")
	staffCreateCmd.Flags().StringVar(&staffPassword, "password", "", "plain password, stored as a bcrypt hash")
	staffCreateCmd.Flags().StringVar(&staffRole, "role", entity.RoleKitchen, "kitchen or admin")
	_ = staffCreateCmd.MarkFlagRequired("username")
	_ = staffCreateCmd.MarkFlagRequired("password")

	staffCmd.AddCommand(staffCreateCmd)
	rootCmd.AddCommand(staffCmd)
}
