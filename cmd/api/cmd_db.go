package main

import (
	"fmt"

	"github.com/sangkips/shopbill-api/internal/infrastructure/database"
	"github.com/spf13/cobra"
)

var (
	cleanupConfirm     bool
	cleanupExpiredKeys bool
)

// shopbill migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		return database.AutoMigrate(a.db)
	},
}

// shopbill seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a demo shop and catalog when the catalog is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		if err := database.AutoMigrate(a.db); err != nil {
			return err
		}
		return database.SeedDefaultData(a.db, a.log)
	},
}

// shopbill cleanup
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete every row of every table, or only expired idempotency keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cleanupExpiredKeys && !cleanupConfirm {
			return fmt.Errorf("refusing to wipe the database without --yes")
		}

		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		admin := a.adminService()
		if cleanupExpiredKeys {
			n, err := admin.PurgeExpiredIdempotencyKeys(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired idempotency keys\n", n)
			return nil
		}

		result, err := admin.CleanupDatabase(cmd.Context())
		if err != nil {
			return err
		}
		for table, n := range result.Deleted {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %d\n", table, n)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d rows\n", result.Total)
		return nil
	},
}

func init() {
	cleanupCmd.Flags().BoolVar(&cleanupConfirm, "yes", false, "confirm deleting all data")
	cleanupCmd.Flags().BoolVar(&cleanupExpiredKeys, "expired-keys", false, "only remove expired idempotency keys")
}
