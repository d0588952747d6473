// cmd/init.go
package cmd

import (
	"fmt"
	"os"

	"github.com/markb/blockwarden/internal/db"
	"github.com/markb/blockwarden/internal/pin"
	"github.com/markb/blockwarden/internal/store"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new Blockwarden database",
	Long:  `Creates a new SQLite database with the blocked-authors and settings tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")
		pinValue, _ := cmd.Flags().GetString("pin")

		// Check if file already exists
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("database already exists at %s", dbPath)
		}

		database, err := db.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		defer database.Close()

		if err := database.RunMigrations(); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		// Set the PIN if provided
		if pinValue != "" {
			if !validPIN(pinValue) {
				return fmt.Errorf("PIN must be exactly 6 digits")
			}
			auth := pin.NewAuth(store.New(database))
			if err := auth.Set(pinValue); err != nil {
				return fmt.Errorf("failed to set PIN: %w", err)
			}
			fmt.Printf("Initialized database at %s with PIN\n", dbPath)
		} else {
			fmt.Printf("Initialized database at %s\n", dbPath)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("db", "blockwarden.db", "Path to database file")
	initCmd.Flags().String("pin", "", "Set the PIN during initialization")
}
