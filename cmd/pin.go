// cmd/pin.go
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/markb/blockwarden/internal/db"
	"github.com/markb/blockwarden/internal/pin"
	"github.com/markb/blockwarden/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var pinPattern = regexp.MustCompile(`^[0-9]{6}$`)

func validPIN(p string) bool {
	return pinPattern.MatchString(p)
}

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Manage the access PIN",
	Long:  `Commands for setting, verifying, and updating the PIN that gates the blocked-authors list.`,
}

var pinSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the PIN",
	Long:  `Set the 6-digit PIN. Overwrites any existing PIN.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, database, err := openAuth(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		pinValue, err := promptPIN("Enter new PIN: ")
		if err != nil {
			return err
		}
		if !validPIN(pinValue) {
			return fmt.Errorf("PIN must be exactly 6 digits")
		}

		confirm, err := promptPIN("Confirm PIN: ")
		if err != nil {
			return err
		}
		if pinValue != confirm {
			return fmt.Errorf("PINs do not match")
		}

		if err := auth.Set(pinValue); err != nil {
			return fmt.Errorf("failed to set PIN: %w", err)
		}

		fmt.Println("PIN set successfully")
		return nil
	},
}

var pinVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the PIN",
	Long:  `Check an entered PIN against the stored one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, database, err := openAuth(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		pinValue, err := promptPIN("Enter PIN: ")
		if err != nil {
			return err
		}

		ok, err := auth.Verify(pinValue)
		if err != nil {
			return fmt.Errorf("failed to verify PIN: %w", err)
		}
		if !ok {
			return fmt.Errorf("incorrect PIN")
		}

		fmt.Println("PIN verified")
		return nil
	},
}

var pinUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the PIN",
	Long:  `Change the PIN after verifying the current one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, database, err := openAuth(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		current, err := promptPIN("Enter current PIN: ")
		if err != nil {
			return err
		}

		newPIN, err := promptPIN("Enter new PIN: ")
		if err != nil {
			return err
		}
		if !validPIN(newPIN) {
			return fmt.Errorf("PIN must be exactly 6 digits")
		}

		confirm, err := promptPIN("Confirm new PIN: ")
		if err != nil {
			return err
		}
		if newPIN != confirm {
			return fmt.Errorf("PINs do not match")
		}

		if err := auth.Update(current, newPIN); err != nil {
			return fmt.Errorf("failed to update PIN: %w", err)
		}

		fmt.Println("PIN updated successfully")
		return nil
	},
}

// openAuth opens the database from the --db flag and wires up a PIN authenticator.
// The caller owns the returned database handle.
func openAuth(cmd *cobra.Command) (*pin.Auth, *db.DB, error) {
	dbPath, _ := cmd.Flags().GetString("db")

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("database not found at %s. Run 'blockwarden init' first", dbPath)
	}

	database, err := db.New(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	return pin.NewAuth(store.New(database)), database, nil
}

// stdinReader is reused for non-terminal input to avoid losing buffered data
var stdinReader *bufio.Reader

func promptPIN(prompt string) (string, error) {
	fmt.Print(prompt)

	// Try to read securely (hides input)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		value, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println() // Add newline after hidden input
		if err != nil {
			return "", err
		}
		return string(value), nil
	}

	// Fallback for non-terminal (e.g., piped input)
	// Reuse reader to avoid losing buffered data
	if stdinReader == nil {
		stdinReader = bufio.NewReader(os.Stdin)
	}
	value, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func init() {
	rootCmd.AddCommand(pinCmd)
	pinCmd.AddCommand(pinSetCmd)
	pinCmd.AddCommand(pinVerifyCmd)
	pinCmd.AddCommand(pinUpdateCmd)

	pinSetCmd.Flags().String("db", "blockwarden.db", "Path to the database file")
	pinVerifyCmd.Flags().String("db", "blockwarden.db", "Path to the database file")
	pinUpdateCmd.Flags().String("db", "blockwarden.db", "Path to the database file")
}
