// cmd/authors.go
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/markb/blockwarden/internal/db"
	"github.com/markb/blockwarden/internal/store"
	"github.com/spf13/cobra"
)

var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Manage blocked authors",
	Long:  `Commands for managing the blocked-authors list directly.`,
}

var authorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all blocked authors",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, database, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		authors, err := st.ListAuthors()
		if err != nil {
			return fmt.Errorf("failed to list authors: %w", err)
		}

		if len(authors) == 0 {
			fmt.Println("No blocked authors")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, a := range authors {
			fmt.Fprintf(w, "%d\t%s\n", a.ID, a.Name)
		}
		return w.Flush()
	},
}

var authorsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Block an author",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, database, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		id, err := st.AddAuthor(args[0])
		if errors.Is(err, store.ErrDuplicateAuthor) {
			fmt.Printf("Author %q is already blocked\n", args[0])
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to add author: %w", err)
		}

		fmt.Printf("Blocked author %q (ID: %d)\n", args[0], id)
		return nil
	},
}

var authorsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Unblock an author by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		st, database, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := st.DeleteAuthor(id); err != nil {
			return fmt.Errorf("failed to remove author: %w", err)
		}

		fmt.Printf("Removed author %d\n", id)
		return nil
	},
}

var authorsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all blocked authors",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, database, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := st.ClearAuthors(); err != nil {
			return fmt.Errorf("failed to clear authors: %w", err)
		}

		fmt.Println("Cleared all blocked authors")
		return nil
	},
}

func openStore(cmd *cobra.Command) (*store.Store, *db.DB, error) {
	dbPath, _ := cmd.Flags().GetString("db")

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("database not found at %s. Run 'blockwarden init' first", dbPath)
	}

	database, err := db.New(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	return store.New(database), database, nil
}

func init() {
	rootCmd.AddCommand(authorsCmd)
	authorsCmd.AddCommand(authorsListCmd)
	authorsCmd.AddCommand(authorsAddCmd)
	authorsCmd.AddCommand(authorsRemoveCmd)
	authorsCmd.AddCommand(authorsClearCmd)

	for _, c := range []*cobra.Command{authorsListCmd, authorsAddCmd, authorsRemoveCmd, authorsClearCmd} {
		c.Flags().String("db", "blockwarden.db", "Path to the database file")
	}
}
