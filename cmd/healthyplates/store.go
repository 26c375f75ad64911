package healthyplates

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rajeshkanna-s/healthyplates/internal/kvstore"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect the scoped key-value store",
	Long:  "Low-level access to stored values. Scopes used by the app: sleep, gratitude, practices.",
}

var storeJSON bool

var storeGetCmd = &cobra.Command{
	Use:   "get <scope> <key>",
	Short: "Print a stored value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(args[0], func(s *kvstore.Store) error {
			v, err := s.Get(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		})
	},
}

var storeSetCmd = &cobra.Command{
	Use:   "set <scope> <key> <value>",
	Short: "Store a value, replacing any previous one",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(args[0], func(s *kvstore.Store) error {
			if err := s.Set(args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s/%s\n", s.Scope(), args[1])
			return nil
		})
	},
}

var storeRemoveCmd = &cobra.Command{
	Use:     "rm <scope> <key>",
	Aliases: []string{"remove"},
	Short:   "Remove a stored value",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(args[0], func(s *kvstore.Store) error {
			if err := s.Remove(args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s/%s\n", s.Scope(), args[1])
			return nil
		})
	},
}

var storeListCmd = &cobra.Command{
	Use:   "ls <scope>",
	Short: "List keys in a scope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(args[0], func(s *kvstore.Store) error {
			items, err := s.List()
			if err != nil {
				return err
			}
			if storeJSON {
				return printJSON(cmd.OutOrStdout(), "store entries", items)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tBYTES\tUPDATED")
			for _, e := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", e.Key, len(e.Value), e.UpdatedAt)
			}
			return nil
		})
	},
}

func withStore(scope string, run func(*kvstore.Store) error) error {
	return withDB(func(sqldb *sql.DB) error {
		s, err := kvstore.New(sqldb, scope)
		if err != nil {
			return err
		}
		return run(s)
	})
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeGetCmd, storeSetCmd, storeRemoveCmd, storeListCmd)
	storeListCmd.Flags().BoolVar(&storeJSON, "json", false, "Output as JSON")
}
