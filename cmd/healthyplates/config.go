package healthyplates

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rajeshkanna-s/healthyplates/internal/service"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage healthyplates local configuration",
	Long: "Preferences stored in the database. Runtime settings such as the log level and the " +
		"HTTP listen address live in config.yaml or HEALTHYPLATES_* environment variables.",
}

var (
	cfgSleepGoal float64
	cfgPeople    int
	cfgCuisine   string
	cfgDiet      string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		updates := map[string]string{}
		if cmd.Flags().Changed("sleep-goal") {
			updates[service.ConfigSleepGoalHours] = fmt.Sprintf("%g", cfgSleepGoal)
		}
		if cmd.Flags().Changed("people") {
			updates[service.ConfigDefaultPeople] = fmt.Sprintf("%d", cfgPeople)
		}
		if cmd.Flags().Changed("cuisine") {
			updates[service.ConfigDefaultCuisine] = cfgCuisine
		}
		if cmd.Flags().Changed("diet") {
			updates[service.ConfigDefaultDiet] = cfgDiet
		}
		if len(updates) == 0 {
			return fmt.Errorf("set at least one flag")
		}
		return withDB(func(sqldb *sql.DB) error {
			for k, v := range updates {
				if err := service.SetConfig(sqldb, k, v); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", len(updates))
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			values, err := service.ListConfig(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, values[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().Float64Var(&cfgSleepGoal, "sleep-goal", 8, "Nightly sleep goal in hours")
	configSetCmd.Flags().IntVar(&cfgPeople, "people", 1, "Default household size for grocery lists")
	configSetCmd.Flags().StringVar(&cfgCuisine, "cuisine", "", "Default cuisine: south, north, or mixed")
	configSetCmd.Flags().StringVar(&cfgDiet, "diet", "", "Default diet: veg or non-veg")
}
