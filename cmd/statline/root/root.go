package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"statline/internal/config"
	"statline/internal/ui"
)

const Version = "0.1.0"

// settings is the merged flag/env/file configuration. Execute replaces it
// before any command is built so flag bindings land on the final instance.
var settings = viper.New()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "statline",
		Short:         "Statline — score tasks into five self-improvement stats",
		Long:          "Statline turns completed tasks into stamina, skills, intelligence, power and time-management gains, with a capped progress log and trend buckets.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Version = Version
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().String(config.KeyDB, "", "SQLite database path (default ~/.statline.db)")
	cmd.PersistentFlags().String(config.KeyRules, "", "YAML scoring rules file")
	cmd.PersistentFlags().String(config.KeyLogLevel, "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().String(config.KeyLogFormat, "", "log format (console|json)")
	cmd.PersistentFlags().Bool("json", false, "print JSON instead of tables")

	cmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newDoCmd(),
		newUndoCmd(),
		newToggleCmd(),
		newStartCmd(),
		newSkipCmd(),
		newRemoveCmd(),
		newEditCmd(),
		newStatusCmd(),
		newLogCmd(),
		newTrendCmd(),
		newHistoryCmd(),
		newRulesCmd(),
		newBoardCmd(),
		newServeCmd(),
	)
	return cmd
}

func Execute() {
	v, err := config.NewViper()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
	settings = v

	rootCmd := newRootCmd()
	bindPersistentFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

func bindPersistentFlags(cmd *cobra.Command) {
	for _, key := range []string{config.KeyDB, config.KeyRules, config.KeyLogLevel, config.KeyLogFormat, "json"} {
		_ = settings.BindPFlag(key, cmd.PersistentFlags().Lookup(key))
	}
}
