package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cleanread/internal/output"
	"github.com/jmylchreest/cleanread/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change reader settings",
	Long: `Show or change the persisted reader settings.

Keys: theme, textSize, autoClean, viewMode, summaryMode, ttsVoice, ttsSpeed

Examples:
  cleanread settings get
  cleanread settings get theme
  cleanread settings set textSize 120
  cleanread settings reset --store redis --redis-url redis://localhost:6379/0`,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the defaults",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsResetCmd)

	addStoreFlags(settingsCmd.PersistentFlags())
	settingsGetCmd.Flags().StringP("output", "o", "", "output format: json, yaml (default: key=value lines)")
}

// withStore opens the configured store for the duration of fn.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, store settings.Store) error) error {
	initLogger()
	bindStoreFlags(cmd.Flags())

	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(cmd.Context(), store)
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, store settings.Store) error {
		s, err := store.Load(ctx)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			v, err := s.Get(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(os.Stdout, v)
			return err
		}

		if name, _ := cmd.Flags().GetString("output"); name != "" {
			format, ok := output.ParseFormat(name)
			if !ok {
				return fmt.Errorf("unknown output format %q (supported: json, yaml)", name)
			}
			return output.Write(os.Stdout, format, s)
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		m := s.Map()
		for _, k := range settings.Keys {
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", k, m[k])
		}
		return tw.Flush()
	})
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, store settings.Store) error {
		key, value := args[0], args[1]
		if _, err := settings.Update(ctx, store, func(s *settings.Settings) error {
			return s.Set(key, value)
		}); err != nil {
			return err
		}
		logInfo("%s set to %s", key, value)
		return nil
	})
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, store settings.Store) error {
		if err := store.Reset(ctx); err != nil {
			return err
		}
		logInfo("settings reset to defaults")
		return nil
	})
}
