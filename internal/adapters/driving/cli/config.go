package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored settings",
	Long: `Print every setting with its stored value, or the default when unset.
Environment overrides (DOCCHAT_ADDR, DOCCHAT_STORAGE_DRIVER, DOCCHAT_DSN)
are not applied here.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Validate and store a single setting.

Separators are comma-separated with Go escapes:
  docchat config set chunking.separators '\n\n,\n,. , '`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	out := cmd.OutOrStdout()
	if configPath != "" {
		fmt.Fprintf(out, "%s %s\n\n", labelText("Config file:"), configPath)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, key := range settingsService.Keys() {
		value, _ := services.SettingValue(settings, key)
		if value == "" {
			value = dimText("(unset)")
		}
		fmt.Fprintf(tw, "%s\t%s\n", key, value)
	}
	return tw.Flush()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "%s set to %q", key, value)
	return nil
}
