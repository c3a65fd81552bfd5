package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage engine settings",
	Long: `View and change engine configuration stored in ~/.noema/config.toml.

Keys use dot notation, e.g. search.max_results or watch.extensions.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a single setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a setting and persist it immediately. Values are parsed as
bool, int or float where possible, otherwise stored as strings.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

// settingsKeys are the keys shown by the show command.
var settingsKeys = []string{
	"search.max_results",
	"search.min_relevance",
	"graph.chunk_size",
	"watch.enabled",
	"watch.dir",
	"watch.extensions",
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Printf("Config file: %s\n\n", configStore.Path())

	keys := append([]string(nil), settingsKeys...)
	sort.Strings(keys)
	for _, key := range keys {
		value, ok := configStore.Get(key)
		if !ok {
			cmd.Printf("  %-24s (unset)\n", key)
			continue
		}
		cmd.Printf("  %-24s %v\n", key, value)
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown setting %q", args[0])
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	if err := configStore.Set(key, parseSettingValue(raw)); err != nil {
		return fmt.Errorf("saving setting: %w", err)
	}
	cmd.Printf("%s = %s\n", key, raw)
	return nil
}

// parseSettingValue converts a raw CLI string into the most specific
// type it can represent.
func parseSettingValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return raw
}
