package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"writer/src/config"
)

// sliceKeys are settings holding lists; `config set` splits their value on commas
var sliceKeys = map[string]bool{
	"defaults.characters":  true,
	"defaults.constraints": true,
}

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage writer configuration",
		Long: `Manage writer configuration settings.

Examples:
  writer config get defaults.tone
  writer config set defaults.tone "wry, understated"
  writer config set defaults.constraints "no profanity,under 500 words"
  writer config list
  writer config path
  writer config edit`,
	}

	configGetCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := checkKey(key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatValue(a.v.Get(key)))
			return nil
		},
	}

	configSetCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := checkKey(key); err != nil {
				return err
			}

			configFile := a.configPath()
			fileCfg := viper.New()
			fileCfg.SetConfigFile(configFile)
			fileCfg.SetConfigType("toml")
			if _, err := os.Stat(configFile); err == nil {
				if err := fileCfg.ReadInConfig(); err != nil {
					return fmt.Errorf("failed to read config: %w", err)
				}
			}

			if sliceKeys[key] {
				fileCfg.Set(key, splitList(value))
			} else {
				fileCfg.Set(key, value)
			}

			if err := config.EnsureDir(configFile); err != nil {
				return err
			}
			if err := fileCfg.WriteConfigAs(configFile); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			// Make sure the written file still decodes
			if _, err := config.LoadSettings(configFile); err != nil {
				return err
			}
			a.log.Debug("config updated", zap.String("key", key), zap.String("file", configFile))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Set %s = %s\n", key, value)
			fmt.Fprintf(out, "Config saved to %s\n", configFile)
			return nil
		},
	}

	configListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			keys := knownKeys()

			fmt.Fprintln(out, "Configuration settings:")
			for _, key := range keys {
				fmt.Fprintf(out, "  %s = %s\n", key, formatValue(a.v.Get(key)))
			}

			if configFile := a.configPath(); fileExists(configFile) {
				fmt.Fprintf(out, "\nConfig file: %s\n", configFile)
			}
		},
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.configPath())
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration file in your default editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile := a.configPath()
			if !fileExists(configFile) {
				if err := config.EnsureDir(configFile); err != nil {
					return err
				}
				if err := os.WriteFile(configFile, []byte("# writer configuration file\n"), 0644); err != nil {
					return err
				}
			}

			editor := findEditor()
			if editor == "" {
				return fmt.Errorf("no editor found; set $EDITOR or $VISUAL")
			}

			editorCmd := exec.Command(editor, configFile)
			editorCmd.Stdin = os.Stdin
			editorCmd.Stdout = cmd.OutOrStdout()
			editorCmd.Stderr = cmd.ErrOrStderr()
			return editorCmd.Run()
		},
	}

	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd, configPathCmd, configEditCmd)
	return configCmd
}

// knownKeys returns the settable keys, sorted
func knownKeys() []string {
	var keys []string
	for k := range config.DefaultSettings().Map() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func checkKey(key string) error {
	for _, k := range knownKeys() {
		if k == key {
			return nil
		}
	}
	return fmt.Errorf("unknown config key '%s'. Choose from: %s", key, strings.Join(knownKeys(), ", "))
}

// formatValue renders lists as comma-separated text
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, ", ")
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return strings.Join(items, ", ")
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func findEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if editor := os.Getenv(env); editor != "" {
			return editor
		}
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if _, err := exec.LookPath(e); err == nil {
			return e
		}
	}
	return ""
}
