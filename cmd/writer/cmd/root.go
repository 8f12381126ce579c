package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"writer/src/config"
	"writer/src/forms"
	"writer/src/logger"
	"writer/src/prompt"
)

// options holds the raw flag values of one command tree
type options struct {
	cfgFile string
	from    string
	output  string

	tone        string
	perspective string
	audience    string
	environment string
	characters  []string
	constraints []string

	logLevel  string
	logFormat string
}

// app carries state resolved before a command runs
type app struct {
	opts *options
	v    *viper.Viper
	log  *zap.Logger
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the writer command tree.
func NewRootCmd() *cobra.Command {
	a := &app{
		opts: &options{},
		v:    viper.New(),
		log:  logger.NewNop(),
	}
	opts := a.opts

	rootCmd := &cobra.Command{
		Use:   "writer <form> <topic>",
		Short: "Generate a high-quality creative-writing prompt for any major writing form",
		Long: `writer assembles a structured prompt for a creative-writing task.

Supported forms: ` + strings.Join(forms.Names(), ", ") + `

Defaults for tone, perspective, audience, environment, characters and
constraints come from, in order of precedence: flags, WRITER_* environment
variables, the config file, and built-in values.

Examples:
  writer novel "A poet loses memory in a mountain village" --characters Reva --characters Danish
  writer poetry "Night trains" --tone wistful --constraints "under 20 lines"
  writer --from request.toml --output yaml`,
		Args:              a.validateArgs,
		ValidArgsFunction: completeForms,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
		RunE: a.runBuild,
	}

	// Request flags
	rootCmd.Flags().StringVar(&opts.tone, "tone", prompt.DefaultTone, "Tone of the writing (an empty value uses the default)")
	rootCmd.Flags().StringVar(&opts.perspective, "perspective", prompt.DefaultPerspective, "Narrative perspective (an empty value uses the default)")
	rootCmd.Flags().StringVar(&opts.audience, "audience", prompt.DefaultAudience, "Intended audience (an empty value uses the default)")
	rootCmd.Flags().StringVar(&opts.environment, "environment", "", "Setting or environment direction")
	rootCmd.Flags().StringArrayVar(&opts.characters, "characters", nil, "Character name or short role tag (repeatable)")
	rootCmd.Flags().StringArrayVar(&opts.constraints, "constraints", nil, "Extra constraint, e.g. word-count<300 (repeatable)")

	// Input and output
	rootCmd.Flags().StringVar(&opts.from, "from", "", "Read the request from a .toml or .yaml file")
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output format: text or yaml")

	// Config and logging
	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/writer/config.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: console or json")

	bind := map[string]string{
		"defaults.tone":        "tone",
		"defaults.perspective": "perspective",
		"defaults.audience":    "audience",
		"defaults.environment": "environment",
		"output.format":        "output",
	}
	for key, flag := range bind {
		a.v.BindPFlag(key, rootCmd.Flags().Lookup(flag))
	}
	a.v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	a.v.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(
		newFormsCmd(),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// configPath returns the config file named by --config, or the default
func (a *app) configPath() string {
	if a.opts.cfgFile != "" {
		return a.opts.cfgFile
	}
	return config.File()
}

// initConfig layers the config file and environment under the bound flags
func (a *app) initConfig(cmd *cobra.Command) error {
	path := a.configPath()
	settings, err := config.LoadSettings(path)
	if err != nil {
		return err
	}
	for key, value := range settings.Map() {
		a.v.SetDefault(key, value)
	}

	a.v.SetEnvPrefix("WRITER")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	log, err := logger.New(a.v.GetString("log.level"), a.v.GetString("log.format"))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	a.log = log.Named("writer")
	a.log.Debug("configuration loaded",
		zap.String("config_file", path),
		zap.String("command", cmd.Name()))
	return nil
}

// validateArgs rejects unsupported forms before the builder sees them
func (a *app) validateArgs(cmd *cobra.Command, args []string) error {
	if a.opts.from == "" {
		if err := cobra.ExactArgs(2)(cmd, args); err != nil {
			return err
		}
	} else if err := cobra.MaximumNArgs(2)(cmd, args); err != nil {
		return err
	}
	if len(args) > 0 {
		return prompt.ValidateForm(args[0])
	}
	return nil
}

func completeForms(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return forms.Names(), cobra.ShellCompDirectiveNoFileComp
}
