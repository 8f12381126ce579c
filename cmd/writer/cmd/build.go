package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	werrors "writer/src/errors"
	"writer/src/prompt"
	"writer/src/requestfile"
)

// buildResult is the document printed by --output yaml
type buildResult struct {
	Request prompt.WritingRequest `yaml:"request"`
	Prompt  string                `yaml:"prompt"`
}

// runBuild is the main execution function when no subcommand is specified
func (a *app) runBuild(cmd *cobra.Command, args []string) error {
	format := a.v.GetString("output.format")
	if format != "text" && format != "yaml" {
		return fmt.Errorf("unsupported output format %q (use text or yaml)", format)
	}

	req, err := a.resolveRequest(cmd, args)
	if err != nil {
		return err
	}
	if a.opts.from != "" {
		if err := checkRequired(req); err != nil {
			return err
		}
	}

	a.log.Debug("building prompt",
		zap.String("form", req.Form),
		zap.String("topic", req.Topic),
		zap.String("tone", req.Tone),
		zap.String("perspective", req.Perspective),
		zap.String("audience", req.Audience),
		zap.Strings("characters", req.Characters),
		zap.Strings("constraints", req.Constraints))

	text, err := prompt.Build(req)
	if err != nil {
		a.log.Error("prompt build failed", zap.Error(err))
		return err
	}

	return writeResult(cmd.OutOrStdout(), format, req, text)
}

// resolveRequest assembles the request from layered defaults, an optional
// request file, explicitly set flags and positional args, in that order
func (a *app) resolveRequest(cmd *cobra.Command, args []string) (prompt.WritingRequest, error) {
	base := prompt.NewRequest("", "",
		prompt.WithTone(a.v.GetString("defaults.tone")),
		prompt.WithPerspective(a.v.GetString("defaults.perspective")),
		prompt.WithAudience(a.v.GetString("defaults.audience")),
		prompt.WithEnvironment(a.v.GetString("defaults.environment")),
		prompt.WithCharacters(a.listSetting("defaults.characters")...),
		prompt.WithConstraints(a.listSetting("defaults.constraints")...),
	)

	req := base
	if a.opts.from != "" {
		var err error
		req, err = requestfile.LoadOver(a.opts.from, base)
		if err != nil {
			return prompt.WritingRequest{}, err
		}
		a.log.Debug("request file loaded", zap.String("path", a.opts.from))

		flags := cmd.Flags()
		if flags.Changed("tone") {
			req.Tone = a.opts.tone
		}
		if flags.Changed("perspective") {
			req.Perspective = a.opts.perspective
		}
		if flags.Changed("audience") {
			req.Audience = a.opts.audience
		}
		if flags.Changed("environment") {
			req.Environment = a.opts.environment
		}
	}

	if cmd.Flags().Changed("characters") {
		req.Characters = append([]string(nil), a.opts.characters...)
	}
	if cmd.Flags().Changed("constraints") {
		req.Constraints = append([]string(nil), a.opts.constraints...)
	}

	if len(args) > 0 {
		req.Form = args[0]
	}
	if len(args) > 1 {
		req.Topic = args[1]
	}
	return req, nil
}

// listSetting reads a list default. Values from the environment arrive as one
// string and are split on commas, the same way `config set` splits them.
func (a *app) listSetting(key string) []string {
	if raw, ok := a.v.Get(key).(string); ok {
		return splitList(raw)
	}
	return a.v.GetStringSlice(key)
}

// checkRequired rejects a request file that, even after positional args are
// applied, still leaves form or topic unset
func checkRequired(req prompt.WritingRequest) error {
	for _, field := range []struct{ name, value string }{
		{"form", req.Form},
		{"topic", req.Topic},
	} {
		if field.value == "" {
			return &werrors.ValidationError{
				Field:   field.name,
				Message: fmt.Sprintf("missing required field: %s (pass it as an argument or set it in the request file)", field.name),
				Err:     werrors.ErrMissingRequired,
			}
		}
	}
	return nil
}

func writeResult(w io.Writer, format string, req prompt.WritingRequest, text string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(buildResult{Request: req, Prompt: text}); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		return enc.Close()
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
