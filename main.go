package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hogwarts-cloud/profilectl/config"
	"github.com/hogwarts-cloud/profilectl/internal/models"
	"github.com/hogwarts-cloud/profilectl/internal/parser"
	"github.com/hogwarts-cloud/profilectl/internal/validator"
	"github.com/spf13/cobra"
)

var (
	ErrUnknownLogLevel  = errors.New("unknown log level")
	ErrUnknownLogFormat = errors.New("unknown log format")
)

type options struct {
	path       string
	configPath string
	cfg        config.Config
}

func newRoot() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "profilectl",
		Short:         "Generate NFS cluster topologies from profile parameters",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath, cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
			if err != nil {
				return fmt.Errorf("failed to configure logging: %w", err)
			}

			opts.cfg = cfg
			slog.SetDefault(logger)

			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to directory with profile.yaml")
	root.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	root.PersistentFlags().String("log-format", "text", "Log format: text or json")

	root.AddCommand(
		newValidate(opts),
		newGenerate(opts),
		newDescribe(opts),
		newParams(opts),
	)

	return root
}

func newValidate(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the parameter files from path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			params, err := loadParams(opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d parameter file(s) are valid\n", len(params))

			return nil
		},
	}

	addPathFlag(cmd, opts)

	return cmd
}

func addPathFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.path, "path", "", "Path to parameter file or directory")
	_ = cmd.MarkFlagRequired("path")
}

// loadParams parses and validates every parameter file. Nothing is returned
// unless all of them are valid.
func loadParams(opts *options) ([]models.Params, error) {
	raws, err := parser.Parse(opts.path, opts.cfg.Profile.Defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to parse params: %w", err)
	}

	if len(raws) == 0 {
		return nil, fmt.Errorf("no parameter files found in %s", opts.path)
	}

	params := make([]models.Params, 0, len(raws))
	names := make(map[string]string, len(raws))

	for _, raw := range raws {
		p, err := validator.Validate(raw, opts.cfg.Profile)
		if err != nil {
			return nil, fmt.Errorf("failed to validate %s: %w", raw.Location, err)
		}

		if location, ok := names[p.Name]; ok {
			return nil, fmt.Errorf("failed to validate %s: name %s already used by %s", raw.Location, p.Name, location)
		}
		names[p.Name] = raw.Location

		slog.Debug("validated params", "name", p.Name, "location", raw.Location)

		params = append(params, p)
	}

	return params, nil
}

func newLogger(w io.Writer, cfg config.Log) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLogLevel, cfg.Level)
	}

	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLogFormat, cfg.Format)
	}
}

func main() {
	if err := newRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
