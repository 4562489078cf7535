package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hogwarts-cloud/profilectl/internal/exporter"
	"github.com/hogwarts-cloud/profilectl/internal/models"
	"github.com/hogwarts-cloud/profilectl/internal/topology"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const MaxConcurrentGenerations = 4

func newGenerate(opts *options) *cobra.Command {
	var (
		out    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate provisioning requests for the parameter files from path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			f, err := exporter.ParseFormat(format)
			if err != nil {
				return fmt.Errorf("failed to parse format: %w", err)
			}

			params, err := loadParams(opts)
			if err != nil {
				return err
			}

			generator, err := topology.New(opts.cfg.Profile)
			if err != nil {
				return fmt.Errorf("failed to create generator: %w", err)
			}

			documents, err := render(generator, params, f)
			if err != nil {
				return err
			}

			if out == "" {
				for _, document := range documents {
					if _, err := cmd.OutOrStdout().Write(document.Bytes()); err != nil {
						return fmt.Errorf("failed to write document: %w", err)
					}
				}
				return nil
			}

			if err := os.MkdirAll(out, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			for i, document := range documents {
				path := filepath.Join(out, params[i].Name+f.Extension())
				if err := os.WriteFile(path, document.Bytes(), 0644); err != nil {
					return fmt.Errorf("failed to write document: %w", err)
				}

				slog.Info("generated topology", "name", params[i].Name, "path", path)
			}

			return nil
		},
	}

	addPathFlag(cmd, opts)
	cmd.Flags().StringVar(&out, "out", "", "Directory to write documents to (default stdout)")
	cmd.Flags().StringVar(&format, "format", string(exporter.FormatRSpec), "Output format: rspec, yaml or json")

	return cmd
}

// render generates and exports every topology. Documents keep the order of
// params and are only returned when all of them succeeded.
func render(generator *topology.Generator, params []models.Params, format exporter.Format) ([]*bytes.Buffer, error) {
	documents := make([]*bytes.Buffer, len(params))

	eg := &errgroup.Group{}
	eg.SetLimit(MaxConcurrentGenerations)

	for i, p := range params {
		eg.Go(func() error {
			t, err := generator.Generate(p)
			if err != nil {
				return fmt.Errorf("failed to generate %s: %w", p.Name, err)
			}

			buf := &bytes.Buffer{}
			if err := exporter.Export(buf, t, format); err != nil {
				return fmt.Errorf("failed to export %s: %w", p.Name, err)
			}

			documents[i] = buf

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return documents, nil
}
