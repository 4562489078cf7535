package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/hogwarts-cloud/profilectl/config"
	"github.com/hogwarts-cloud/profilectl/internal/models"
	"github.com/hogwarts-cloud/profilectl/internal/topology"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newDescribe(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the topologies generated from path as tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			params, err := loadParams(opts)
			if err != nil {
				return err
			}

			generator, err := topology.New(opts.cfg.Profile)
			if err != nil {
				return fmt.Errorf("failed to create generator: %w", err)
			}

			for _, p := range params {
				t, err := generator.Generate(p)
				if err != nil {
					return fmt.Errorf("failed to generate %s: %w", p.Name, err)
				}

				if err := describeTopology(cmd.OutOrStdout(), t); err != nil {
					return fmt.Errorf("failed to describe %s: %w", p.Name, err)
				}
			}

			return nil
		},
	}

	addPathFlag(cmd, opts)

	return cmd
}

func newParams(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Print the parameters accepted in parameter files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Name", "Title", "Type", "Default", "Choices", "Help")

			for _, parameter := range config.Parameters(opts.cfg.Profile) {
				if err := table.Append([]string{
					parameter.Name,
					parameter.Title,
					parameter.Type,
					parameter.Default,
					strings.Join(parameter.Choices, "\n"),
					parameter.Help,
				}); err != nil {
					return fmt.Errorf("failed to append row: %w", err)
				}
			}

			return table.Render()
		},
	}
}

func describeTopology(w io.Writer, t models.Topology) error {
	fmt.Fprintf(w, "Topology %s\n", t.Name)

	table := tablewriter.NewWriter(w)
	table.Header("Node", "Hardware", "Interfaces", "Mount", "Size")

	for _, node := range t.Nodes {
		interfaces := lo.Map(node.Interfaces, func(iface models.Interface, _ int) string {
			return describeInterface(iface)
		})

		for _, volume := range node.Storage {
			if err := table.Append([]string{
				node.Name,
				node.HardwareType,
				strings.Join(interfaces, "\n"),
				volume.MountPoint,
				volume.Size,
			}); err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}
	}

	for _, dataset := range t.Datasets {
		if err := table.Append([]string{
			dataset.Name,
			"dataset",
			describeInterface(dataset.Interface),
			dataset.MountPoint,
			dataset.Dataset,
		}); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	networks := lo.Map(t.Networks, func(n models.Network, _ int) string {
		return fmt.Sprintf("%s (%d interfaces)", n.Name, len(n.Members))
	})
	fmt.Fprintf(w, "Networks: %s\n\n", strings.Join(networks, ", "))

	return nil
}

func describeInterface(iface models.Interface) string {
	if iface.IP == "" {
		return fmt.Sprintf("%s@%s", iface.Name, iface.Network)
	}
	return fmt.Sprintf("%s@%s %s", iface.Name, iface.Network, iface.IP)
}
