package config

import (
	"fmt"
	"strings"

	"github.com/hogwarts-cloud/profilectl/internal/models"
	"github.com/samber/lo"
)

type Parameter struct {
	Name    string
	Title   string
	Type    string
	Default string
	Choices []string
	Help    string
}

// Parameters describes the parameter file accepted by the profile.
func Parameters(profile models.Profile) []Parameter {
	choices := func(choices []models.Choice) []string {
		return lo.Map(choices, func(c models.Choice, _ int) string {
			return fmt.Sprintf("%s (%s)", c.Name, c.Description)
		})
	}

	defaults := profile.Defaults

	return []Parameter{
		{
			Name:    "image",
			Title:   "Disk Image",
			Type:    "image",
			Default: defaults.Image,
			Choices: choices(profile.Images),
			Help:    "Base disk image that all the nodes of the cluster are booted with.",
		},
		{
			Name:    "hardware_type",
			Title:   "Hardware Type",
			Type:    "nodetype",
			Default: defaults.HardwareType,
			Choices: choices(profile.HardwareTypes),
		},
		{
			Name:    "username",
			Title:   "Username",
			Type:    "string",
			Default: defaults.Username,
			Help:    "Username for which all user-specific software will be configured.",
		},
		{
			Name:    "num_nodes",
			Title:   "Nodes",
			Type:    "integer",
			Default: fmt.Sprint(defaults.NumNodes),
			Help:    "Number of nodes. The total number of machines is this plus the NFS server.",
		},
		{
			Name:    "local_storage_size",
			Title:   "Size of Node Local Storage Partition",
			Type:    "string",
			Default: defaults.LocalStorageSize,
			Help:    fmt.Sprintf("Size of the node-local partition mounted at %s.", profile.Paths.LocalStorage),
		},
		{
			Name:    "nfs_storage_size",
			Title:   "Size of NFS Shared Storage",
			Type:    "string",
			Default: defaults.NFSStorageSize,
			Help:    fmt.Sprintf("Size of the partition on the NFS server hosting home directories at %s.", profile.Paths.SharedHome),
		},
		{
			Name:    "dataset_urns",
			Title:   "Datasets",
			Type:    "string",
			Default: defaults.DatasetURNs,
			Help: strings.Join([]string{
				"Space separated list of datasets to mount.",
				fmt.Sprintf("Datasets are mounted on the NFS server under %s", profile.Paths.Datasets),
				"and shared with the other nodes over NFS.",
			}, " "),
		},
	}
}
