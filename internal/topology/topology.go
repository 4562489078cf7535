package topology

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"text/template"

	"github.com/hogwarts-cloud/profilectl/internal/models"
	"github.com/hogwarts-cloud/profilectl/internal/network"
	"github.com/hogwarts-cloud/profilectl/internal/validator"
	"github.com/samber/lo"
)

const (
	SharedHomeVolumeSuffix   = "_nfs_bs"
	LocalStorageVolumeSuffix = "_local_storage_bs"
	DatasetInterface         = "if2"
	SetupTemplate            = "setup"
)

var ErrMissingNetwork = errors.New("missing network")

// SetupArgs are the values available to the setup command template.
type SetupArgs struct {
	SharedHomeDir string
	DatasetsDir   string
	Username      string
	NodeCount     int
}

type Generator struct {
	profile models.Profile
	setup   *template.Template
}

func (g *Generator) Generate(params models.Params) (models.Topology, error) {
	topology := models.Topology{Name: params.Name}

	topology, err := g.BuildNodes(topology, params)
	if err != nil {
		return models.Topology{}, fmt.Errorf("failed to build nodes: %w", err)
	}

	topology = g.BuildNetworks(topology, params)

	topology, err = g.AttachStorage(topology, params)
	if err != nil {
		return models.Topology{}, fmt.Errorf("failed to attach storage: %w", err)
	}

	topology, err = g.AssignAddresses(topology)
	if err != nil {
		return models.Topology{}, fmt.Errorf("failed to assign addresses: %w", err)
	}

	slog.Debug("generated topology",
		"name", topology.Name,
		"nodes", len(topology.Nodes),
		"networks", len(topology.Networks),
		"datasets", len(topology.Datasets),
	)

	return topology, nil
}

// Hostnames returns the NFS server followed by n1..nK.
func Hostnames(count int) []string {
	return append([]string{models.NFSHostname}, lo.Times(count, func(i int) string {
		return fmt.Sprintf("%s%d", models.HostnamePrefix, i+1)
	})...)
}

func (g *Generator) BuildNodes(topology models.Topology, params models.Params) (models.Topology, error) {
	topology = topology.Clone()

	command, err := g.setupCommand(params)
	if err != nil {
		return models.Topology{}, err
	}

	for _, hostname := range Hostnames(params.NodeCount) {
		topology.Nodes = append(topology.Nodes, models.Node{
			Name:         hostname,
			HardwareType: string(params.HardwareType),
			DiskImage:    g.ImageURN(params.Image),
			Services:     []models.Service{{Shell: g.profile.Setup.Shell, Command: command}},
		})
	}

	return topology, nil
}

func (g *Generator) BuildNetworks(topology models.Topology, params models.Params) models.Topology {
	topology = topology.Clone()

	topology.Networks = append(topology.Networks, newLAN(g.profile.ClusterLAN.Name))

	if len(params.Datasets) > 0 {
		topology.Networks = append(topology.Networks, newLAN(g.profile.DatasetLAN.Name))
	}

	return topology
}

// AttachStorage attaches dataset imports to the dataset LAN, then walks the
// nodes joining each to the cluster LAN and giving it a storage volume.
// The LANs come from BuildNetworks with the same params; ErrMissingNetwork is
// returned otherwise.
func (g *Generator) AttachStorage(topology models.Topology, params models.Params) (models.Topology, error) {
	topology = topology.Clone()

	clan := topology.Network(g.profile.ClusterLAN.Name)
	if clan == nil {
		return models.Topology{}, fmt.Errorf("%w: %s", ErrMissingNetwork, g.profile.ClusterLAN.Name)
	}

	dslan := topology.Network(g.profile.DatasetLAN.Name)
	if dslan == nil && len(params.Datasets) > 0 {
		return models.Topology{}, fmt.Errorf("%w: %s", ErrMissingNetwork, g.profile.DatasetLAN.Name)
	}

	for i, dataset := range params.Datasets {
		name := fmt.Sprintf("%s%02d", models.DatasetPrefix, i+1)

		topology.Datasets = append(topology.Datasets, models.DatasetImport{
			Name:       name,
			Dataset:    string(dataset),
			MountPoint: path.Join(g.profile.Paths.Datasets, dataset.Name()),
			Interface:  models.Interface{Name: models.PrimaryInterface, Network: dslan.Name},
		})
		dslan.Members = append(dslan.Members, models.InterfaceRef{Owner: name, Interface: models.PrimaryInterface})
	}

	for i := range topology.Nodes {
		node := &topology.Nodes[i]

		attach(node, clan, models.PrimaryInterface)

		if node.Name != models.NFSHostname {
			node.Storage = append(node.Storage, models.StorageVolume{
				Name:       node.Name + LocalStorageVolumeSuffix,
				MountPoint: g.profile.Paths.LocalStorage,
				Size:       params.LocalStorageSize.String(),
			})
			continue
		}

		node.Storage = append(node.Storage, models.StorageVolume{
			Name:       node.Name + SharedHomeVolumeSuffix,
			MountPoint: g.profile.Paths.SharedHome,
			Size:       params.SharedStorageSize.String(),
		})

		if len(params.Datasets) > 0 {
			attach(node, dslan, DatasetInterface)
		}
	}

	return topology, nil
}

// AssignAddresses gives static addresses to the members of every LAN whose
// profile definition has a CIDR, in member order.
func (g *Generator) AssignAddresses(topology models.Topology) (models.Topology, error) {
	topology = topology.Clone()

	for _, lan := range []models.LAN{g.profile.ClusterLAN, g.profile.DatasetLAN} {
		net := topology.Network(lan.Name)
		if net == nil || lan.CIDR == nil {
			continue
		}

		ips, err := network.GetAvailableIPs(len(net.Members), *lan.CIDR, lan.ReservedIPs)
		if err != nil {
			return models.Topology{}, fmt.Errorf("failed to get available ips for %s: %w", lan.Name, err)
		}

		netmask := network.Netmask(*lan.CIDR)
		for i, member := range net.Members {
			iface := lookupInterface(&topology, member)
			if iface == nil {
				return models.Topology{}, fmt.Errorf("%s: member %s has no interface", lan.Name, member.ClientID())
			}

			iface.IP = ips[i].String()
			iface.Netmask = netmask
		}
	}

	return topology, nil
}

func (g *Generator) ImageURN(image models.Image) string {
	return fmt.Sprintf("urn:publicid:IDN+%s+image+%s:%s", g.profile.ImageAuthority, g.profile.ImageProject, image)
}

func (g *Generator) setupCommand(params models.Params) (string, error) {
	buf := &strings.Builder{}
	if err := g.setup.ExecuteTemplate(buf, SetupTemplate, SetupArgs{
		SharedHomeDir: g.profile.Paths.SharedHome,
		DatasetsDir:   g.profile.Paths.Datasets,
		Username:      params.Username,
		NodeCount:     params.NodeCount,
	}); err != nil {
		return "", fmt.Errorf("failed to execute setup command template: %w", err)
	}

	return buf.String(), nil
}

func New(profile models.Profile) (*Generator, error) {
	if err := validator.ValidateProfile(profile); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	setup, err := template.New(SetupTemplate).Option("missingkey=error").Parse(profile.Setup.Command)
	if err != nil {
		return nil, fmt.Errorf("failed to parse setup command template: %w", err)
	}

	return &Generator{
		profile: profile,
		setup:   setup,
	}, nil
}

func newLAN(name string) models.Network {
	return models.Network{
		Name:             name,
		BestEffort:       true,
		VLANTagging:      true,
		LinkMultiplexing: true,
	}
}

func attach(node *models.Node, lan *models.Network, iface string) {
	node.Interfaces = append(node.Interfaces, models.Interface{Name: iface, Network: lan.Name})
	lan.Members = append(lan.Members, models.InterfaceRef{Owner: node.Name, Interface: iface})
}

func lookupInterface(topology *models.Topology, ref models.InterfaceRef) *models.Interface {
	if node := topology.Node(ref.Owner); node != nil {
		for i := range node.Interfaces {
			if node.Interfaces[i].Name == ref.Interface {
				return &node.Interfaces[i]
			}
		}
	}

	if dataset := topology.Dataset(ref.Owner); dataset != nil && dataset.Interface.Name == ref.Interface {
		return &dataset.Interface
	}

	return nil
}
