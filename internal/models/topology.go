package models

const (
	NFSHostname      = "nfs"
	HostnamePrefix   = "n"
	DatasetPrefix    = "dataset"
	PrimaryInterface = "if1"
)

type Topology struct {
	Name     string          `yaml:"name" json:"name"`
	Nodes    []Node          `yaml:"nodes" json:"nodes"`
	Networks []Network       `yaml:"networks" json:"networks"`
	Datasets []DatasetImport `yaml:"datasets,omitempty" json:"datasets,omitempty"`
}

type Node struct {
	Name         string          `yaml:"name" json:"name"`
	HardwareType string          `yaml:"hardware_type" json:"hardware_type"`
	DiskImage    string          `yaml:"disk_image" json:"disk_image"`
	Interfaces   []Interface     `yaml:"interfaces" json:"interfaces"`
	Storage      []StorageVolume `yaml:"storage" json:"storage"`
	Services     []Service       `yaml:"services" json:"services"`
}

type Interface struct {
	Name    string `yaml:"name" json:"name"`
	Network string `yaml:"network" json:"network"`
	IP      string `yaml:"ip,omitempty" json:"ip,omitempty"`
	Netmask string `yaml:"netmask,omitempty" json:"netmask,omitempty"`
}

type InterfaceRef struct {
	Owner     string `yaml:"owner" json:"owner"`
	Interface string `yaml:"interface" json:"interface"`
}

func (r InterfaceRef) ClientID() string {
	return r.Owner + ":" + r.Interface
}

type Network struct {
	Name             string         `yaml:"name" json:"name"`
	BestEffort       bool           `yaml:"best_effort" json:"best_effort"`
	VLANTagging      bool           `yaml:"vlan_tagging" json:"vlan_tagging"`
	LinkMultiplexing bool           `yaml:"link_multiplexing" json:"link_multiplexing"`
	Members          []InterfaceRef `yaml:"members" json:"members"`
}

type StorageVolume struct {
	Name       string `yaml:"name" json:"name"`
	MountPoint string `yaml:"mount_point" json:"mount_point"`
	Size       string `yaml:"size" json:"size"`
}

type DatasetImport struct {
	Name       string    `yaml:"name" json:"name"`
	Dataset    string    `yaml:"dataset" json:"dataset"`
	MountPoint string    `yaml:"mount_point" json:"mount_point"`
	Interface  Interface `yaml:"interface" json:"interface"`
}

type Service struct {
	Shell   string `yaml:"shell" json:"shell"`
	Command string `yaml:"command" json:"command"`
}

func (t *Topology) Node(name string) *Node {
	for i := range t.Nodes {
		if t.Nodes[i].Name == name {
			return &t.Nodes[i]
		}
	}

	return nil
}

func (t *Topology) Network(name string) *Network {
	for i := range t.Networks {
		if t.Networks[i].Name == name {
			return &t.Networks[i]
		}
	}

	return nil
}

func (t *Topology) Dataset(name string) *DatasetImport {
	for i := range t.Datasets {
		if t.Datasets[i].Name == name {
			return &t.Datasets[i]
		}
	}

	return nil
}

// Clone returns a deep copy so that builder steps never share backing arrays
// with their input.
func (t Topology) Clone() Topology {
	clone := Topology{
		Name:     t.Name,
		Nodes:    make([]Node, 0, len(t.Nodes)),
		Networks: make([]Network, 0, len(t.Networks)),
		Datasets: append([]DatasetImport(nil), t.Datasets...),
	}

	for _, node := range t.Nodes {
		node.Interfaces = append([]Interface(nil), node.Interfaces...)
		node.Storage = append([]StorageVolume(nil), node.Storage...)
		node.Services = append([]Service(nil), node.Services...)
		clone.Nodes = append(clone.Nodes, node)
	}

	for _, network := range t.Networks {
		network.Members = append([]InterfaceRef(nil), network.Members...)
		clone.Networks = append(clone.Networks, network)
	}

	return clone
}
