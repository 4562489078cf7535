package models

import "net"

// Profile holds the catalog and fixed layout of the cluster profile: which
// images and hardware may be requested and where storage ends up on the nodes.
type Profile struct {
	Images         []Choice  `mapstructure:"images"`
	HardwareTypes  []Choice  `mapstructure:"hardware_types"`
	Defaults       RawParams `mapstructure:"defaults"`
	ImageAuthority string    `mapstructure:"image_authority"`
	ImageProject   string    `mapstructure:"image_project"`
	Paths          Paths     `mapstructure:"paths"`
	Setup          Setup     `mapstructure:"setup"`
	ClusterLAN     LAN       `mapstructure:"cluster_lan"`
	DatasetLAN     LAN       `mapstructure:"dataset_lan"`
}

type Choice struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
}

type Paths struct {
	SharedHome   string `mapstructure:"shared_home"`
	Datasets     string `mapstructure:"datasets"`
	LocalStorage string `mapstructure:"local_storage"`
}

type Setup struct {
	Shell   string `mapstructure:"shell"`
	Command string `mapstructure:"command"`
}

type LAN struct {
	Name        string     `mapstructure:"name"`
	CIDR        *net.IPNet `mapstructure:"cidr"`
	ReservedIPs []net.IP   `mapstructure:"reserved_ips"`
}
