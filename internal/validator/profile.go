package validator

import (
	"errors"
	"net"

	"github.com/hogwarts-cloud/profilectl/internal/models"
)

var (
	ErrEmptyCatalog      = errors.New("empty catalog")
	ErrEmptyLANName      = errors.New("empty lan name")
	ErrDuplicatedLANName = errors.New("duplicated lan name")
	ErrUnsupportedCIDR   = errors.New("only ipv4 cidrs are supported")
)

// ValidateProfile checks the profile a generator is built from. Parameter
// files are validated against it later, so a broken profile is rejected once
// here.
func ValidateProfile(profile models.Profile) error {
	if len(profile.Images) == 0 {
		return &ConfigurationError{Parameter: "images", Value: profile.Images, Err: ErrEmptyCatalog}
	}

	if len(profile.HardwareTypes) == 0 {
		return &ConfigurationError{Parameter: "hardware_types", Value: profile.HardwareTypes, Err: ErrEmptyCatalog}
	}

	lans := []struct {
		parameter string
		lan       models.LAN
	}{
		{parameter: "cluster_lan", lan: profile.ClusterLAN},
		{parameter: "dataset_lan", lan: profile.DatasetLAN},
	}

	for _, l := range lans {
		if l.lan.Name == "" {
			return &ConfigurationError{Parameter: l.parameter + ".name", Value: l.lan.Name, Err: ErrEmptyLANName}
		}

		if l.lan.CIDR != nil && !isIPv4(*l.lan.CIDR) {
			return &ConfigurationError{Parameter: l.parameter + ".cidr", Value: l.lan.CIDR, Err: ErrUnsupportedCIDR}
		}
	}

	if profile.ClusterLAN.Name == profile.DatasetLAN.Name {
		return &ConfigurationError{Parameter: "dataset_lan.name", Value: profile.DatasetLAN.Name, Err: ErrDuplicatedLANName}
	}

	return nil
}

func isIPv4(network net.IPNet) bool {
	_, bits := network.Mask.Size()
	return network.IP.To4() != nil && bits == net.IPv4len*8
}
