package network

import (
	"errors"
	"net"

	"github.com/hogwarts-cloud/profilectl/pkg/utils"
	"github.com/samber/lo"
)

var ErrTooFewAvailableIPs = errors.New("too few available ips")

// GetAvailableIPs returns the first count host addresses of network that are
// not reserved, in ascending order. Only IPv4 networks have host addresses.
func GetAvailableIPs(count int, network net.IPNet, reservedIPs []net.IP) ([]net.IP, error) {
	if count == 0 {
		return nil, nil
	}

	ips := make([]net.IP, 0, count)
	for ip := range utils.HostIPs(network) {
		if lo.ContainsBy(reservedIPs, ip.Equal) {
			continue
		}

		ips = append(ips, ip)

		if len(ips) == count {
			return ips, nil
		}
	}

	return nil, ErrTooFewAvailableIPs
}

func Netmask(network net.IPNet) string {
	return net.IP(network.Mask).String()
}
