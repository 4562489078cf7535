package utils

import (
	"iter"
	"net"
)

// HostIPs yields the usable host addresses of an IPv4 network in ascending
// order, skipping the network and broadcast addresses. Addresses are produced
// lazily, so wide networks are fine as long as the caller stops early. Non-IPv4
// networks yield nothing.
func HostIPs(network net.IPNet) iter.Seq[net.IP] {
	return func(yield func(net.IP) bool) {
		base := network.IP.To4()
		ones, bits := network.Mask.Size()
		if base == nil || bits != net.IPv4len*8 || bits-ones < 2 {
			return
		}

		mask := network.Mask[len(network.Mask)-net.IPv4len:]
		ip := dupIP(base.Mask(mask))
		broadcast := broadcastIP(ip, mask)

		for incIP(ip); !ip.Equal(broadcast); incIP(ip) {
			if !yield(dupIP(ip)) {
				return
			}
		}
	}
}

func broadcastIP(ip net.IP, mask net.IPMask) net.IP {
	broadcast := make(net.IP, len(ip))
	for i := range ip {
		broadcast[i] = ip[i] | ^mask[i]
	}
	return broadcast
}

func incIP(ip net.IP) {
	for j := len(ip) - 1; j >= 0; j-- {
		ip[j]++
		if ip[j] > 0 {
			break
		}
	}
}

func dupIP(ip net.IP) net.IP {
	dup := make(net.IP, len(ip))
	copy(dup, ip)
	return dup
}
