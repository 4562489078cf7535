package network

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_GetAvailableIPs(t *testing.T) {
	testCases := []struct {
		name        string
		count       int
		network     net.IPNet
		reservedIPs []net.IP
		expected    []net.IP
		wantErr     bool
		err         error
	}{
		{
			name:    "happy path",
			count:   3,
			network: net.IPNet{IP: net.ParseIP("10.10.1.0").To4(), Mask: net.CIDRMask(29, 32)},
			reservedIPs: []net.IP{
				net.ParseIP("10.10.1.1").To4(),
				net.ParseIP("10.10.1.2").To4(),
			},
			expected: []net.IP{
				net.ParseIP("10.10.1.3").To4(),
				net.ParseIP("10.10.1.4").To4(),
				net.ParseIP("10.10.1.5").To4(),
			},
		},
		{
			name:     "zero count",
			count:    0,
			network:  net.IPNet{IP: net.ParseIP("10.10.1.0").To4(), Mask: net.CIDRMask(29, 32)},
			expected: nil,
		},
		{
			name:    "too few available ips",
			count:   5,
			network: net.IPNet{IP: net.ParseIP("10.10.1.0").To4(), Mask: net.CIDRMask(29, 32)},
			reservedIPs: []net.IP{
				net.ParseIP("10.10.1.1").To4(),
				net.ParseIP("10.10.1.2").To4(),
				net.ParseIP("10.10.1.3").To4(),
				net.ParseIP("10.10.1.4").To4(),
			},
			wantErr: true,
			err:     ErrTooFewAvailableIPs,
		},
		{
			name:    "whole address space",
			count:   2,
			network: net.IPNet{IP: net.IPv4zero.To4(), Mask: net.CIDRMask(0, 32)},
			expected: []net.IP{
				net.ParseIP("0.0.0.1").To4(),
				net.ParseIP("0.0.0.2").To4(),
			},
		},
		{
			name:    "ipv6 network",
			count:   2,
			network: net.IPNet{IP: net.ParseIP("fd00::"), Mask: net.CIDRMask(64, 128)},
			wantErr: true,
			err:     ErrTooFewAvailableIPs,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := GetAvailableIPs(tc.count, tc.network, tc.reservedIPs)
			if tc.wantErr {
				assert.ErrorIs(t, err, tc.err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, actual)
			}
		})
	}
}

func Test_Netmask(t *testing.T) {
	testCases := []struct {
		network  net.IPNet
		expected string
	}{
		{
			network:  net.IPNet{IP: net.ParseIP("10.10.1.0").To4(), Mask: net.CIDRMask(24, 32)},
			expected: "255.255.255.0",
		},
		{
			network:  net.IPNet{IP: net.ParseIP("10.254.0.0").To4(), Mask: net.CIDRMask(16, 32)},
			expected: "255.255.0.0",
		},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Netmask(tc.network))
	}
}
