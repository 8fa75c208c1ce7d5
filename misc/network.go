package misc

import (
	"errors"
	"net"
)

// GetLocalAddress finds the IPv4 address of the first non-loopback interface that is up.
func GetLocalAddress() (string, error) {
	networkInterfaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}

	for _, elt := range networkInterfaces {
		if elt.Flags&net.FlagLoopback != 0 || elt.Flags&net.FlagUp == 0 {
			continue
		}
		addresses, err := elt.Addrs()
		if err != nil {
			return "", err
		}
		for _, addr := range addresses {
			if ip, ok := addr.(*net.IPNet); ok {
				if ip4 := ip.IP.To4(); len(ip4) == net.IPv4len {
					return ip4.String(), nil
				}
			}
		}
	}

	return "", errors.New("no non-loopback interface with an IPv4 address on this device")
}

// LocalAddressOr is GetLocalAddress falling back to fallback when no address is found.
func LocalAddressOr(fallback string) string {
	address, err := GetLocalAddress()
	if err != nil {
		return fallback
	}
	return address
}
