package ike

import (
	"net"
)

// AddrToIp returns the IP of a UDP or IP address, nil for others.
func AddrToIp(addr net.Addr) net.IP {
	switch a := addr.(type) {
	case *net.UDPAddr:
		return a.IP
	case *net.IPAddr:
		return a.IP
	}
	return nil
}

// addrKey is the form of an address used in table keys.
func addrKey(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	if udp, ok := addr.(*net.UDPAddr); ok {
		// 4 in 6 and plain v4 addresses must compare equal
		if ip4 := udp.IP.To4(); ip4 != nil {
			return (&net.UDPAddr{IP: ip4, Port: udp.Port}).String()
		}
	}
	return addr.String()
}
