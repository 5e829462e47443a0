// Package netinfo reports the IP addresses assigned to local network
// interfaces. Lookups return explicit presence information instead of
// swallowing failures into empty results.
package netinfo

import "net"

// InterfaceAddrs describes one interface lookup.
type InterfaceAddrs struct {
	Name    string   `json:"name"`
	Addrs   []string `json:"addrs"`
	Present bool     `json:"present"`
}

// Addresses returns the IPv4 addresses assigned to the named interface.
// The second return is false when the interface does not exist or its
// addresses cannot be read.
func Addresses(name string) ([]string, bool) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, false
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return nil, false
	}
	return ipv4Strings(addrs), true
}

// Collect looks up every named interface, preserving order.
func Collect(names []string) []InterfaceAddrs {
	results := make([]InterfaceAddrs, 0, len(names))
	for _, name := range names {
		addrs, present := Addresses(name)
		results = append(results, InterfaceAddrs{Name: name, Addrs: addrs, Present: present})
	}
	return results
}

func ipv4Strings(addrs []net.Addr) []string {
	var result []string
	for _, addr := range addrs {
		var ip net.IP
		switch a := addr.(type) {
		case *net.IPNet:
			ip = a.IP
		case *net.IPAddr:
			ip = a.IP
		default:
			continue
		}
		if v4 := ip.To4(); v4 != nil {
			result = append(result, v4.String())
		}
	}
	return result
}
