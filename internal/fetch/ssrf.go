package fetch

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

var blockedHostnames = map[string]bool{
	"localhost":                true,
	"metadata.google.internal": true,
}

func isBlockedHostname(hostname string) bool {
	hostname = strings.ToLower(hostname)
	if blockedHostnames[hostname] {
		return true
	}
	if strings.HasSuffix(hostname, ".localhost") ||
		strings.HasSuffix(hostname, ".local") ||
		strings.HasSuffix(hostname, ".internal") {
		return true
	}
	return false
}

func isPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}

	v4Ranges := []struct {
		network string
		mask    int
	}{
		{"0.0.0.0", 8},      // current network
		{"10.0.0.0", 8},     // private
		{"127.0.0.0", 8},    // loopback
		{"169.254.0.0", 16}, // link-local
		{"172.16.0.0", 12},  // private
		{"192.168.0.0", 16}, // private
		{"100.64.0.0", 10},  // carrier-grade NAT
	}
	for _, r := range v4Ranges {
		_, cidr, _ := net.ParseCIDR(fmt.Sprintf("%s/%d", r.network, r.mask))
		if cidr != nil && cidr.Contains(ip) {
			return true
		}
	}

	v6Ranges := []string{"::0/128", "::1/128", "fe80::/10", "fec0::/10", "fc00::/7"}
	for _, cidrStr := range v6Ranges {
		_, cidr, _ := net.ParseCIDR(cidrStr)
		if cidr != nil && cidr.Contains(ip) {
			return true
		}
	}

	return false
}

// checkTarget rejects URLs that point at private or reserved addresses,
// including hostnames that resolve to one.
func checkTarget(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return fmt.Errorf("missing hostname")
	}

	if isBlockedHostname(hostname) {
		return fmt.Errorf("blocked hostname: %s", hostname)
	}

	if ip := net.ParseIP(hostname); ip != nil {
		if isPrivateIP(hostname) {
			return fmt.Errorf("private IP address not allowed: %s", hostname)
		}
		return nil
	}

	addrs, err := net.LookupHost(hostname)
	if err != nil {
		return fmt.Errorf("DNS resolution failed for %s: %w", hostname, err)
	}
	for _, addr := range addrs {
		if isPrivateIP(addr) {
			return fmt.Errorf("hostname %s resolves to private IP %s", hostname, addr)
		}
	}

	return nil
}
