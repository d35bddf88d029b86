package logging

import (
	"net"
	"strings"
)

// FormatClientKey formats a rate limit client key for logging.
// Debug logs keep the full key; other levels mask the host part of IP
// addresses so request logs do not retain full visitor addresses.
//
// Usage: logging.Info("Contact submission from %s", logging.FormatClientKey(key))
func FormatClientKey(key string) string {
	if IsDebugEnabled() {
		return key
	}

	ip := net.ParseIP(key)
	if ip == nil {
		return key
	}

	if v4 := ip.To4(); v4 != nil {
		parts := strings.Split(v4.String(), ".")
		return strings.Join(parts[:3], ".") + ".x"
	}

	// IPv6: keep the /48 routing prefix
	mask := net.CIDRMask(48, 128)
	return ip.Mask(mask).String() + "x"
}
