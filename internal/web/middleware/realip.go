package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
)

// TrustedProxy honors forwarding headers, but ONLY when the request comes
// from a trusted proxy CIDR. For trusted requests:
//
//   - X-Real-IP, else the first X-Forwarded-For entry, replaces RemoteAddr
//   - X-Forwarded-Proto (http or https) sets r.URL.Scheme
//   - X-Forwarded-Host replaces r.Host
//
// Locators are built from the scheme and host, so untrusted clients must not
// be able to choose them. Requests from anywhere else are passed through
// untouched.
func TrustedProxy(trustedCIDRs []string) func(http.Handler) http.Handler {
	trustedNets := parseTrusted(trustedCIDRs)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isTrusted(extractIP(r.RemoteAddr), trustedNets) {
				applyForwarded(r)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func applyForwarded(r *http.Request) {
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		if ip := net.ParseIP(strings.TrimSpace(rip)); ip != nil {
			r.RemoteAddr = ip.String()
		}
	} else if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		candidate, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(candidate)); ip != nil {
			r.RemoteAddr = ip.String()
		}
	}

	switch proto := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); proto {
	case "http", "https":
		r.URL.Scheme = proto
	}

	if host := strings.TrimSpace(r.Header.Get("X-Forwarded-Host")); host != "" && !strings.ContainsAny(host, "/ ") {
		r.Host = host
	}
}

func parseTrusted(cidrs []string) []*net.IPNet {
	var trustedNets []*net.IPNet
	for _, cidr := range cidrs {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}

		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			// Single IP ("127.0.0.1" instead of "127.0.0.1/32")
			if ip := net.ParseIP(cidr); ip != nil {
				mask := net.CIDRMask(128, 128)
				if ip.To4() != nil {
					mask = net.CIDRMask(32, 32)
				}
				trustedNets = append(trustedNets, &net.IPNet{IP: ip, Mask: mask})
			} else {
				slog.Warn("invalid trusted proxy, skipping", "cidr", cidr, "error", err)
			}
			continue
		}
		trustedNets = append(trustedNets, network)
	}
	return trustedNets
}

// extractIP parses an IP address from a host:port string or plain IP.
func extractIP(addr string) net.IP {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return net.ParseIP(host)
	}
	return net.ParseIP(addr)
}

// isTrusted checks if an IP is within any of the trusted networks.
func isTrusted(ip net.IP, trusted []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, network := range trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
