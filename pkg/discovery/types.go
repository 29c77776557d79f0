// Package discovery finds a BowlRMS server on the local network via mDNS.
package discovery

import (
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ServiceName is the default mDNS service type advertised by BowlRMS servers.
const ServiceName = "_bowlrms._tcp"

// Domain is the mDNS browse domain.
const Domain = "local."

// TXT record defaults.
const (
	DefaultScheme = "http"
	DefaultPath   = "/login"
)

// Server is a BowlRMS server found via mDNS.
type Server struct {
	Instance     string    `json:"instance"`
	Host         string    `json:"host"`
	Port         int       `json:"port"`
	IPs          []net.IP  `json:"ips"`
	Scheme       string    `json:"scheme"`
	Path         string    `json:"path"`
	Version      string    `json:"version,omitempty"`
	DiscoveredAt time.Time `json:"discoveredAt"`
}

// Address returns host:port, preferring the first advertised IP.
func (s *Server) Address() string {
	if len(s.IPs) > 0 {
		return net.JoinHostPort(s.IPs[0].String(), strconv.Itoa(s.Port))
	}
	return net.JoinHostPort(strings.TrimSuffix(s.Host, "."), strconv.Itoa(s.Port))
}

// URL returns the page the shell should load for this server.
func (s *Server) URL() string {
	scheme := s.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	path := s.Path
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u := url.URL{
		Scheme: scheme,
		Host:   s.Address(),
		Path:   path,
	}
	return u.String()
}
