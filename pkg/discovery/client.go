package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when no server answered before the timeout.
var ErrNotFound = errors.New("no BowlRMS server found on the local network")

// Client resolves BowlRMS servers via mDNS/DNS-SD.
type Client struct {
	service string
	log     zerolog.Logger
}

// NewClient creates a client browsing service. An empty service selects
// ServiceName.
func NewClient(service string, log zerolog.Logger) *Client {
	if service == "" {
		service = ServiceName
	}
	return &Client{
		service: service,
		log:     log.With().Str("component", "discovery").Logger(),
	}
}

// Resolve browses for up to timeout and returns the first usable server.
func (c *Client) Resolve(ctx context.Context, timeout time.Duration) (*Server, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	browseCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Server, 1)

	go func() {
		for entry := range entries {
			server := parseEntry(entry)
			if server == nil {
				continue
			}
			select {
			case found <- server:
				cancel()
			default:
			}
		}
	}()

	c.log.Debug().Str("service", c.service).Dur("timeout", timeout).Msg("Browsing for server")
	if err := resolver.Browse(browseCtx, c.service, Domain, entries); err != nil {
		return nil, fmt.Errorf("mDNS browse failed: %w", err)
	}

	select {
	case server := <-found:
		c.log.Info().Str("instance", server.Instance).Str("url", server.URL()).Msg("Server discovered")
		return server, nil
	case <-browseCtx.Done():
	}

	// An entry may have landed just as the browse timed out.
	select {
	case server := <-found:
		return server, nil
	default:
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNotFound
}

// parseEntry converts a zeroconf entry to a Server. Entries without a port
// or a usable IPv4 address are skipped.
func parseEntry(entry *zeroconf.ServiceEntry) *Server {
	if entry == nil || entry.Port == 0 {
		return nil
	}

	server := &Server{
		Instance:     entry.Instance,
		Host:         entry.HostName,
		Port:         entry.Port,
		DiscoveredAt: time.Now(),
	}

	// Parse TXT records
	for _, txt := range entry.Text {
		switch {
		case strings.HasPrefix(txt, "scheme="):
			server.Scheme = strings.ToLower(txt[len("scheme="):])
		case strings.HasPrefix(txt, "path="):
			server.Path = txt[len("path="):]
		case strings.HasPrefix(txt, "version="):
			server.Version = txt[len("version="):]
		}
	}
	if server.Scheme != "" && server.Scheme != "http" && server.Scheme != "https" {
		return nil
	}

	// Collect IPs (filter out link-local)
	for _, ip := range entry.AddrIPv4 {
		ip4 := ip.To4()
		if ip4 != nil && !ip4.IsLinkLocalUnicast() && !ip4.IsUnspecified() {
			server.IPs = append(server.IPs, net.IP(ip4))
		}
	}
	if len(server.IPs) == 0 {
		return nil
	}

	return server
}
