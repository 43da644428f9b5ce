package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/clinlab/demolabel/internal/logging"
	"github.com/clinlab/demolabel/internal/printers"
)

const (
	// ServiceType is the DNS-SD type for raw (port 9100) printing.
	ServiceType = "_pdl-datastream._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for printer discovery
	DefaultScanTimeout = 5 * time.Second
)

// Scanner handles mDNS printer discovery
type Scanner struct {
	// Timeout is the maximum time to wait for answers
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan browses for printers until the timeout elapses or ctx is done.
func (s *Scanner) Scan(ctx context.Context) ([]*Printer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	var mu sync.Mutex
	found := make([]*Printer, 0)
	seen := make(map[string]bool)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for entry := range entries {
			p := parseServiceEntry(entry)
			if p == nil {
				continue
			}
			key := p.Instance + "|" + p.IP
			mu.Lock()
			if !seen[key] {
				seen[key] = true
				found = append(found, p)
				logging.Debug("Printer discovered",
					zap.String("instance", p.Instance),
					zap.String("ip", p.IP),
					zap.Int("port", p.Port),
				)
			}
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	// zeroconf closes entries once the browse context ends.
	select {
	case <-done:
	case <-time.After(time.Second):
	}

	mu.Lock()
	defer mu.Unlock()
	return append([]*Printer(nil), found...), nil
}

// parseServiceEntry converts a zeroconf service entry to a Printer.
// Returns nil if the entry carries no usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Printer {
	if entry == nil {
		return nil
	}

	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = printers.DefaultRawPort
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	instance := entry.Instance
	if instance == "" {
		instance = strings.TrimSuffix(entry.HostName, ".")
	}

	return &Printer{
		Instance:     instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// SuggestName derives a registry key from an instance name: the last
// word, upper-cased ("Zebra ZD421 labreq5" → "LABREQ5").
func SuggestName(p *Printer) string {
	fields := strings.Fields(p.Instance)
	if len(fields) == 0 {
		return strings.ToUpper(strings.TrimSuffix(p.Hostname, ".local."))
	}
	return strings.ToUpper(fields[len(fields)-1])
}
