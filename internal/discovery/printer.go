package discovery

import (
	"fmt"
	"strings"
	"time"

	"github.com/clinlab/demolabel/internal/printers"
)

// Printer is a label printer found on the network.
type Printer struct {
	// Instance is the advertised service instance name (e.g. "ZD421 LABREQ5").
	Instance string

	// Hostname is the mDNS hostname (e.g. "ZBR4071863.local.")
	Hostname string

	IP   string
	Port int

	// Metadata holds the TXT record; Zebra printers publish "ty" (model),
	// "product" and "note" (location).
	Metadata map[string]string

	DiscoveredAt time.Time
}

// String returns a human-readable description.
func (p *Printer) String() string {
	return fmt.Sprintf("%s (%s) at %s:%d", p.Instance, p.Model(), p.IP, p.Port)
}

// Model returns the advertised printer model, or "unknown model".
func (p *Printer) Model() string {
	if ty := p.GetMetadata("ty"); ty != "" {
		return ty
	}
	if product := p.GetMetadata("product"); product != "" {
		return strings.Trim(product, "()")
	}
	return "unknown model"
}

// GetMetadata retrieves a TXT value by key, or "" if absent.
func (p *Printer) GetMetadata(key string) string {
	if p.Metadata == nil {
		return ""
	}
	return p.Metadata[key]
}

// Endpoint returns the raw-socket endpoint of the printer.
func (p *Printer) Endpoint() printers.Endpoint {
	return printers.Endpoint{Protocol: printers.ProtocolRaw, Host: p.IP, Port: p.Port}
}
