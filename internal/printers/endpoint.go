package printers

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Protocol is the transport used to reach a printer.
type Protocol string

const (
	// ProtocolRaw is a plain TCP socket, conventionally port 9100.
	ProtocolRaw Protocol = "tcp"
	// ProtocolHTTP posts the label to the printer's web server.
	ProtocolHTTP  Protocol = "http"
	ProtocolHTTPS Protocol = "https"
	// ProtocolWebSocket streams the label over a WebSocket (Link-OS raw channel).
	ProtocolWebSocket       Protocol = "ws"
	ProtocolSecureWebSocket Protocol = "wss"
)

// Default ports and paths.
const (
	DefaultRawPort  = 9100
	DefaultHTTPPath = "/pstprnt"
)

// Endpoint addresses a label printer.
type Endpoint struct {
	Protocol Protocol `json:"protocol"`
	Host     string   `json:"host"`
	Port     int      `json:"port,omitempty"`
	Path     string   `json:"path,omitempty"`
}

// Address returns host:port.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// URL returns the endpoint as a URL. Raw endpoints use the tcp scheme.
func (e Endpoint) URL() string {
	u := url.URL{Scheme: string(e.Protocol), Host: e.Address(), Path: e.Path}
	return u.String()
}

// String implements fmt.Stringer.
func (e Endpoint) String() string {
	return e.URL()
}

// IsWebSocket reports whether the endpoint is a ws or wss endpoint.
func (e Endpoint) IsWebSocket() bool {
	return e.Protocol == ProtocolWebSocket || e.Protocol == ProtocolSecureWebSocket
}

// IsHTTP reports whether the endpoint is an http or https endpoint.
func (e Endpoint) IsHTTP() bool {
	return e.Protocol == ProtocolHTTP || e.Protocol == ProtocolHTTPS
}

func defaultPort(p Protocol) int {
	switch p {
	case ProtocolHTTP, ProtocolWebSocket:
		return 80
	case ProtocolHTTPS, ProtocolSecureWebSocket:
		return 443
	default:
		return DefaultRawPort
	}
}

// normalize fills defaults and checks the result.
func (e Endpoint) normalize() (Endpoint, error) {
	if e.Protocol == "" {
		e.Protocol = ProtocolRaw
	}
	e.Protocol = Protocol(strings.ToLower(string(e.Protocol)))
	switch e.Protocol {
	case ProtocolRaw, ProtocolHTTP, ProtocolHTTPS, ProtocolWebSocket, ProtocolSecureWebSocket:
	default:
		return Endpoint{}, fmt.Errorf("unsupported printer protocol %q", e.Protocol)
	}

	if e.Host == "" {
		return Endpoint{}, fmt.Errorf("printer endpoint has no host")
	}
	if e.Port == 0 {
		e.Port = defaultPort(e.Protocol)
	}
	if e.Port < 0 || e.Port > 65535 {
		return Endpoint{}, fmt.Errorf("printer port %d out of range", e.Port)
	}
	if e.IsHTTP() && (e.Path == "" || e.Path == "/") {
		e.Path = DefaultHTTPPath
	}
	return e, nil
}

// ParseEndpoint decodes a printers.json entry. An entry is either a string
// ("10.1.2.3", "10.1.2.3:9100", "tcp://host:9100", "http://host/pstprnt",
// "ws://host/...") or an object with host, port, protocol and path keys.
func ParseEndpoint(raw json.RawMessage) (Endpoint, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseEndpointString(s)
	}

	var e Endpoint
	if err := json.Unmarshal(raw, &e); err != nil {
		return Endpoint{}, fmt.Errorf("printer endpoint must be a string or an object: %w", err)
	}
	return e.normalize()
}

// ParseEndpointString parses the string form of an endpoint.
func ParseEndpointString(s string) (Endpoint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Endpoint{}, fmt.Errorf("empty printer endpoint")
	}

	if !strings.Contains(s, "://") {
		host, port, err := splitHostPort(s)
		if err != nil {
			return Endpoint{}, err
		}
		return Endpoint{Protocol: ProtocolRaw, Host: host, Port: port}.normalize()
	}

	u, err := url.Parse(s)
	if err != nil {
		return Endpoint{}, fmt.Errorf("invalid printer endpoint %q: %w", s, err)
	}
	e := Endpoint{Protocol: Protocol(u.Scheme), Host: u.Hostname(), Path: u.Path}
	if p := u.Port(); p != "" {
		e.Port, err = strconv.Atoi(p)
		if err != nil {
			return Endpoint{}, fmt.Errorf("invalid printer port %q", p)
		}
	}
	return e.normalize()
}

// splitHostPort accepts "host" or "host:port" (IPv6 in brackets).
func splitHostPort(s string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		// No port present.
		return strings.Trim(s, "[]"), 0, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid printer port %q", portStr)
	}
	return host, port, nil
}
