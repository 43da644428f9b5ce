package gateway

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/clinlab/demolabel/internal/label"
	"github.com/clinlab/demolabel/internal/logging"
	"github.com/clinlab/demolabel/internal/printers"
	"github.com/clinlab/demolabel/internal/version"
)

// DefaultTimeout bounds a whole print job when the caller sets none.
const DefaultTimeout = 5 * time.Second

// MaxCopies is the largest quantity a single job may request.
const MaxCopies = 1000

// Gateway sends label documents to printers.
type Gateway interface {
	// Print transmits doc to ep quantity times. A single attempt is made.
	Print(ctx context.Context, doc label.Document, ep printers.Endpoint, quantity int) error
}

// Client is the network Gateway. It picks a transport from the endpoint
// protocol.
type Client struct {
	Timeout    time.Duration
	Dialer     *net.Dialer
	HTTPClient *http.Client
	WSDialer   *websocket.Dialer
}

// NewClient returns a Client with the given per-job timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		Timeout:    timeout,
		Dialer:     &net.Dialer{},
		HTTPClient: &http.Client{},
		WSDialer:   &websocket.Dialer{HandshakeTimeout: timeout},
	}
}

// Print implements Gateway.
func (c *Client) Print(ctx context.Context, doc label.Document, ep printers.Endpoint, quantity int) error {
	if quantity < 0 {
		return &PrinterError{Type: ErrTypeValidation, Message: fmt.Sprintf("invalid quantity %d", quantity), Address: ep.Address()}
	}
	if quantity > MaxCopies {
		return &PrinterError{Type: ErrTypeValidation, Message: fmt.Sprintf("quantity %d exceeds the limit of %d copies", quantity, MaxCopies), Address: ep.Address()}
	}
	if quantity == 0 {
		logging.Warn("Print job with zero copies skipped", zap.String("address", ep.Address()))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	logging.LogRawBytes("Label document", doc.Bytes())

	switch {
	case ep.Protocol == printers.ProtocolRaw:
		return c.printRaw(ctx, doc, ep, quantity)
	case ep.IsHTTP():
		return c.printHTTP(ctx, doc, ep, quantity)
	case ep.IsWebSocket():
		return c.printWebSocket(ctx, doc, ep, quantity)
	default:
		return &PrinterError{Type: ErrTypeProtocol, Message: fmt.Sprintf("unsupported protocol %q", ep.Protocol), Address: ep.Address()}
	}
}

// printRaw writes the document quantity times over one TCP connection.
func (c *Client) printRaw(ctx context.Context, doc label.Document, ep printers.Endpoint, quantity int) error {
	addr := ep.Address()

	conn, err := c.Dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return classify("could not connect to printer", addr, err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}

	for i := 0; i < quantity; i++ {
		if _, err := conn.Write(doc.Bytes()); err != nil {
			return classify(fmt.Sprintf("write failed on copy %d of %d", i+1, quantity), addr, err)
		}
	}
	return nil
}

// printHTTP posts all copies in one streamed request body.
func (c *Client) printHTTP(ctx context.Context, doc label.Document, ep printers.Endpoint, quantity int) error {
	addr := ep.Address()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL(), newRepeatReader(doc.Bytes(), quantity))
	if err != nil {
		return &PrinterError{Type: ErrTypeProtocol, Message: "failed to create print request", Address: addr, Err: err}
	}
	req.ContentLength = int64(len(doc.Bytes())) * int64(quantity)
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return classify("printer unreachable", addr, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &PrinterError{
			Type:       ErrTypeHTTP,
			Message:    fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
			Address:    addr,
			StatusCode: resp.StatusCode,
		}
	}
	return nil
}

// printWebSocket sends each copy as one binary message.
func (c *Client) printWebSocket(ctx context.Context, doc label.Document, ep printers.Endpoint, quantity int) error {
	addr := ep.Address()

	header := http.Header{}
	header.Set("User-Agent", version.UserAgent())

	conn, resp, err := c.WSDialer.DialContext(ctx, ep.URL(), header)
	if err != nil {
		if resp != nil {
			return &PrinterError{
				Type:       ErrTypeProtocol,
				Message:    "websocket handshake rejected",
				Address:    addr,
				StatusCode: resp.StatusCode,
				Err:        err,
			}
		}
		return classify("could not connect to printer", addr, err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}

	for i := 0; i < quantity; i++ {
		if err := conn.WriteMessage(websocket.BinaryMessage, doc.Bytes()); err != nil {
			return classify(fmt.Sprintf("write failed on copy %d of %d", i+1, quantity), addr, err)
		}
	}

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteMessage(websocket.CloseMessage, closeMsg)
	return nil
}

// repeatReader yields data count times without materialising the copies.
type repeatReader struct {
	data      []byte
	remaining int
	offset    int
}

func newRepeatReader(data []byte, count int) *repeatReader {
	if len(data) == 0 {
		count = 0
	}
	return &repeatReader{data: data, remaining: count}
}

func (r *repeatReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) && r.remaining > 0 {
		c := copy(p[n:], r.data[r.offset:])
		n += c
		r.offset += c
		if r.offset == len(r.data) {
			r.offset = 0
			r.remaining--
		}
	}
	if n == 0 && r.remaining == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Recorder is a Gateway that keeps jobs in memory instead of printing.
// The print command uses it for --dry-run.
type Recorder struct {
	Jobs []Job
	Err  error
}

// Job is one recorded Print call.
type Job struct {
	Document label.Document
	Endpoint printers.Endpoint
	Quantity int
}

// Print implements Gateway.
func (r *Recorder) Print(_ context.Context, doc label.Document, ep printers.Endpoint, quantity int) error {
	if r.Err != nil {
		return r.Err
	}
	r.Jobs = append(r.Jobs, Job{Document: doc, Endpoint: ep, Quantity: quantity})
	return nil
}
