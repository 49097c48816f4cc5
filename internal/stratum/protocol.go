package stratum

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/djkazic/stratum-notify/internal/metrics"

	"go.uber.org/zap"
)

const (
	// writeTimeout is the maximum time to wait for a write to complete.
	writeTimeout = 10 * time.Second

	// maxLineSize is the maximum length of a single JSON-RPC line.
	// Prevents memory exhaustion from a peer sending an endless line
	// without a newline terminator.
	maxLineSize = 16 * 1024
)

// Request represents a Stratum JSON-RPC request.
type Request struct {
	ID     interface{}     `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// Response represents a Stratum JSON-RPC response.
type Response struct {
	ID     interface{} `json:"id"`
	Result interface{} `json:"result"`
	Error  interface{} `json:"error"`
}

// Notification represents a server-to-client notification.
type Notification struct {
	ID     interface{}   `json:"id"`
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

// wellFormed reports whether n has the shape of a notification: a null id,
// a method name and a params array.
func (n *Notification) wellFormed() bool {
	return n != nil && n.ID == nil && n.Method != "" && n.Params != nil
}

// ReadNotification extracts the generic notification shape from an arbitrary
// JSON value. The id key must be present and null.
func ReadNotification(raw []byte) (*Notification, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}

	id, hasID := obj["id"]
	if !hasID || id != nil {
		return nil, false
	}
	method, ok := obj["method"].(string)
	if !ok {
		return nil, false
	}
	params, ok := obj["params"].([]interface{})
	if !ok {
		return nil, false
	}

	n := &Notification{ID: nil, Method: method, Params: params}
	if !n.wellFormed() {
		return nil, false
	}
	return n, true
}

// Codec handles Stratum v1 newline-delimited JSON encoding/decoding.
type Codec struct {
	conn    net.Conn
	scanner *bufio.Scanner
	encoder *json.Encoder
	notify  *NotifyCodec
	logger  *zap.Logger
}

// NewCodec creates a new Stratum codec for the given connection. A nil
// notify codec selects DefaultNotifyCodec; a nil logger disables logging.
func NewCodec(conn net.Conn, notify *NotifyCodec, logger *zap.Logger) *Codec {
	if notify == nil {
		notify = DefaultNotifyCodec()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4096), maxLineSize)
	return &Codec{
		conn:    conn,
		scanner: scanner,
		encoder: json.NewEncoder(conn),
		notify:  notify,
		logger:  logger,
	}
}

func (c *Codec) readLine() ([]byte, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		return nil, fmt.Errorf("connection closed")
	}
	return c.scanner.Bytes(), nil
}

// ReadRequest reads a single Stratum request (newline-delimited JSON).
func (c *Codec) ReadRequest() (*Request, error) {
	line, err := c.readLine()
	if err != nil {
		return nil, err
	}

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return nil, fmt.Errorf("unmarshal request: %w", err)
	}

	return &req, nil
}

// ReadNotify reads a single line and parses it as a mining.notify. Lines
// that are requests, other notifications or malformed notifies are logged
// and reported as ErrInvalidNotify.
func (c *Codec) ReadNotify() (*Notify, error) {
	line, err := c.readLine()
	if err != nil {
		return nil, err
	}

	n, ok := c.notify.Read(line)
	if !ok {
		c.logRejected(line)
		return nil, fmt.Errorf("read notify: %w", ErrInvalidNotify)
	}
	return n, nil
}

// logRejected records why a line read as a notify was dropped.
func (c *Codec) logRejected(line []byte) {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		c.logger.Debug("dropping malformed line", zap.Int("len", len(line)), zap.Error(err))
		return
	}
	if req.ID != nil {
		c.logger.Debug("dropping request, expected notification",
			zap.String("method", req.Method),
			zap.Any("id", req.ID),
		)
		return
	}
	c.logger.Debug("dropping notification",
		zap.String("method", req.Method),
		zap.Int("len", len(line)),
	)
}

// SendResponse sends a JSON-RPC response.
func (c *Codec) SendResponse(resp *Response) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.encoder.Encode(resp)
}

// SendNotify sends a mining.notify notification.
func (c *Codec) SendNotify(n *Notify) error {
	if err := c.SendNotification(n.Notification()); err != nil {
		return err
	}
	metrics.NotifySent.Inc()
	return nil
}

// SendNotification sends a server notification.
func (c *Codec) SendNotification(notif *Notification) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.encoder.Encode(notif)
}

// Close closes the underlying connection.
func (c *Codec) Close() error {
	return c.conn.Close()
}
