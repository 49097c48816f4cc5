package stratum

import (
	"github.com/djkazic/stratum-notify/internal/metrics"
	"github.com/djkazic/stratum-notify/internal/types"
)

// Notify is a mining.notify notification whose params have been validated
// or were produced by MakeNotify.
type Notify struct {
	ID     interface{}  `json:"id"`
	Method string       `json:"method"`
	Params NotifyParams `json:"params"`
}

// Notification returns n as a generic server notification.
func (n *Notify) Notification() *Notification {
	return &Notification{ID: nil, Method: n.Method, Params: n.Params}
}

// ValidNotify reports whether a generic notification is a well-formed
// mining.notify.
func (c *NotifyCodec) ValidNotify(n *Notification) bool {
	if !n.wellFormed() || n.Method != MethodNotify {
		return false
	}
	return c.Valid(NotifyParams(n.Params))
}

// Read parses an untrusted JSON value as a mining.notify. It never fails
// loudly: ok is false when the value is not a notification, is another
// method, or carries malformed params.
func (c *NotifyCodec) Read(raw []byte) (*Notify, bool) {
	n, ok := ReadNotification(raw)
	if !ok {
		metrics.NotifyRejected.WithLabelValues("envelope").Inc()
		return nil, false
	}
	if n.Method != MethodNotify {
		return nil, false
	}

	params := NotifyParams(n.Params)
	if fault := c.check(params); fault != FaultNone {
		metrics.NotifyRejected.WithLabelValues(fault.String()).Inc()
		return nil, false
	}

	metrics.NotifyDecoded.Inc()
	return &Notify{ID: nil, Method: MethodNotify, Params: params}, true
}

// Make builds a complete mining.notify notification from typed job fields.
func (c *NotifyCodec) Make(
	jobID string,
	prevHash types.Digest32,
	coinbase1, coinbase2 []byte,
	branch []types.Digest32,
	version int32,
	bits types.Difficulty,
	ntime uint32,
	clean bool,
) *Notify {
	return &Notify{
		ID:     nil,
		Method: MethodNotify,
		Params: c.MakeParams(jobID, prevHash, coinbase1, coinbase2, branch, version, bits, ntime, clean),
	}
}

// ValidNotify reports whether n is a well-formed mining.notify.
func ValidNotify(n *Notification) bool {
	return defaultNotifyCodec.ValidNotify(n)
}

// ReadNotify parses an untrusted JSON value as a mining.notify with the
// default codec.
func ReadNotify(raw []byte) (*Notify, bool) {
	return defaultNotifyCodec.Read(raw)
}

// MakeNotify builds a mining.notify notification with the default codec.
func MakeNotify(
	jobID string,
	prevHash types.Digest32,
	coinbase1, coinbase2 []byte,
	branch []types.Digest32,
	version int32,
	bits types.Difficulty,
	ntime uint32,
	clean bool,
) *Notify {
	return defaultNotifyCodec.Make(jobID, prevHash, coinbase1, coinbase2, branch, version, bits, ntime, clean)
}
