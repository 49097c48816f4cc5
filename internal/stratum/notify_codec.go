package stratum

import (
	"time"

	"github.com/djkazic/stratum-notify/internal/types"
	"github.com/djkazic/stratum-notify/pkg/util"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DigestCodec converts 32-byte digests to and from hex in native byte order.
type DigestCodec interface {
	DigestFromHex(s string) (types.Digest32, error)
	DigestToHex(d types.Digest32) string
}

// BytesCodec converts arbitrary-length byte buffers to and from hex.
type BytesCodec interface {
	BytesFromHex(s string) ([]byte, error)
	BytesToHex(b []byte) string
}

// IntCodec converts 4-byte little-endian integers to and from hex.
type IntCodec interface {
	Int32FromHex(s string) (int32, error)
	Int32ToHex(v int32) string
	Uint32FromHex(s string) (uint32, error)
	Uint32ToHex(v uint32) string
}

// CompactCodec maps compact nBits integers to difficulty targets.
type CompactCodec interface {
	FromBits(bits uint32) types.Difficulty
	ToBits(d types.Difficulty) uint32
}

// hexCodec implements every field codec on top of pkg/util.
type hexCodec struct{}

func (hexCodec) DigestFromHex(s string) (types.Digest32, error) {
	b, err := util.HexToBytes(s)
	if err != nil {
		return types.Digest32{}, err
	}
	return types.NewDigest32(b)
}

func (hexCodec) DigestToHex(d types.Digest32) string    { return util.BytesToHex(d[:]) }
func (hexCodec) BytesFromHex(s string) ([]byte, error)  { return util.HexToBytes(s) }
func (hexCodec) BytesToHex(b []byte) string             { return util.BytesToHex(b) }
func (hexCodec) Int32FromHex(s string) (int32, error)   { return util.HexToInt32LE(s) }
func (hexCodec) Int32ToHex(v int32) string              { return util.Int32LEToHex(v) }
func (hexCodec) Uint32FromHex(s string) (uint32, error) { return util.HexToUint32LE(s) }
func (hexCodec) Uint32ToHex(v uint32) string            { return util.Uint32LEToHex(v) }
func (hexCodec) FromBits(bits uint32) types.Difficulty  { return types.DifficultyFromBits(bits) }
func (hexCodec) ToBits(d types.Difficulty) uint32       { return d.Bits() }

const (
	// diagInterval and diagBurst bound the rate of invalid params diagnostics.
	diagInterval = time.Second
	diagBurst    = 5
)

// NotifyCodec decodes and encodes mining.notify params through pluggable
// field codecs. It is safe for concurrent use.
type NotifyCodec struct {
	Digests DigestCodec
	Bytes   BytesCodec
	Ints    IntCodec
	Compact CompactCodec

	logger *zap.Logger
	// diagLimiter is nil when diagnostics are disabled, so a codec without a
	// logger carries no mutable state.
	diagLimiter *rate.Limiter
}

// NewNotifyCodec creates a codec backed by the default hex field codecs.
// A nil logger disables diagnostics.
func NewNotifyCodec(logger *zap.Logger) *NotifyCodec {
	var h hexCodec
	c := &NotifyCodec{
		Digests: h,
		Bytes:   h,
		Ints:    h,
		Compact: h,
		logger:  zap.NewNop(),
	}
	if logger != nil {
		c.logger = logger
		c.diagLimiter = rate.NewLimiter(rate.Every(diagInterval), diagBurst)
	}
	return c
}

// defaultNotifyCodec has no logger and therefore no limiter: it is read-only
// after package initialisation.
var defaultNotifyCodec = NewNotifyCodec(nil)

// DefaultNotifyCodec returns the shared codec used by the package-level
// helpers. It logs nothing.
func DefaultNotifyCodec() *NotifyCodec {
	return defaultNotifyCodec
}

// check validates p and logs a throttled diagnostic on failure.
func (c *NotifyCodec) check(p NotifyParams) NotifyFault {
	fault := CheckNotifyParams(p)
	if fault != FaultNone && c.diagLimiter != nil && c.diagLimiter.Allow() {
		fields := []zap.Field{zap.Stringer("fault", fault), zap.Int("params", len(p))}
		if fault == FaultMerkleBranch {
			if branch, ok := stringList(p[notifyMerkleBranch]); ok {
				fields = append(fields, zap.Int("branch_len", len(branch)))
			}
		}
		c.logger.Debug("invalid notify params", fields...)
	}
	return fault
}

// Valid reports whether p is a well-formed params array.
func (c *NotifyCodec) Valid(p NotifyParams) bool {
	return c.check(p) == FaultNone
}

func (c *NotifyCodec) validate(p NotifyParams) error {
	if fault := c.check(p); fault != FaultNone {
		return &InvalidNotifyError{Fault: fault}
	}
	return nil
}

// JobID returns the job identifier.
func (c *NotifyCodec) JobID(p NotifyParams) (string, error) {
	if err := c.validate(p); err != nil {
		return "", err
	}
	return p[notifyJobID].(string), nil
}

// PrevHash returns the previous block hash. The wire hex carries the digest
// in reversed byte order, which is undone here.
func (c *NotifyCodec) PrevHash(p NotifyParams) (types.Digest32, error) {
	if err := c.validate(p); err != nil {
		return types.Digest32{}, err
	}
	d, err := c.Digests.DigestFromHex(p[notifyPrevHash].(string))
	if err != nil {
		return types.Digest32{}, &InvalidNotifyError{Fault: FaultPrevHash, Err: err}
	}
	return d.Reverse(), nil
}

// Coinbase1 returns the coinbase bytes preceding the extranonce.
func (c *NotifyCodec) Coinbase1(p NotifyParams) ([]byte, error) {
	return c.bytesAt(p, notifyCoinbase1, FaultCoinbase1)
}

// Coinbase2 returns the coinbase bytes following the extranonce.
func (c *NotifyCodec) Coinbase2(p NotifyParams) ([]byte, error) {
	return c.bytesAt(p, notifyCoinbase2, FaultCoinbase2)
}

func (c *NotifyCodec) bytesAt(p NotifyParams, idx int, fault NotifyFault) ([]byte, error) {
	if err := c.validate(p); err != nil {
		return nil, err
	}
	b, err := c.Bytes.BytesFromHex(p[idx].(string))
	if err != nil {
		return nil, &InvalidNotifyError{Fault: fault, Err: err}
	}
	return b, nil
}

// MerkleBranch returns the merkle branch in wire order. An empty branch
// yields an empty, non-nil slice.
func (c *NotifyCodec) MerkleBranch(p NotifyParams) ([]types.Digest32, error) {
	if err := c.validate(p); err != nil {
		return nil, err
	}
	branchHex, _ := stringList(p[notifyMerkleBranch])
	branch := make([]types.Digest32, 0, len(branchHex))
	for _, h := range branchHex {
		d, err := c.Digests.DigestFromHex(h)
		if err != nil {
			return nil, &InvalidNotifyError{Fault: FaultMerkleBranch, Err: err}
		}
		branch = append(branch, d)
	}
	return branch, nil
}

// Version returns the block version.
func (c *NotifyCodec) Version(p NotifyParams) (int32, error) {
	if err := c.validate(p); err != nil {
		return 0, err
	}
	v, err := c.Ints.Int32FromHex(p[notifyVersion].(string))
	if err != nil {
		return 0, &InvalidNotifyError{Fault: FaultVersion, Err: err}
	}
	return v, nil
}

// NBits returns the compact difficulty target.
func (c *NotifyCodec) NBits(p NotifyParams) (types.Difficulty, error) {
	if err := c.validate(p); err != nil {
		return types.Difficulty{}, err
	}
	bits, err := c.Ints.Uint32FromHex(p[notifyNBits].(string))
	if err != nil {
		return types.Difficulty{}, &InvalidNotifyError{Fault: FaultNBits, Err: err}
	}
	return c.Compact.FromBits(bits), nil
}

// Time returns the block timestamp.
func (c *NotifyCodec) Time(p NotifyParams) (uint32, error) {
	if err := c.validate(p); err != nil {
		return 0, err
	}
	t, err := c.Ints.Uint32FromHex(p[notifyTime].(string))
	if err != nil {
		return 0, &InvalidNotifyError{Fault: FaultTime, Err: err}
	}
	return t, nil
}

// Clean returns the clean-jobs flag.
func (c *NotifyCodec) Clean(p NotifyParams) (bool, error) {
	if err := c.validate(p); err != nil {
		return false, err
	}
	return p[notifyClean].(bool), nil
}

// MakeParams encodes typed job fields into a params array. The result always
// passes ValidNotifyParams when the field codecs emit single-case hex.
func (c *NotifyCodec) MakeParams(
	jobID string,
	prevHash types.Digest32,
	coinbase1, coinbase2 []byte,
	branch []types.Digest32,
	version int32,
	bits types.Difficulty,
	ntime uint32,
	clean bool,
) NotifyParams {
	path := make([]string, 0, len(branch))
	for _, d := range branch {
		path = append(path, c.Digests.DigestToHex(d))
	}

	return NotifyParams{
		jobID,
		c.Digests.DigestToHex(prevHash.Reverse()),
		c.Bytes.BytesToHex(coinbase1),
		c.Bytes.BytesToHex(coinbase2),
		path,
		c.Ints.Int32ToHex(version),
		c.Ints.Uint32ToHex(c.Compact.ToBits(bits)),
		c.Ints.Uint32ToHex(ntime),
		clean,
	}
}

// Package-level accessors use the default codec.

func (p NotifyParams) JobID() (string, error)                  { return defaultNotifyCodec.JobID(p) }
func (p NotifyParams) PrevHash() (types.Digest32, error)       { return defaultNotifyCodec.PrevHash(p) }
func (p NotifyParams) Coinbase1() ([]byte, error)              { return defaultNotifyCodec.Coinbase1(p) }
func (p NotifyParams) Coinbase2() ([]byte, error)              { return defaultNotifyCodec.Coinbase2(p) }
func (p NotifyParams) MerkleBranch() ([]types.Digest32, error) { return defaultNotifyCodec.MerkleBranch(p) }
func (p NotifyParams) Version() (int32, error)                 { return defaultNotifyCodec.Version(p) }
func (p NotifyParams) NBits() (types.Difficulty, error)        { return defaultNotifyCodec.NBits(p) }
func (p NotifyParams) Time() (uint32, error)                   { return defaultNotifyCodec.Time(p) }
func (p NotifyParams) Clean() (bool, error)                    { return defaultNotifyCodec.Clean(p) }

// MakeNotifyParams encodes typed job fields with the default codec.
func MakeNotifyParams(
	jobID string,
	prevHash types.Digest32,
	coinbase1, coinbase2 []byte,
	branch []types.Digest32,
	version int32,
	bits types.Difficulty,
	ntime uint32,
	clean bool,
) NotifyParams {
	return defaultNotifyCodec.MakeParams(jobID, prevHash, coinbase1, coinbase2, branch, version, bits, ntime, clean)
}
