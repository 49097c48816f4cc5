package work

import (
	"fmt"
	"math/big"

	"github.com/djkazic/stratum-notify/internal/stratum"
	"github.com/djkazic/stratum-notify/internal/types"
)

// Job is a decoded mining.notify: everything a worker needs to build block
// headers for one unit of work.
type Job struct {
	ID           string
	PrevHash     types.Digest32
	Coinbase1    []byte
	Coinbase2    []byte
	MerkleBranch []types.Digest32
	Version      int32
	Bits         types.Difficulty
	Time         uint32
	CleanJobs    bool // discard all previously issued work
}

// FromNotify decodes every field of n with the default codec.
func FromNotify(n *stratum.Notify) (*Job, error) {
	if n == nil {
		return nil, fmt.Errorf("decode job: %w", stratum.ErrInvalidNotify)
	}
	return FromParams(stratum.DefaultNotifyCodec(), n.Params)
}

// FromParams decodes every field of p with codec c. A nil codec selects the
// default one.
func FromParams(c *stratum.NotifyCodec, p stratum.NotifyParams) (*Job, error) {
	if c == nil {
		c = stratum.DefaultNotifyCodec()
	}

	var (
		j   Job
		err error
	)
	if j.ID, err = c.JobID(p); err != nil {
		return nil, fmt.Errorf("decode job id: %w", err)
	}
	if j.PrevHash, err = c.PrevHash(p); err != nil {
		return nil, fmt.Errorf("decode prevhash: %w", err)
	}
	if j.Coinbase1, err = c.Coinbase1(p); err != nil {
		return nil, fmt.Errorf("decode coinbase1: %w", err)
	}
	if j.Coinbase2, err = c.Coinbase2(p); err != nil {
		return nil, fmt.Errorf("decode coinbase2: %w", err)
	}
	if j.MerkleBranch, err = c.MerkleBranch(p); err != nil {
		return nil, fmt.Errorf("decode merkle branch: %w", err)
	}
	if j.Version, err = c.Version(p); err != nil {
		return nil, fmt.Errorf("decode version: %w", err)
	}
	if j.Bits, err = c.NBits(p); err != nil {
		return nil, fmt.Errorf("decode nbits: %w", err)
	}
	if j.Time, err = c.Time(p); err != nil {
		return nil, fmt.Errorf("decode ntime: %w", err)
	}
	if j.CleanJobs, err = c.Clean(p); err != nil {
		return nil, fmt.Errorf("decode clean jobs: %w", err)
	}

	return &j, nil
}

// Notify encodes the job back into a mining.notify notification.
func (j *Job) Notify() *stratum.Notify {
	return stratum.MakeNotify(j.ID, j.PrevHash, j.Coinbase1, j.Coinbase2, j.MerkleBranch,
		j.Version, j.Bits, j.Time, j.CleanJobs)
}

// Coinbase reassembles the full coinbase transaction around the extranonces.
func (j *Job) Coinbase(extranonce1, extranonce2 []byte) []byte {
	coinbase := make([]byte, 0, len(j.Coinbase1)+len(extranonce1)+len(extranonce2)+len(j.Coinbase2))
	coinbase = append(coinbase, j.Coinbase1...)
	coinbase = append(coinbase, extranonce1...)
	coinbase = append(coinbase, extranonce2...)
	coinbase = append(coinbase, j.Coinbase2...)
	return coinbase
}

// MerkleRoot computes the merkle root for the coinbase built from the given
// extranonces.
func (j *Job) MerkleRoot(extranonce1, extranonce2 []byte) types.Digest32 {
	coinbaseHash := types.DoubleSHA256(j.Coinbase(extranonce1, extranonce2))
	return ComputeMerkleRoot(coinbaseHash, j.MerkleBranch)
}

// Header builds the block header for one (extranonce, nonce) attempt.
func (j *Job) Header(extranonce1, extranonce2 []byte, nonce uint32) *types.BlockHeader {
	return &types.BlockHeader{
		Version:       j.Version,
		PrevBlockHash: j.PrevHash,
		MerkleRoot:    j.MerkleRoot(extranonce1, extranonce2),
		Timestamp:     j.Time,
		Bits:          j.Bits.Bits(),
		Nonce:         nonce,
	}
}

// Target returns the full-width block target encoded in nbits.
func (j *Job) Target() *big.Int {
	return j.Bits.Target()
}
