package stratum

import "regexp"

// MethodNotify is the method name of the work notification.
const MethodNotify = "mining.notify"

// NotifyParamsLength is the fixed number of positional mining.notify params.
const NotifyParamsLength = 9

// Positions of the mining.notify params. The order is the wire contract.
const (
	notifyJobID = iota
	notifyPrevHash
	notifyCoinbase1
	notifyCoinbase2
	notifyMerkleBranch
	notifyVersion
	notifyNBits
	notifyTime
	notifyClean
)

// digestHexLength is the hex length of a 32-byte digest.
const digestHexLength = 64

// NotifyParams is the positional parameter array of a mining.notify
// notification, as decoded from JSON or built by MakeNotifyParams.
type NotifyParams []interface{}

// NotifyFault names the first check a NotifyParams value failed.
type NotifyFault uint8

const (
	FaultNone NotifyFault = iota
	FaultLength
	FaultJobID
	FaultPrevHash
	FaultCoinbase1
	FaultCoinbase2
	FaultMerkleBranch
	FaultVersion
	FaultNBits
	FaultTime
	FaultClean
)

var faultNames = [...]string{
	FaultNone:         "none",
	FaultLength:       "length",
	FaultJobID:        "job_id",
	FaultPrevHash:     "prevhash",
	FaultCoinbase1:    "coinbase1",
	FaultCoinbase2:    "coinbase2",
	FaultMerkleBranch: "merkle_branch",
	FaultVersion:      "version",
	FaultNBits:        "nbits",
	FaultTime:         "ntime",
	FaultClean:        "clean_jobs",
}

func (f NotifyFault) String() string {
	if int(f) < len(faultNames) {
		return faultNames[f]
	}
	return "unknown"
}

// hexPattern accepts strings made entirely of lowercase hex pairs or entirely
// of uppercase hex pairs. Mixed-case strings are rejected.
var hexPattern = regexp.MustCompile(`^(?:(?:[0-9a-f]{2})*|(?:[0-9A-F]{2})*)$`)

func isHex(s string) bool {
	return hexPattern.MatchString(s)
}

func isHexString(v interface{}, length int) bool {
	s, ok := v.(string)
	if !ok || !isHex(s) {
		return false
	}
	return length < 0 || len(s) == length
}

// stringList accepts both the []interface{} produced by encoding/json and the
// []string produced by MakeNotifyParams.
func stringList(v interface{}) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []interface{}:
		out := make([]string, len(list))
		for i, e := range list {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func isSessionID(v interface{}) bool {
	s, ok := v.(string)
	return ok && ValidSessionID(s)
}

// CheckNotifyParams runs every structural and lexical check on p and returns
// the first failure, or FaultNone.
func CheckNotifyParams(p NotifyParams) NotifyFault {
	if len(p) != NotifyParamsLength {
		return FaultLength
	}
	if _, ok := p[notifyJobID].(string); !ok {
		return FaultJobID
	}
	if !isHexString(p[notifyPrevHash], digestHexLength) {
		return FaultPrevHash
	}
	if !isHexString(p[notifyCoinbase1], -1) {
		return FaultCoinbase1
	}
	if !isHexString(p[notifyCoinbase2], -1) {
		return FaultCoinbase2
	}
	branch, ok := stringList(p[notifyMerkleBranch])
	if !ok {
		return FaultMerkleBranch
	}
	for _, digest := range branch {
		if len(digest) != digestHexLength || !isHex(digest) {
			return FaultMerkleBranch
		}
	}
	if !isSessionID(p[notifyVersion]) {
		return FaultVersion
	}
	if !isSessionID(p[notifyNBits]) {
		return FaultNBits
	}
	if !isSessionID(p[notifyTime]) {
		return FaultTime
	}
	if _, ok := p[notifyClean].(bool); !ok {
		return FaultClean
	}
	return FaultNone
}

// ValidNotifyParams reports whether p is a well-formed mining.notify params array.
func ValidNotifyParams(p NotifyParams) bool {
	return CheckNotifyParams(p) == FaultNone
}
