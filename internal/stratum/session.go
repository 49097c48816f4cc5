package stratum

// SessionIDLength is the number of hex characters in a session identifier
// (extranonce1). The same fixed-width format is used by the version, nbits
// and ntime fields of mining.notify.
const SessionIDLength = 8

// ValidSessionID reports whether s is a well-formed session identifier.
func ValidSessionID(s string) bool {
	return len(s) == SessionIDLength && isHex(s)
}
