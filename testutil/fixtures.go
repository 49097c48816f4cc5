package testutil

import (
	"math/big"
	"strings"
)

// SamplePrevHash is a 64-character lowercase prevhash as sent on the wire.
const SamplePrevHash = "0000000000000003fa0d845513ea5014a7859d411f5f4a91eaab24eb47a18f39"

// SampleBranchHash is a valid merkle branch element.
const SampleBranchHash = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"

// SampleNotifyParams returns a minimal valid mining.notify params array with
// empty coinbase halves and an empty merkle branch, shaped like the output of
// encoding/json.
func SampleNotifyParams() []interface{} {
	return []interface{}{
		"job-7",
		SamplePrevHash,
		"",
		"",
		[]interface{}{},
		"00000002",
		"1d00ffff",
		"5f5e1000",
		true,
	}
}

// SampleNotifyJSON returns a full mining.notify line carrying a coinbase and
// a two-element merkle branch.
func SampleNotifyJSON() string {
	branch := `["` + SampleBranchHash + `","` + strings.Repeat("ab", 32) + `"]`
	return `{"id":null,"method":"mining.notify","params":["4f","` + SamplePrevHash +
		`","01000000010000","ffffffff0100f2052a01000000",` + branch +
		`,"20000000","ffff001d","00f15365",false]}`
}

// EasyTarget returns a very easy target for testing (any hash will pass).
func EasyTarget() *big.Int {
	return new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
}
