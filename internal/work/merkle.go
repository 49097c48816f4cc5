package work

import "github.com/djkazic/stratum-notify/internal/types"

// ComputeMerkleBranch computes the Stratum merkle branch for a block whose
// non-coinbase transaction hashes (internal byte order) are txHashes.
func ComputeMerkleBranch(txHashes []types.Digest32) []types.Digest32 {
	branch := make([]types.Digest32, 0)
	if len(txHashes) == 0 {
		return branch
	}

	// At each level, hashes[0] is the sibling of the coinbase-path node.
	// The remaining hashes are paired for the next level.
	hashes := append([]types.Digest32(nil), txHashes...)
	for len(hashes) > 0 {
		branch = append(branch, hashes[0])
		if len(hashes) == 1 {
			break
		}

		remaining := hashes[1:]
		var next []types.Digest32
		for i := 0; i < len(remaining); i += 2 {
			left := remaining[i]
			right := left // duplicate last element for odd count
			if i+1 < len(remaining) {
				right = remaining[i+1]
			}
			next = append(next, hashPair(left, right))
		}
		hashes = next
	}

	return branch
}

// ComputeMerkleRoot folds the branch into the coinbase hash, as a miner does.
func ComputeMerkleRoot(coinbaseHash types.Digest32, branch []types.Digest32) types.Digest32 {
	current := coinbaseHash
	for _, sibling := range branch {
		current = hashPair(current, sibling)
	}
	return current
}

// ComputeFullMerkleRoot builds the merkle root from every txid (coinbase
// first) with the standard Bitcoin algorithm, without branches.
func ComputeFullMerkleRoot(txids []types.Digest32) types.Digest32 {
	if len(txids) == 0 {
		return types.Digest32{}
	}

	level := append([]types.Digest32(nil), txids...)
	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}
		next := make([]types.Digest32, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next = append(next, hashPair(level[i], level[i+1]))
		}
		level = next
	}

	return level[0]
}

func hashPair(left, right types.Digest32) types.Digest32 {
	combined := make([]byte, 0, 2*types.DigestSize)
	combined = append(combined, left[:]...)
	combined = append(combined, right[:]...)
	return types.DoubleSHA256(combined)
}
