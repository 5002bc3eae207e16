//go:build !heatshrink_index

package heatshrink

// indexState is empty in the naive build: there is no acceleration
// structure to carry, and rebuildIndex is a no-op. Build with
// -tags heatshrink_index to switch to the hash-chain index in
// search_index.go; both produce byte-identical encoded streams.
type indexState struct{}

func newIndexState() indexState {
	return indexState{}
}

func (e *Encoder) rebuildIndex() {}

// findLongestMatch scans every candidate position in [start, end) for the
// longest common prefix with buffer[end : end+maxLen], preferring the
// nearest (largest) position on ties by only replacing the current best
// on a strictly longer match.
func (e *Encoder) findLongestMatch(start, end, maxLen uint16) (pos, length uint16) {
	if maxLen == 0 {
		return matchNotFound, 0
	}
	needle := e.buffer[end : end+maxLen]
	bestLen := uint16(0)
	bestPos := matchNotFound

	for candidate := int(end) - 1; candidate >= int(start); candidate-- {
		p := uint16(candidate)
		var l uint16
		for l < maxLen && e.buffer[p+l] == needle[l] {
			l++
		}
		if l > bestLen {
			bestLen = l
			bestPos = p
			if l == maxLen {
				break
			}
		}
	}

	if bestLen > minMatchLength {
		return end - bestPos, bestLen
	}
	return matchNotFound, 0
}
