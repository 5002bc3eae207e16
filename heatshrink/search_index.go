//go:build heatshrink_index

package heatshrink

// indexState carries a reverse linked list, keyed by byte value, over the
// encoder's window buffer: chain[i] is either -1 or the greatest j < i
// with buffer[j] == buffer[i]. It is rebuilt from scratch every time the
// buffer is shifted (SaveBacklog) or first filled, trading O(2*2^W) bytes
// of RAM for a much shorter match search than the linear scan in
// search_naive.go. Build with -tags heatshrink_index to select this file.
type indexState struct {
	chain []int16
}

func newIndexState() indexState {
	return indexState{chain: make([]int16, inputBufferSize)}
}

// rebuildIndex rebuilds the hash chain over every currently-valid byte of
// the window buffer. The 256-entry head-of-chain table is transient
// (stack-allocated) and never retained between calls.
func (e *Encoder) rebuildIndex() {
	var heads [256]int16
	for i := range heads {
		heads[i] = -1
	}

	validEnd := windowSize + e.inputSize
	buf := e.buffer
	chain := e.idx.chain
	for i := uint16(0); i < validEnd; i++ {
		v := buf[i]
		chain[i] = heads[v]
		heads[v] = int16(i)
	}
}

// findLongestMatch walks the hash chain backward from end, bounded by
// start, extending each candidate as far as it matches. Ties are broken by
// keeping the first (nearest, largest-position) match found, since the
// chain always visits more recent positions before older ones and a new
// candidate only replaces the current best on a strictly longer match.
func (e *Encoder) findLongestMatch(start, end, maxLen uint16) (pos, length uint16) {
	if maxLen == 0 {
		return matchNotFound, 0
	}
	needle := e.buffer[end : end+maxLen]
	bestLen := uint16(0)
	bestPos := matchNotFound

	cursor := e.idx.chain[end]
	for cursor >= 0 && uint16(cursor) >= start {
		p := uint16(cursor)

		// Skip candidates that can't possibly beat the current best
		// before doing the full comparison.
		if bestLen < maxLen && e.buffer[p+bestLen] != needle[bestLen] {
			cursor = e.idx.chain[p]
			continue
		}

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
		cursor = e.idx.chain[p]
	}

	if bestLen > minMatchLength {
		return end - bestPos, bestLen
	}
	return matchNotFound, 0
}
