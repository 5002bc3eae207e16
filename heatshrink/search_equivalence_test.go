package heatshrink

import (
	"testing"

	"gotest.tools/v3/assert"
)

// These exercise whichever findLongestMatch/rebuildIndex pair the build tag
// selected (search_naive.go by default, search_index.go under
// -tags heatshrink_index). Both variants must satisfy the same contract,
// so running this file under both tags is how their equivalence is
// checked; TestEncodeDecodeOneShot and TestRoundTripScenarios add
// stream-level round-trip checks that must pass under either variant.

func newTestEncoderWithBuffer(data []byte) *Encoder {
	e := NewEncoder()
	copy(e.buffer, data)
	// rebuildIndex only covers [0, windowSize+inputSize); set inputSize as
	// if the buffer had just filled, matching the real precondition under
	// which Poll calls rebuildIndex, so the whole fixture is indexed.
	e.inputSize = windowSize
	e.rebuildIndex()
	return e
}

func TestFindLongestMatchNoCandidate(t *testing.T) {
	buf := make([]byte, inputBufferSize)
	// Bytes before `end` are i%250, so no two of them in a row are zero
	// like the all-zero needle; nothing reaches the minimum match length.
	for i := range buf[:windowSize] {
		buf[i] = byte(i % 250)
	}
	e := newTestEncoderWithBuffer(buf)
	end := uint16(windowSize)
	pos, length := e.findLongestMatch(0, end, lookaheadSize)
	assert.Equal(t, pos, matchNotFound)
	assert.Equal(t, length, uint16(0))
}

func TestFindLongestMatchPrefersNearestOnTie(t *testing.T) {
	buf := make([]byte, inputBufferSize)
	end := uint16(windowSize)
	// Plant the same 4-byte run at two positions; the nearer one (higher
	// index) must win.
	copy(buf[10:14], []byte{1, 2, 3, 4})
	copy(buf[200:204], []byte{1, 2, 3, 4})
	copy(buf[end:end+4], []byte{1, 2, 3, 4})

	e := newTestEncoderWithBuffer(buf)
	pos, length := e.findLongestMatch(0, end, 4)
	assert.Equal(t, length, uint16(4))
	assert.Equal(t, pos, end-200)
}

func TestFindLongestMatchExtendsToMaxLen(t *testing.T) {
	buf := make([]byte, inputBufferSize)
	end := uint16(windowSize)
	for i := 0; i < lookaheadSize; i++ {
		buf[100+i] = byte('x')
		buf[int(end)+i] = byte('x')
	}
	e := newTestEncoderWithBuffer(buf)
	pos, length := e.findLongestMatch(0, end, lookaheadSize)
	assert.Equal(t, length, uint16(lookaheadSize))
	assert.Equal(t, pos, end-100)
}
