package heatshrink

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestDecoderSinkRejectsNilInput(t *testing.T) {
	dec := NewDecoder()
	_, err := dec.Sink(nil)
	assert.ErrorIs(t, err, ErrNullInput)
}

func TestDecoderSinkRejectsAfterFinish(t *testing.T) {
	dec := NewDecoder()
	_, err := dec.Finish()
	assert.NilError(t, err)

	_, err = dec.Sink([]byte{0})
	assert.ErrorIs(t, err, ErrMisuse)
}

func TestDecoderFinishOnFreshMachineIsDone(t *testing.T) {
	dec := NewDecoder()
	status, err := dec.Finish()
	assert.NilError(t, err)
	assert.Equal(t, status, StatusDone)
	assert.Assert(t, !dec.Truncated())
}

func TestDecoderTruncatedMidBackReference(t *testing.T) {
	compressed, err := Encode([]byte("abcabcabcabc"))
	assert.NilError(t, err)
	assert.Assert(t, len(compressed) > 1)

	dec := NewDecoder()
	truncated := compressed[:len(compressed)-1]
	_, err = dec.Sink(truncated)
	assert.NilError(t, err)

	buf := make([]byte, 64)
	for {
		_, status, err := dec.Poll(buf)
		assert.NilError(t, err)
		if status != StatusMore {
			break
		}
	}

	status, err := dec.Finish()
	assert.NilError(t, err)
	if status != StatusDone {
		assert.Assert(t, dec.Truncated())
	}
}

func TestDecoderPollOnEmptyBufferIsSafe(t *testing.T) {
	dec := NewDecoder()
	n, status, err := dec.Poll(nil)
	assert.NilError(t, err)
	assert.Equal(t, n, 0)
	assert.Equal(t, status, StatusEmpty)
}
