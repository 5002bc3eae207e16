package heatshrink

import "github.com/sirupsen/logrus"

// decoderInputCapacity bounds the decoder's pending-compressed-bytes
// queue. Not specified by the wire format (only the encoder's window size
// is load-bearing for interop); sized to match the encoder's own input
// buffer (inputBufferSize, 512 bytes).
const decoderInputCapacity = inputBufferSize

type decState uint8

const (
	stateTagBitD decState = iota
	stateYieldLiteralD
	stateBackRefIndexD
	stateBackRefCountD
	stateYieldBackRefD
)

// Decoder reconstructs plaintext from a Heatshrink-coded bit stream. Like
// Encoder, all storage is embedded and fixed-size; no operation allocates.
type Decoder struct {
	// window is the sliding reconstruction dictionary, ring-indexed by
	// headIndex & (windowSize-1).
	window     []byte
	headIndex  uint16
	outCount   uint16 // remaining bytes of the in-progress back-reference copy
	outDistIdx uint16 // distance back from headIndex the copy reads from

	br        bitReader
	finishing bool
	state     decState

	log logrus.FieldLogger
}

// NewDecoder returns a Decoder in its initial state.
func NewDecoder(opts ...Option) *Decoder {
	cfg := newMachineConfig(opts)
	d := &Decoder{
		window: make([]byte, windowSize),
		log:    cfg.log,
	}
	d.br.buf = make([]byte, decoderInputCapacity)
	d.Reset()
	return d
}

// Reset returns the Decoder to the same state NewDecoder produces.
func (d *Decoder) Reset() {
	clear(d.window)
	d.state = stateTagBitD
	d.headIndex = 0
	d.outCount = 0
	d.outDistIdx = 0
	d.finishing = false
	buf := d.br.buf
	d.br = bitReader{buf: buf}
}

// Sink copies up to the Decoder's free capacity from data into its pending
// input queue. n may be less than len(data), or zero, when the queue is
// full; that is backpressure, not an error. Returns ErrNullInput if data is
// nil, or ErrMisuse if called after Finish.
func (d *Decoder) Sink(data []byte) (n int, err error) {
	if data == nil {
		return 0, ErrNullInput
	}
	if d.finishing {
		return 0, ErrMisuse
	}
	free := len(d.br.buf) - int(d.br.size)
	if free <= 0 {
		return 0, nil
	}
	n = len(data)
	if n > free {
		n = free
	}
	copy(d.br.buf[d.br.size:], data[:n])
	d.br.size += uint16(n)

	d.log.WithFields(logrus.Fields{"accepted": n, "queued": d.br.size}).Trace("decoder sink")
	return n, nil
}

// Poll drives the decoder forward, writing at most len(output) bytes of
// reconstructed plaintext.
func (d *Decoder) Poll(output []byte) (n int, status Status, err error) {
	out := &outputCursor{buf: output}
	for {
		before := d.state
		beforeN := out.n
		switch d.state {
		case stateTagBitD:
			d.state = d.stepTagBit()
		case stateYieldLiteralD:
			d.state = d.stepYieldLiteral(out)
		case stateBackRefIndexD:
			d.state = d.stepBackRefIndex()
		case stateBackRefCountD:
			d.state = d.stepBackRefCount()
		case stateYieldBackRefD:
			d.state = d.stepYieldBackRef(out)
		default:
			return out.n, StatusEmpty, internalf("decoder: unreachable state %d", d.state)
		}
		// stateYieldBackRefD copies one byte per call and deliberately
		// returns to itself while outCount > 0; that is forward progress,
		// not a stall, so the state alone can't signal "done for now" -
		// only the absence of any output written this iteration can.
		if d.state == before && out.n == beforeN {
			switch before {
			case stateYieldLiteralD, stateYieldBackRefD:
				if out.full() {
					return out.n, StatusMore, nil
				}
				return out.n, StatusEmpty, nil
			default:
				// TagBit / BackRefIndex / BackRefCount never write
				// output; stalling here can only mean "need more
				// input bits", regardless of output capacity.
				return out.n, StatusEmpty, nil
			}
		}
	}
}

// Finish signals that no more coded input will be sunk. It returns
// StatusDone only if the decoder is in a state where the remainder of the
// stream (if any) is explainable as zero-padding; otherwise StatusMore,
// and a caller that never subsequently observes Done has a truncated
// stream on its hands.
func (d *Decoder) Finish() (Status, error) {
	d.finishing = true
	return d.finishStatus(), nil
}

// Truncated reports whether Finish has been called and the stream cannot
// be explained as complete - i.e. whether the caller should treat what it
// has decoded so far as a truncated/malformed result. It is a direct
// reading of the same rule Finish uses to decide StatusDone, exposed so
// callers don't have to re-derive it.
func (d *Decoder) Truncated() bool {
	return d.finishing && d.finishStatus() != StatusDone
}

func (d *Decoder) finishStatus() Status {
	switch d.state {
	case stateTagBitD, stateBackRefIndexD:
		if d.br.size == 0 {
			return StatusDone
		}
	}
	return StatusMore
}

func (d *Decoder) stepTagBit() decState {
	bit, ok := d.br.getBits(1)
	if !ok {
		return stateTagBitD
	}
	if bit != 0 {
		return stateYieldLiteralD
	}
	return stateBackRefIndexD
}

func (d *Decoder) stepYieldLiteral(out *outputCursor) decState {
	if out.full() {
		return stateYieldLiteralD
	}
	bits, ok := d.br.getBits(8)
	if !ok {
		return stateYieldLiteralD
	}
	c := uint8(bits)
	d.window[d.headIndex&(windowSize-1)] = c
	d.headIndex++
	out.putByte(c)
	return stateTagBitD
}

func (d *Decoder) stepBackRefIndex() decState {
	bits, ok := d.br.getBits(windowBits)
	if !ok {
		return stateBackRefIndexD
	}
	d.outDistIdx = bits + 1
	return stateBackRefCountD
}

func (d *Decoder) stepBackRefCount() decState {
	bits, ok := d.br.getBits(lookaheadBits)
	if !ok {
		return stateBackRefCountD
	}
	d.outCount = bits + 1
	return stateYieldBackRefD
}

func (d *Decoder) stepYieldBackRef(out *outputCursor) decState {
	if out.full() {
		return stateYieldBackRefD
	}
	mask := uint16(windowSize - 1)
	c := d.window[(d.headIndex-d.outDistIdx)&mask]
	out.putByte(c)
	d.window[d.headIndex&mask] = c
	d.headIndex++
	d.outCount--
	if d.outCount == 0 {
		return stateTagBitD
	}
	return stateYieldBackRefD
}
