package heatshrink

import "github.com/sirupsen/logrus"

// Compile-time profile. W = windowBits, L = lookaheadBits are fixed,
// not runtime-tunable (see Non-goals).
const (
	windowBits    = 8
	lookaheadBits = 4

	windowSize      = 1 << windowBits    // 256 bytes of addressable history
	lookaheadSize   = 1 << lookaheadBits // 16 bytes, longest representable match
	inputBufferSize = 2 * windowSize     // 512: backlog half + incoming half

	// matchNotFound is the sentinel "no candidate" position.
	matchNotFound = uint16(0xffff)

	literalMarker = 1
	backrefMarker = 0

	// The cost of a back-reference (1 + windowBits + lookaheadBits bits)
	// in whole bytes, rounded down. Only matches longer than this are
	// emitted as back-references; matches of this length or shorter are
	// emitted as literal bytes.
	minMatchLength = (1 + windowBits + lookaheadBits) / 8
)

type encState uint8

const (
	stateNotFull encState = iota
	stateFilled
	stateSearch
	stateYieldTagBit
	stateYieldLiteral
	stateYieldBackRefIndex
	stateYieldBackRefLength
	stateSaveBacklog
	stateFlushBits
	stateDone
)

// Encoder turns a byte stream into a Heatshrink-coded bit stream. It holds
// all of its storage for its lifetime; no operation allocates.
type Encoder struct {
	// buffer holds, in its first half, the most recently consumed window
	// of plaintext (the match dictionary) and, in its second half, bytes
	// sunk but not yet scanned. matchScanIndex walks the second half;
	// inputSize counts how many of that second half's bytes are valid.
	buffer         []byte
	inputSize      uint16
	matchScanIndex uint16
	matchLength    uint16
	matchPos       uint16

	bw        bitWriter
	finishing bool
	state     encState

	idx indexState
	log logrus.FieldLogger
}

// NewEncoder returns an Encoder in its initial state.
func NewEncoder(opts ...Option) *Encoder {
	cfg := newMachineConfig(opts)
	e := &Encoder{
		buffer: make([]byte, inputBufferSize),
		idx:    newIndexState(),
		log:    cfg.log,
	}
	e.Reset()
	return e
}

// Reset returns the Encoder to the same state NewEncoder produces.
func (e *Encoder) Reset() {
	clear(e.buffer)
	e.inputSize = 0
	e.matchScanIndex = 0
	e.matchLength = 0
	e.matchPos = 0
	e.bw.reset()
	e.finishing = false
	e.state = stateNotFull
}

// Sink copies up to the Encoder's free capacity from input into the tail
// of its window buffer. n may be less than len(input), or zero, when the
// buffer is nearly full; that is backpressure, not an error. It returns
// ErrNullInput if input is nil, or ErrMisuse if called after Finish.
func (e *Encoder) Sink(input []byte) (n int, err error) {
	if input == nil {
		return 0, ErrNullInput
	}
	if e.finishing {
		return 0, ErrMisuse
	}

	free := int(windowSize - e.inputSize)
	if free <= 0 {
		return 0, nil
	}
	n = len(input)
	if n > free {
		n = free
	}
	writeOffset := windowSize + e.inputSize
	copy(e.buffer[writeOffset:], input[:n])
	e.inputSize += uint16(n)

	e.log.WithFields(logrus.Fields{"accepted": n, "bufferedNew": e.inputSize}).Trace("encoder sink")

	if e.inputSize == windowSize {
		e.state = stateFilled
	}
	return n, nil
}

// Poll drives the encoder forward, writing at most len(output) bytes.
func (e *Encoder) Poll(output []byte) (n int, status Status, err error) {
	out := &outputCursor{buf: output}
	for {
		before := e.state
		switch e.state {
		case stateNotFull:
			return out.n, StatusEmpty, nil
		case stateFilled:
			e.rebuildIndex()
			e.state = stateSearch
		case stateSearch:
			e.state = e.stepSearch()
		case stateYieldTagBit:
			e.state = e.stepYieldTagBit(out)
		case stateYieldLiteral:
			e.state = e.stepYieldLiteral(out)
		case stateYieldBackRefIndex:
			e.state = e.stepYieldBackRefIndex(out)
		case stateYieldBackRefLength:
			e.state = e.stepYieldBackRefLength(out)
		case stateSaveBacklog:
			e.saveBacklog()
			e.state = stateNotFull
		case stateFlushBits:
			e.state = e.stepFlushBits(out)
		case stateDone:
			return out.n, StatusEmpty, nil
		default:
			return out.n, StatusEmpty, internalf("encoder: unreachable state %d", e.state)
		}
		if e.state == before {
			// No forward progress: either output is full (stall) or we
			// are legitimately waiting on more input (stateNotFull is
			// handled above and never reaches here unchanged).
			if out.full() {
				return out.n, StatusMore, nil
			}
			return out.n, StatusEmpty, nil
		}
	}
}

// Finish signals that no more input will be sunk. It returns StatusDone if
// the encoder has nothing left to emit, else StatusMore (call Poll to
// drain the rest).
func (e *Encoder) Finish() (Status, error) {
	e.finishing = true
	if e.state == stateNotFull {
		e.state = stateFilled
	}
	if e.state == stateDone {
		return StatusDone, nil
	}
	return StatusMore, nil
}

func (e *Encoder) stepSearch() encState {
	bias := lookaheadSize
	if e.finishing {
		bias = 1
	}
	msi := e.matchScanIndex
	// Signed comparison: with finishing and very little (or no) data ever
	// sunk, inputSize-bias can go negative, and that must mean "nothing
	// left to scan" rather than wrapping around to a huge uint16 and
	// masking the end-of-input condition.
	if int(msi) > int(e.inputSize)-bias {
		if e.finishing {
			return stateFlushBits
		}
		return stateSaveBacklog
	}

	end := windowSize + msi
	start := end - windowSize // == msi; kept explicit as the window's lower bound
	maxPossible := uint16(lookaheadSize)
	if e.inputSize-msi < maxPossible {
		maxPossible = e.inputSize - msi
	}

	pos, length := e.findLongestMatch(start, end, maxPossible)
	if pos == matchNotFound {
		e.matchScanIndex++
		e.matchLength = 0
		return stateYieldTagBit
	}
	e.matchPos = pos
	e.matchLength = length
	return stateYieldTagBit
}

func (e *Encoder) stepYieldTagBit(out *outputCursor) encState {
	if e.matchLength == 0 {
		if !e.bw.push(out, 1, literalMarker) {
			return stateYieldTagBit
		}
		return stateYieldLiteral
	}
	if !e.bw.push(out, 1, backrefMarker) {
		return stateYieldTagBit
	}
	return stateYieldBackRefIndex
}

func (e *Encoder) stepYieldLiteral(out *outputCursor) encState {
	c := e.buffer[windowSize+e.matchScanIndex-1]
	if !e.bw.push(out, 8, c) {
		return stateYieldLiteral
	}
	return stateSearch
}

func (e *Encoder) stepYieldBackRefIndex(out *outputCursor) encState {
	if !e.bw.push(out, windowBits, uint8(e.matchPos-1)) {
		return stateYieldBackRefIndex
	}
	return stateYieldBackRefLength
}

func (e *Encoder) stepYieldBackRefLength(out *outputCursor) encState {
	if !e.bw.push(out, lookaheadBits, uint8(e.matchLength-1)) {
		return stateYieldBackRefLength
	}
	e.matchScanIndex += e.matchLength
	e.matchLength = 0
	return stateSearch
}

func (e *Encoder) stepFlushBits(out *outputCursor) encState {
	if !e.bw.flushFinal(out) {
		return stateFlushBits
	}
	return stateDone
}

// saveBacklog shifts the unprocessed tail of the buffer down to the start,
// making room for more incoming data. It does not touch the match index;
// Poll rebuilds that when the buffer next reaches stateFilled.
func (e *Encoder) saveBacklog() {
	msi := e.matchScanIndex
	rem := windowSize - msi // bytes not yet scanned
	copy(e.buffer, e.buffer[windowSize-rem:])
	e.matchScanIndex = 0
	e.inputSize -= windowSize - rem
}
