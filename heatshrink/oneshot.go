package heatshrink

import "errors"

// oneshotChunk is the Sink/Poll transfer size used internally by Encode and
// Decode. It has no bearing on the wire format; it only bounds how much
// stack/heap the one-shot helpers touch per iteration.
const oneshotChunk = 512

// Encode compresses data in one call, driving a throwaway Encoder through
// its full sink/poll/finish sequence. It is a convenience wrapper around
// the streaming API for callers that already hold the whole input.
func Encode(data []byte, opts ...Option) ([]byte, error) {
	enc := NewEncoder(opts...)
	out := make([]byte, 0, len(data))
	buf := make([]byte, oneshotChunk)

	for len(data) > 0 {
		n, err := enc.Sink(data)
		if err != nil {
			return nil, err
		}
		data = data[n:]
		if out, err = drainEncoder(enc, buf, out); err != nil {
			return nil, err
		}
	}

	for {
		status, err := enc.Finish()
		if err != nil {
			return nil, err
		}
		if out, err = drainEncoder(enc, buf, out); err != nil {
			return nil, err
		}
		if status == StatusDone {
			return out, nil
		}
	}
}

func drainEncoder(enc *Encoder, buf []byte, out []byte) ([]byte, error) {
	for {
		n, status, err := enc.Poll(buf)
		if err != nil {
			return nil, err
		}
		out = append(out, buf[:n]...)
		if status != StatusMore {
			return out, nil
		}
	}
}

// Decode decompresses data produced by Encode (or any conforming Heatshrink
// encoder at this package's fixed window/lookahead profile) in one call. If
// the Decoder reports Truncated after Finish, Decode returns the bytes
// decoded so far together with a non-nil error. A stream cut off where the
// remainder could be zero-padding decodes without error.
func Decode(data []byte, opts ...Option) ([]byte, error) {
	dec := NewDecoder(opts...)
	out := make([]byte, 0, len(data))
	buf := make([]byte, oneshotChunk)

	for len(data) > 0 {
		n, err := dec.Sink(data)
		if err != nil {
			return nil, err
		}
		data = data[n:]
		if out, err = drainDecoder(dec, buf, out); err != nil {
			return nil, err
		}
	}

	for {
		if _, err := dec.Finish(); err != nil {
			return nil, err
		}
		if out, err = drainDecoder(dec, buf, out); err != nil {
			return nil, err
		}
		status, err := dec.Finish()
		if err != nil {
			return nil, err
		}
		if status == StatusDone {
			return out, nil
		}
		if dec.Truncated() {
			return out, errors.New("heatshrink: truncated stream")
		}
	}
}

func drainDecoder(dec *Decoder, buf []byte, out []byte) ([]byte, error) {
	for {
		n, status, err := dec.Poll(buf)
		if err != nil {
			return nil, err
		}
		out = append(out, buf[:n]...)
		if status != StatusMore {
			return out, nil
		}
	}
}
