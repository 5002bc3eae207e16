/*
Package heatshrink implements the Heatshrink compression family: a small
footprint LZSS variant designed for constrained, streaming, allocation-free
use. It provides two independent, cooperatively-scheduled state machines,
Encoder and Decoder, that share a sink/poll/finish/reset contract and never
call each other.

This profile is fixed at an 8-bit window (256 bytes of history) and a
4-bit lookahead (matches up to 16 bytes); these are compile-time constants,
not runtime options, so every Encoder and Decoder instance in a process
interoperates with every other.

# Streaming

	enc := heatshrink.NewEncoder()
	var out bytes.Buffer
	buf := make([]byte, 256)
	for _, chunk := range chunks {
	    for len(chunk) > 0 {
	        n, err := enc.Sink(chunk)
	        chunk = chunk[n:]
	        for {
	            n, status, err := enc.Poll(buf)
	            out.Write(buf[:n])
	            if status != heatshrink.StatusMore {
	                break
	            }
	        }
	    }
	}
	for {
	    status, err := enc.Finish()
	    n, _, _ := enc.Poll(buf)
	    out.Write(buf[:n])
	    if status == heatshrink.StatusDone {
	        break
	    }
	}

# One-shot

For callers that already hold the full input in memory, Encode and Decode
wrap the streaming state machines:

	compressed, err := heatshrink.Encode(data)
	original, err := heatshrink.Decode(compressed)

# Index acceleration

Build with -tags heatshrink_index to enable the hash-chain match index
(search_index.go); without the tag, the encoder falls back to a linear
scan (search_naive.go). Both produce byte-identical output.
*/
package heatshrink
