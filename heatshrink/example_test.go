package heatshrink_test

import (
	"bytes"
	"fmt"

	"github.com/heatshrink-go/heatshrink/heatshrink"
)

func Example() {
	data := []byte("the quick brown fox jumps over the lazy dog, the quick brown fox")

	compressed, err := heatshrink.Encode(data)
	if err != nil {
		panic(err)
	}

	decompressed, err := heatshrink.Decode(compressed)
	if err != nil {
		panic(err)
	}

	fmt.Println(bytes.Equal(data, decompressed))
	fmt.Println(len(compressed) < len(data))
	// Output:
	// true
	// true
}

func Example_streaming() {
	enc := heatshrink.NewEncoder()
	var compressed bytes.Buffer
	buf := make([]byte, 64)

	input := bytes.Repeat([]byte("ab"), 100)
	for len(input) > 0 {
		n, err := enc.Sink(input)
		if err != nil {
			panic(err)
		}
		input = input[n:]
		for {
			n, status, err := enc.Poll(buf)
			if err != nil {
				panic(err)
			}
			compressed.Write(buf[:n])
			if status != heatshrink.StatusMore {
				break
			}
		}
	}
	for {
		status, err := enc.Finish()
		if err != nil {
			panic(err)
		}
		n, _, err := enc.Poll(buf)
		if err != nil {
			panic(err)
		}
		compressed.Write(buf[:n])
		if status == heatshrink.StatusDone {
			break
		}
	}

	decompressed, err := heatshrink.Decode(compressed.Bytes())
	if err != nil {
		panic(err)
	}
	fmt.Println(string(decompressed[:6]))
	// Output:
	// ababab
}
