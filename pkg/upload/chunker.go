package upload

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
)

// Chunk is one slice of the source. Numbers start at 1 and are contiguous.
type Chunk struct {
	Number int
	Data   []byte
}

// Chunker splits a reader into chunks of at most size bytes in a single forward pass,
// hashing the whole stream as it goes.
type Chunker struct {
	r     io.Reader
	size  int
	next  int
	total int64
	hash  hash.Hash
	done  bool
}

// NewChunker returns a Chunker reading from r. size must be positive.
func NewChunker(r io.Reader, size int) *Chunker {
	if size <= 0 {
		panic("upload: chunk size must be positive")
	}

	return &Chunker{r: r, size: size, next: 1, hash: sha256.New()}
}

// Next returns the next chunk, or io.EOF once the source is exhausted.
// Every returned chunk owns its Data.
func (c *Chunker) Next() (Chunk, error) {
	if c.done {
		return Chunk{}, io.EOF
	}

	buf := make([]byte, c.size)

	n, err := io.ReadFull(c.r, buf)
	switch {
	case errors.Is(err, io.EOF):
		c.done = true

		return Chunk{}, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		c.done = true
	case err != nil:
		return Chunk{}, fmt.Errorf("read chunk %d: %w", c.next, err)
	}

	data := buf[:n]
	c.hash.Write(data)
	c.total += int64(n)

	chunk := Chunk{Number: c.next, Data: data}
	c.next++

	return chunk, nil
}

// Count returns the number of chunks returned so far.
func (c *Chunker) Count() int {
	return c.next - 1
}

// Size returns the number of bytes read so far.
func (c *Chunker) Size() int64 {
	return c.total
}

// SHA256 returns the hex digest of the bytes read so far.
func (c *Chunker) SHA256() string {
	return hex.EncodeToString(c.hash.Sum(nil))
}

// ChunkCount returns ceil(size/chunkSize), or -1 when size is unknown (negative).
func ChunkCount(size int64, chunkSize int) int {
	if size < 0 || chunkSize <= 0 {
		return -1
	}

	return int((size + int64(chunkSize) - 1) / int64(chunkSize))
}
