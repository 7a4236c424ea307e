package upload

import (
	"context"
)

// Protocol is one of the upload flows of the API. The Uploader drives it through
// Prepare, UploadChunk for every chunk, then Finalize.
type Protocol interface {
	// Name labels logs and metrics.
	Name() string
	// Prepare requests an upload slot.
	Prepare(ctx context.Context, req *Request) (*Slot, error)
	// UploadChunk transfers one chunk. total is the expected chunk count, -1 when unknown.
	UploadChunk(ctx context.Context, slot *Slot, req *Request, chunk Chunk, total int) error
	// Finalize closes the upload once every chunk is transferred.
	Finalize(ctx context.Context, slot *Slot, req *Request, sum Summary) (*FinalizeResult, error)
	// Concurrent reports whether chunks may be uploaded in parallel.
	Concurrent() bool
}
