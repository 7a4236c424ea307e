package upload

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Bynder/bynder-go-sdk/pkg/configs"
	"github.com/Bynder/bynder-go-sdk/pkg/query"
	"github.com/Bynder/bynder-go-sdk/pkg/transport"
)

const (
	// PreparePath issues a v7 file id.
	PreparePath = "/v7/file_cmds/upload/prepare"
	// CorrelationHeader carries the id to poll after a v7 finalize.
	CorrelationHeader = "X-API-Correlation-ID"
	// ChecksumHeader carries the hex SHA-256 of a v7 chunk.
	ChecksumHeader = "Content-SHA256"
)

type prepareResponse struct {
	FileID string `json:"file_id"`
}

type finaliseResponse struct {
	CorrelationID string `json:"correlation_id"`
}

// V7 sends chunks straight to the API with a digest per chunk. Chunks carry their
// number, so they may be sent in parallel.
type V7 struct {
	sender transport.Sender
}

// NewV7 returns the v7 protocol.
func NewV7(sender transport.Sender) *V7 {
	return &V7{sender: sender}
}

// Name implements Protocol.
func (v *V7) Name() string { return string(configs.ProtocolV7) }

// Concurrent implements Protocol.
func (v *V7) Concurrent() bool { return true }

// Prepare implements Protocol.
func (v *V7) Prepare(ctx context.Context, _ *Request) (*Slot, error) {
	res, err := transport.SendJSON[prepareResponse](ctx, v.sender, transport.PostForm(PreparePath, nil))
	if err != nil {
		return nil, fmt.Errorf("prepare upload: %w", err)
	}

	if res.FileID == "" {
		return nil, fmt.Errorf("prepare upload: no file id in answer")
	}

	return &Slot{FileID: res.FileID}, nil
}

// UploadChunk implements Protocol.
func (v *V7) UploadChunk(ctx context.Context, slot *Slot, _ *Request, chunk Chunk, _ int) error {
	sum := sha256.Sum256(chunk.Data)

	r := &transport.Request{
		Method:      http.MethodPost,
		Path:        filePath(slot) + "/chunk/" + strconv.Itoa(chunk.Number),
		Body:        bytes.NewReader(chunk.Data),
		ContentType: transport.ContentTypeBinary,
	}
	r.SetHeader(ChecksumHeader, hex.EncodeToString(sum[:]))

	if _, err := v.sender.Send(ctx, r); err != nil {
		return fmt.Errorf("upload chunk %d: %w", chunk.Number, err)
	}

	return nil
}

// Finalize implements Protocol.
func (v *V7) Finalize(ctx context.Context, slot *Slot, req *Request, sum Summary) (*FinalizeResult, error) {
	form := query.EncodeFields(
		query.String("fileName", sum.FileName),
		query.Int64("fileSize", sum.Size),
		query.Int("chunksCount", sum.Chunks),
		query.String("sha256", sum.SHA256),
	)

	r := transport.PostForm(filePath(slot)+"/finalise_api", form)
	r.Query = query.FromMap(req.CustomParameters)

	resp, err := v.sender.Send(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("finalize upload: %w", err)
	}

	id := strings.TrimSpace(resp.Header.Get(CorrelationHeader))
	if id == "" && len(resp.Body) > 0 {
		if body, derr := transport.Decode[finaliseResponse](resp); derr == nil {
			id = body.CorrelationID
		}
	}

	if id == "" {
		return nil, fmt.Errorf("finalize upload: no correlation id in answer")
	}

	return &FinalizeResult{ImportID: id, SaveID: slot.FileID}, nil
}

func filePath(slot *Slot) string {
	return "/v7/file_cmds/upload/" + slot.FileID
}
