package upload

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/Bynder/bynder-go-sdk/pkg/configs"
	"github.com/Bynder/bynder-go-sdk/pkg/query"
	"github.com/Bynder/bynder-go-sdk/pkg/transport"
)

// InitPath issues a legacy upload slot.
const InitPath = "/api/upload/init"

// storageFields are copied from the slot's multipart parameters, in this order.
var storageFields = []string{
	"x-amz-credential",
	"X-Amz-Signature",
	"x-amz-algorithm",
	"x-amz-date",
	"Policy",
	"success_action_status",
	"Content-Type",
	"acl",
}

type initResponse struct {
	S3File struct {
		UploadID string `json:"uploadid"`
		TargetID string `json:"targetid"`
	} `json:"s3file"`
	S3Filename      string            `json:"s3_filename"`
	MultipartParams map[string]string `json:"multipart_params"`
}

type finalizeResponse struct {
	ImportID string `json:"importId"`
}

// Legacy uploads every chunk to the storage backend, then registers it with the API.
// Chunks are strictly sequential.
type Legacy struct {
	sender    transport.Sender
	endpoints *EndpointCache
}

// NewLegacy returns the legacy protocol. endpoints may be shared between uploaders.
func NewLegacy(sender transport.Sender, endpoints *EndpointCache) *Legacy {
	if endpoints == nil {
		endpoints = NewEndpointCache(sender)
	}

	return &Legacy{sender: sender, endpoints: endpoints}
}

// Name implements Protocol.
func (l *Legacy) Name() string { return string(configs.ProtocolLegacy) }

// Concurrent implements Protocol.
func (l *Legacy) Concurrent() bool { return false }

// Prepare implements Protocol.
func (l *Legacy) Prepare(ctx context.Context, req *Request) (*Slot, error) {
	form := query.EncodeFields(query.String("filename", req.FileName))

	res, err := transport.SendJSON[initResponse](ctx, l.sender, transport.PostForm(InitPath, form))
	if err != nil {
		return nil, fmt.Errorf("init upload: %w", err)
	}

	if res.S3File.UploadID == "" {
		return nil, fmt.Errorf("init upload: no upload id in answer")
	}

	return &Slot{
		UploadID:        res.S3File.UploadID,
		TargetID:        res.S3File.TargetID,
		S3Filename:      res.S3Filename,
		MultipartParams: res.MultipartParams,
	}, nil
}

// UploadChunk implements Protocol.
func (l *Legacy) UploadChunk(ctx context.Context, slot *Slot, req *Request, chunk Chunk, total int) error {
	endpoint, err := l.endpoints.Get(ctx)
	if err != nil {
		return err
	}

	body, contentType, err := storageBody(slot, req.FileName, chunk, total)
	if err != nil {
		return fmt.Errorf("build chunk %d: %w", chunk.Number, err)
	}

	if _, err := l.sender.Send(ctx, &transport.Request{
		Method:      http.MethodPost,
		Path:        endpoint,
		Body:        body,
		ContentType: contentType,
		External:    true,
	}); err != nil {
		return fmt.Errorf("store chunk %d: %w", chunk.Number, err)
	}

	form := query.EncodeFields(
		query.String("id", slot.UploadID),
		query.String("targetid", slot.TargetID),
		query.String("filename", partName(slot.S3Filename, chunk.Number)),
		query.Int("chunkNumber", chunk.Number),
	)

	if _, err := l.sender.Send(ctx, transport.PostForm(uploadPath(slot), form)); err != nil {
		return fmt.Errorf("register chunk %d: %w", chunk.Number, err)
	}

	return nil
}

// Finalize implements Protocol.
func (l *Legacy) Finalize(ctx context.Context, slot *Slot, req *Request, sum Summary) (*FinalizeResult, error) {
	form := query.EncodeFields(
		query.String("id", slot.UploadID),
		query.String("targetid", slot.TargetID),
		query.String("s3_filename", partName(slot.S3Filename, sum.Chunks)),
		query.Int("chunks", sum.Chunks),
	)

	r := transport.PostForm(uploadPath(slot), form)
	r.Query = query.FromMap(req.CustomParameters)

	res, err := transport.SendJSON[finalizeResponse](ctx, l.sender, r)
	if err != nil {
		return nil, fmt.Errorf("finalize upload: %w", err)
	}

	if res.ImportID == "" {
		return nil, fmt.Errorf("finalize upload: no import id in answer")
	}

	return &FinalizeResult{ImportID: res.ImportID, SaveID: res.ImportID}, nil
}

func uploadPath(slot *Slot) string {
	return "/api/v4/upload/" + slot.UploadID + "/"
}

func partName(base string, n int) string {
	return base + "/p" + strconv.Itoa(n)
}

// storageBody builds the multipart form accepted by the storage backend.
func storageBody(slot *Slot, fileName string, chunk Chunk, total int) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)
	key := partName(slot.MultipartParams["key"], chunk.Number)

	fields := make([][2]string, 0, len(storageFields)+5)
	for _, name := range storageFields {
		if v, ok := slot.MultipartParams[name]; ok {
			fields = append(fields, [2]string{name, v})
		}
	}

	fields = append(fields,
		[2]string{"key", key},
		[2]string{"name", fileName},
		[2]string{"chunk", strconv.Itoa(chunk.Number)},
	)
	if total > 0 {
		fields = append(fields, [2]string{"chunks", strconv.Itoa(total)})
	}

	fields = append(fields, [2]string{"Filename", key})

	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return nil, "", err
	}

	if _, err := part.Write(chunk.Data); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}
