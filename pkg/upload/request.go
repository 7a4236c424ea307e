package upload

import (
	"io"
	"time"

	"github.com/Bynder/bynder-go-sdk/pkg/query"
)

// Request describes one upload. Set FilePath, or Reader with an optional Size.
// When MediaID is set the file becomes a new version of that media, otherwise a new
// asset is created in BrandID.
type Request struct {
	FilePath string
	Reader   io.Reader

	// Size of Reader in bytes, zero or negative when unknown.
	Size     int64
	FileName string

	BrandID string
	MediaID string

	Name                string
	Tags                []string
	Description         string
	Copyright           string
	IsPublic            *bool
	Audit               *bool
	DatePublished       *time.Time
	MetapropertyOptions map[string][]string

	// CustomParameters are appended to the finalize query string.
	CustomParameters map[string]string
}

// IsNewVersion reports whether the upload replaces the file of an existing media.
func (r *Request) IsNewVersion() bool {
	return r.MediaID != ""
}

// QueryFields returns the parameters of the save call.
func (r *Request) QueryFields() []query.Field {
	name := r.Name
	if name == "" {
		name = r.FileName
	}

	return []query.Field{
		query.String("brandId", r.BrandID),
		query.String("name", name),
		query.List("tags", r.Tags),
		query.String("description", r.Description),
		query.String("copyright", r.Copyright),
		query.Bool("isPublic", r.IsPublic),
		query.Bool("audit", r.Audit),
		query.Time("datePublished", r.DatePublished),
		query.Options("metaproperty", r.MetapropertyOptions),
	}
}

// Slot is the upload location issued by the API. Legacy uploads fill the storage fields,
// v7 uploads only FileID.
type Slot struct {
	UploadID        string
	TargetID        string
	S3Filename      string
	MultipartParams map[string]string

	FileID string
}

// Summary describes the uploaded content once the source is exhausted.
type Summary struct {
	FileName string
	Chunks   int
	Size     int64
	SHA256   string
}

// FinalizeResult identifies the import: ImportID is polled, SaveID names the file in the save call.
type FinalizeResult struct {
	ImportID string
	SaveID   string
}

// SaveResponse is the answer of the save call.
type SaveResponse struct {
	Success bool   `json:"success"`
	MediaID string `json:"mediaid"`
}

// Result is the outcome of a successful upload.
type Result struct {
	MediaID  string
	ImportID string
	Status   ConversionStatus
	Summary  Summary
}
