package asset

import (
	"fmt"
	"strings"
	"time"
)

// MediaType filters media by kind. It is sent as its lowercased name.
type MediaType int

const (
	MediaImage MediaType = iota + 1
	MediaDocument
	MediaAudio
	MediaVideo
)

func (t MediaType) String() string {
	switch t {
	case MediaImage:
		return "Image"
	case MediaDocument:
		return "Document"
	case MediaAudio:
		return "Audio"
	case MediaVideo:
		return "Video"
	}

	return fmt.Sprintf("MediaType(%d)", int(t))
}

// ParseMediaType parses a media type name case-insensitively.
func ParseMediaType(s string) (MediaType, error) {
	for _, t := range []MediaType{MediaImage, MediaDocument, MediaAudio, MediaVideo} {
		if strings.EqualFold(t.String(), s) {
			return t, nil
		}
	}

	return 0, fmt.Errorf("unknown media type %q", s)
}

// Brand is a brand of the account, possibly with sub-brands.
type Brand struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	SubBrands   []Brand `json:"subBrands"`
}

// MetapropertyOption is one selectable value of a metaproperty.
type MetapropertyOption struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DisplayLabel string `json:"displayLabel"`
	IsSelectable bool   `json:"isSelectable"`
	ZIndex       int    `json:"zindex"`
}

// Metaproperty is a custom metadata field.
type Metaproperty struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Label         string               `json:"label"`
	Type          string               `json:"type"`
	IsMultiSelect bool                 `json:"isMultiselect"`
	IsRequired    bool                 `json:"isRequired"`
	IsFilterable  bool                 `json:"isFilterable"`
	ZIndex        int                  `json:"zindex"`
	Options       []MetapropertyOption `json:"options"`
}

// Media is an asset with its metadata.
type Media struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Copyright       string            `json:"copyright"`
	Type            string            `json:"type"`
	BrandID         string            `json:"brandId"`
	Tags            []string          `json:"tags"`
	Extension       []string          `json:"extension"`
	FileSize        int64             `json:"fileSize"`
	Width           int               `json:"width"`
	Height          int               `json:"height"`
	IsPublic        int               `json:"isPublic"`
	Archive         int               `json:"archive"`
	Original        string            `json:"original"`
	Thumbnails      map[string]string `json:"thumbnails"`
	PropertyOptions []string          `json:"propertyOptions"`
	DateCreated     time.Time         `json:"dateCreated"`
	DateModified    time.Time         `json:"dateModified"`
	DatePublished   time.Time         `json:"datePublished"`
	MediaItems      []MediaItem       `json:"mediaItems"`
}

// MediaItem is one file version of a media.
type MediaItem struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	FileName string `json:"fileName"`
	Version  int    `json:"version"`
	Size     int64  `json:"size"`
	Active   int    `json:"active"`
}

// MediaPage is a page of media with the total count when it was requested.
type MediaPage struct {
	Media []Media
	Total int
}

// Tag is a tag of the account.
type Tag struct {
	ID         string `json:"id"`
	Tag        string `json:"tag"`
	MediaCount int    `json:"mediaCount"`
}

// DownloadURL is a temporary link to a media file.
type DownloadURL struct {
	S3File string `json:"s3_file"`
}
