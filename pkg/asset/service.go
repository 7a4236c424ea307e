// Package asset wraps the media, brand, metaproperty and tag endpoints.
package asset

import (
	"context"
	"errors"
	"fmt"

	"github.com/Bynder/bynder-go-sdk/pkg/query"
	"github.com/Bynder/bynder-go-sdk/pkg/transport"
)

// ErrMissingID is returned when a call needs an id that was not given.
var ErrMissingID = errors.New("asset: missing id")

const (
	brandsPath         = "/api/v4/brands/"
	metapropertiesPath = "/api/v4/metaproperties/"
	mediaPath          = "/api/v4/media/"
	tagsPath           = "/api/v4/tags/"
)

// Service calls the asset endpoints.
type Service struct {
	sender transport.Sender
}

// NewService returns a Service sending through sender.
func NewService(sender transport.Sender) *Service {
	return &Service{sender: sender}
}

// GetBrands lists the brands of the account.
func (s *Service) GetBrands(ctx context.Context) ([]Brand, error) {
	brands, err := transport.SendJSON[[]Brand](ctx, s.sender, transport.Get(brandsPath, nil))
	if err != nil {
		return nil, fmt.Errorf("get brands: %w", err)
	}

	return brands, nil
}

// GetMetaproperties returns the metaproperties keyed by name.
func (s *Service) GetMetaproperties(ctx context.Context, q MetapropertiesQuery) (map[string]Metaproperty, error) {
	props, err := transport.SendJSON[map[string]Metaproperty](ctx, s.sender,
		transport.Get(metapropertiesPath, query.Encode(q)))
	if err != nil {
		return nil, fmt.Errorf("get metaproperties: %w", err)
	}

	return props, nil
}

// GetMediaList returns a page of media. Total is filled when q.IncludeTotal is set.
func (s *Service) GetMediaList(ctx context.Context, q MediaQuery) (*MediaPage, error) {
	req := transport.Get(mediaPath, query.Encode(q))

	if !q.IncludeTotal {
		media, err := transport.SendJSON[[]Media](ctx, s.sender, req)
		if err != nil {
			return nil, fmt.Errorf("get media list: %w", err)
		}

		return &MediaPage{Media: media, Total: -1}, nil
	}

	type counted struct {
		Count struct {
			Total int `json:"total"`
		} `json:"count"`
		Media []Media `json:"media"`
	}

	res, err := transport.SendJSON[counted](ctx, s.sender, req)
	if err != nil {
		return nil, fmt.Errorf("get media list: %w", err)
	}

	return &MediaPage{Media: res.Media, Total: res.Count.Total}, nil
}

// GetMediaInfo returns one media, with its file versions when q.Versions is set.
func (s *Service) GetMediaInfo(ctx context.Context, q MediaInfoQuery) (*Media, error) {
	if q.ID == "" {
		return nil, ErrMissingID
	}

	media, err := transport.SendJSON[Media](ctx, s.sender, transport.Get(mediaPath+q.ID+"/", query.Encode(q)))
	if err != nil {
		return nil, fmt.Errorf("get media %s: %w", q.ID, err)
	}

	return &media, nil
}

// ModifyMedia updates the metadata of a media.
func (s *Service) ModifyMedia(ctx context.Context, q ModifyMediaQuery) error {
	if q.ID == "" {
		return ErrMissingID
	}

	if _, err := s.sender.Send(ctx, transport.PostForm(mediaPath+q.ID+"/", query.Encode(q))); err != nil {
		return fmt.Errorf("modify media %s: %w", q.ID, err)
	}

	return nil
}

// DeleteMedia deletes a media.
func (s *Service) DeleteMedia(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}

	if _, err := s.sender.Send(ctx, transport.Delete(mediaPath+id+"/", nil)); err != nil {
		return fmt.Errorf("delete media %s: %w", id, err)
	}

	return nil
}

// GetDownloadURL returns a temporary link to the original file, or to the file version
// itemID when it is not empty.
func (s *Service) GetDownloadURL(ctx context.Context, id, itemID string) (*DownloadURL, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	path := mediaPath + id + "/download/"
	if itemID != "" {
		path += itemID + "/"
	}

	u, err := transport.SendJSON[DownloadURL](ctx, s.sender, transport.Get(path, nil))
	if err != nil {
		return nil, fmt.Errorf("get download url %s: %w", id, err)
	}

	return &u, nil
}

// GetTags lists the tags of the account.
func (s *Service) GetTags(ctx context.Context, q TagsQuery) ([]Tag, error) {
	tags, err := transport.SendJSON[[]Tag](ctx, s.sender, transport.Get(tagsPath, query.Encode(q)))
	if err != nil {
		return nil, fmt.Errorf("get tags: %w", err)
	}

	return tags, nil
}

// AddTagToMedia attaches a tag to every media of q.
func (s *Service) AddTagToMedia(ctx context.Context, q AddTagQuery) error {
	if q.TagID == "" || len(q.MediaIDs) == 0 {
		return ErrMissingID
	}

	if _, err := s.sender.Send(ctx, transport.PostForm(tagsPath+q.TagID+"/media/", query.Encode(q))); err != nil {
		return fmt.Errorf("add tag %s: %w", q.TagID, err)
	}

	return nil
}
