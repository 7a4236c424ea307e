// Package collection wraps the collection endpoints.
package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Bynder/bynder-go-sdk/pkg/query"
	"github.com/Bynder/bynder-go-sdk/pkg/transport"
)

// ErrMissingID is returned when a call needs an id that was not given.
var ErrMissingID = errors.New("collection: missing id")

const collectionsPath = "/api/v4/collections/"

// Permission is the access granted by ShareCollection.
type Permission int

const (
	PermissionView Permission = iota + 1
	PermissionEdit
)

func (p Permission) String() string {
	switch p {
	case PermissionView:
		return "View"
	case PermissionEdit:
		return "Edit"
	}

	return fmt.Sprintf("Permission(%d)", int(p))
}

// ParsePermission parses a permission name case-insensitively.
func ParsePermission(s string) (Permission, error) {
	for _, p := range []Permission{PermissionView, PermissionEdit} {
		if strings.EqualFold(p.String(), s) {
			return p, nil
		}
	}

	return 0, fmt.Errorf("unknown permission %q", s)
}

// Collection is a named set of media.
type Collection struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	IsPublic     int       `json:"IsPublic"`
	MediaCount   int       `json:"collectionCount"`
	UserID       string    `json:"userId"`
	DateCreated  time.Time `json:"dateCreated"`
	DateModified time.Time `json:"dateModified"`
	CoverImage   struct {
		Thumbnail string `json:"thumbnail"`
		Large     string `json:"large"`
	} `json:"cover"`
}

// ListQuery filters GetCollections.
type ListQuery struct {
	Keyword  string
	Limit    int
	Page     int
	OrderBy  string
	IDs      []string
	IsPublic *bool
}

// QueryFields implements query.Encoder.
func (q ListQuery) QueryFields() []query.Field {
	return []query.Field{
		query.String("keyword", q.Keyword),
		query.Int("limit", q.Limit),
		query.Int("page", q.Page),
		query.String("orderBy", q.OrderBy),
		query.List("ids", q.IDs),
		query.Bool("isPublic", q.IsPublic),
	}
}

// CreateQuery creates a collection.
type CreateQuery struct {
	Name        string
	Description string
}

// QueryFields implements query.Encoder.
func (q CreateQuery) QueryFields() []query.Field {
	return []query.Field{
		query.String("name", q.Name),
		query.String("description", q.Description),
	}
}

// AddMediaQuery adds media to a collection. The ids are sent as an embedded JSON array.
type AddMediaQuery struct {
	ID       string
	MediaIDs []string
}

// QueryFields implements query.Encoder.
func (q AddMediaQuery) QueryFields() []query.Field {
	return []query.Field{query.JSON("data", q.MediaIDs)}
}

// RemoveMediaQuery removes media from a collection.
type RemoveMediaQuery struct {
	ID       string
	MediaIDs []string
}

// QueryFields implements query.Encoder.
func (q RemoveMediaQuery) QueryFields() []query.Field {
	return []query.Field{query.List("deleteIds", q.MediaIDs)}
}

// ShareQuery shares a collection with a list of recipients.
type ShareQuery struct {
	ID            string
	Recipients    []string
	Permission    *Permission
	LoginRequired *bool
	DateStart     *time.Time
	DateEnd       *time.Time
	SendMail      *bool
	Message       string
}

// QueryFields implements query.Encoder.
func (q ShareQuery) QueryFields() []query.Field {
	return []query.Field{
		query.List("recipients", q.Recipients),
		query.Enum("collectionOptions", q.Permission),
		query.Bool("loginRequired", q.LoginRequired),
		query.Time("dateStart", q.DateStart),
		query.Time("dateEnd", q.DateEnd),
		query.Bool("sendMail", q.SendMail),
		query.String("message", q.Message),
	}
}

// Service calls the collection endpoints.
type Service struct {
	sender transport.Sender
}

// NewService returns a Service sending through sender.
func NewService(sender transport.Sender) *Service {
	return &Service{sender: sender}
}

// GetCollections lists collections.
func (s *Service) GetCollections(ctx context.Context, q ListQuery) ([]Collection, error) {
	cs, err := transport.SendJSON[[]Collection](ctx, s.sender, transport.Get(collectionsPath, query.Encode(q)))
	if err != nil {
		return nil, fmt.Errorf("get collections: %w", err)
	}

	return cs, nil
}

// GetCollection returns one collection.
func (s *Service) GetCollection(ctx context.Context, id string) (*Collection, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	c, err := transport.SendJSON[Collection](ctx, s.sender, transport.Get(collectionsPath+id+"/", nil))
	if err != nil {
		return nil, fmt.Errorf("get collection %s: %w", id, err)
	}

	return &c, nil
}

// GetCollectionMedia returns the ids of the media in a collection.
func (s *Service) GetCollectionMedia(ctx context.Context, id string) ([]string, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	ids, err := transport.SendJSON[[]string](ctx, s.sender, transport.Get(collectionsPath+id+"/media/", nil))
	if err != nil {
		return nil, fmt.Errorf("get collection media %s: %w", id, err)
	}

	return ids, nil
}

// CreateCollection creates a collection.
func (s *Service) CreateCollection(ctx context.Context, q CreateQuery) error {
	if q.Name == "" {
		return fmt.Errorf("create collection: name required")
	}

	if _, err := s.sender.Send(ctx, transport.PostForm(collectionsPath, query.Encode(q))); err != nil {
		return fmt.Errorf("create collection: %w", err)
	}

	return nil
}

// AddMediaToCollection adds media to a collection.
func (s *Service) AddMediaToCollection(ctx context.Context, q AddMediaQuery) error {
	if q.ID == "" || len(q.MediaIDs) == 0 {
		return ErrMissingID
	}

	if _, err := s.sender.Send(ctx, transport.PostForm(collectionsPath+q.ID+"/media/", query.Encode(q))); err != nil {
		return fmt.Errorf("add media to collection %s: %w", q.ID, err)
	}

	return nil
}

// RemoveMediaFromCollection removes media from a collection.
func (s *Service) RemoveMediaFromCollection(ctx context.Context, q RemoveMediaQuery) error {
	if q.ID == "" || len(q.MediaIDs) == 0 {
		return ErrMissingID
	}

	if _, err := s.sender.Send(ctx, transport.Delete(collectionsPath+q.ID+"/media/", query.Encode(q))); err != nil {
		return fmt.Errorf("remove media from collection %s: %w", q.ID, err)
	}

	return nil
}

// ShareCollection shares a collection.
func (s *Service) ShareCollection(ctx context.Context, q ShareQuery) error {
	if q.ID == "" {
		return ErrMissingID
	}

	if _, err := s.sender.Send(ctx, transport.PostForm(collectionsPath+q.ID+"/share/", query.Encode(q))); err != nil {
		return fmt.Errorf("share collection %s: %w", q.ID, err)
	}

	return nil
}

// DeleteCollection deletes a collection.
func (s *Service) DeleteCollection(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}

	if _, err := s.sender.Send(ctx, transport.Delete(collectionsPath+id+"/", nil)); err != nil {
		return fmt.Errorf("delete collection %s: %w", id, err)
	}

	return nil
}
