package asset

import (
	"time"

	"github.com/Bynder/bynder-go-sdk/pkg/query"
)

// MediaQuery filters the media list. Properties filters by metaproperty name and is
// sent as property_{name}.
type MediaQuery struct {
	Type              *MediaType
	Keyword           string
	Limit             int
	Page              int
	BrandID           string
	SubBrandID        string
	CategoryID        string
	PropertyOptionIDs []string
	Properties        map[string][]string
	Tags              []string
	IDs               []string
	OrderBy           string
	IsPublic          *bool
	DateCreated       *time.Time
	DateModified      *time.Time
	IncludeTotal      bool
}

// QueryFields implements query.Encoder.
func (q MediaQuery) QueryFields() []query.Field {
	var count *bool
	if q.IncludeTotal {
		count = query.Ptr(true)
	}

	return []query.Field{
		query.Enum("type", q.Type),
		query.String("keyword", q.Keyword),
		query.Int("limit", q.Limit),
		query.Int("page", q.Page),
		query.String("brandId", q.BrandID),
		query.String("subBrandId", q.SubBrandID),
		query.String("categoryId", q.CategoryID),
		query.List("propertyOptionId", q.PropertyOptionIDs),
		query.Options("property_", q.Properties).OmitSeparator(),
		query.List("tags", q.Tags),
		query.List("ids", q.IDs),
		query.String("orderBy", q.OrderBy),
		query.Bool("isPublic", q.IsPublic),
		query.Time("dateCreated", q.DateCreated),
		query.Time("dateModified", q.DateModified),
		query.Bool("count", count),
	}
}

// MediaInfoQuery selects the media of GetMediaInfo.
type MediaInfoQuery struct {
	ID       string
	Versions bool
}

// QueryFields implements query.Encoder.
func (q MediaInfoQuery) QueryFields() []query.Field {
	var versions *bool
	if q.Versions {
		versions = query.Ptr(true)
	}

	return []query.Field{query.Bool("versions", versions)}
}

// ModifyMediaQuery changes the metadata of a media. Unset fields are left untouched;
// Description, Copyright and DatePublished can be cleared with query.Clear.
type ModifyMediaQuery struct {
	ID                  string
	Name                string
	Description         query.Optional[string]
	Copyright           query.Optional[string]
	DatePublished       query.Optional[time.Time]
	Archive             *bool
	IsPublic            *bool
	Tags                []string
	MetapropertyOptions map[string][]string
}

// QueryFields implements query.Encoder.
func (q ModifyMediaQuery) QueryFields() []query.Field {
	return []query.Field{
		query.String("name", q.Name),
		query.Erasable("description", q.Description),
		query.Erasable("copyright", q.Copyright),
		query.ErasableTime("datePublished", q.DatePublished),
		query.Bool("archive", q.Archive),
		query.Bool("isPublic", q.IsPublic),
		query.List("tags", q.Tags),
		query.Options("metaproperty", q.MetapropertyOptions),
	}
}

// MetapropertiesQuery filters GetMetaproperties.
type MetapropertiesQuery struct {
	Count   bool
	Options bool
	Types   []string
}

// QueryFields implements query.Encoder.
func (q MetapropertiesQuery) QueryFields() []query.Field {
	return []query.Field{
		query.Bool("count", query.Ptr(q.Count)),
		query.Bool("options", query.Ptr(q.Options)),
		query.List("type", q.Types),
	}
}

// TagsQuery filters GetTags.
type TagsQuery struct {
	Keyword  string
	Limit    int
	Page     int
	OrderBy  string
	MinCount int
}

// QueryFields implements query.Encoder.
func (q TagsQuery) QueryFields() []query.Field {
	return []query.Field{
		query.String("keyword", q.Keyword),
		query.Int("limit", q.Limit),
		query.Int("page", q.Page),
		query.String("orderBy", q.OrderBy),
		query.Int("mincount", q.MinCount),
	}
}

// AddTagQuery attaches a tag to media. The ids are sent as an embedded JSON array.
type AddTagQuery struct {
	TagID    string
	MediaIDs []string
}

// QueryFields implements query.Encoder.
func (q AddTagQuery) QueryFields() []query.Field {
	return []query.Field{query.JSON("data", q.MediaIDs)}
}
