package asset_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bynder/bynder-go-sdk/pkg/asset"
	"github.com/Bynder/bynder-go-sdk/pkg/query"
	"github.com/Bynder/bynder-go-sdk/pkg/transport"
)

// recorder answers every request with body and keeps the last request.
type recorder struct {
	body string
	last *transport.Request
}

func (r *recorder) Send(_ context.Context, req *transport.Request) (*transport.Response, error) {
	r.last = req

	return &transport.Response{StatusCode: http.StatusOK, Body: []byte(r.body)}, nil
}

func TestService_GetMediaList(t *testing.T) {
	// Arrange
	rec := &recorder{body: `[{"id":"m1","name":"Logo","dateCreated":"2017-03-23T12:32:48Z"}]`}
	svc := asset.NewService(rec)
	image := asset.MediaImage

	// Act
	page, err := svc.GetMediaList(context.Background(), asset.MediaQuery{
		Type:       &image,
		Keyword:    "logo",
		Limit:      50,
		Properties: map[string][]string{"size": {"large"}},
		IDs:        []string{"a", "b"},
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, page.Media, 1)
	assert.Equal(t, "m1", page.Media[0].ID)
	assert.Equal(t, 2017, page.Media[0].DateCreated.Year())
	assert.Equal(t, -1, page.Total)

	assert.Equal(t, http.MethodGet, rec.last.Method)
	assert.Equal(t, "/api/v4/media/", rec.last.Path)
	assert.Equal(t, "type=image&keyword=logo&limit=50&property_size=large&ids=a%2Cb", rec.last.Query.Encode())
}

func TestService_GetMediaListWithTotal(t *testing.T) {
	rec := &recorder{body: `{"count":{"total":42},"media":[{"id":"m1"}]}`}
	svc := asset.NewService(rec)

	page, err := svc.GetMediaList(context.Background(), asset.MediaQuery{IncludeTotal: true})

	require.NoError(t, err)
	assert.Equal(t, 42, page.Total)
	assert.Len(t, page.Media, 1)
	assert.Equal(t, "count=1", rec.last.Query.Encode())
}

func TestService_ModifyMedia(t *testing.T) {
	rec := &recorder{}
	svc := asset.NewService(rec)
	archive := false

	err := svc.ModifyMedia(context.Background(), asset.ModifyMediaQuery{
		ID:            "m1",
		Name:          "New name",
		Description:   query.Clear[string](),
		Copyright:     query.Some("ACME"),
		DatePublished: query.Some(time.Date(2018, 1, 20, 22, 12, 0, 0, time.UTC)),
		Archive:       &archive,
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.last.Method)
	assert.Equal(t, "/api/v4/media/m1/", rec.last.Path)
	assert.Equal(t,
		"name=New+name&description=&copyright=ACME&datePublished=2018-01-20T22%3A12%3A00Z&archive=0",
		rec.last.Form.Encode())
}

func TestService_ModifyMediaUntouchedFields(t *testing.T) {
	rec := &recorder{}
	svc := asset.NewService(rec)

	err := svc.ModifyMedia(context.Background(), asset.ModifyMediaQuery{
		ID:            "m1",
		Description:   query.Some(""),
		DatePublished: query.Clear[time.Time](),
	})

	require.NoError(t, err)
	assert.Equal(t, "datePublished=", rec.last.Form.Encode())
}

func TestService_MissingID(t *testing.T) {
	svc := asset.NewService(&recorder{})

	_, err := svc.GetMediaInfo(context.Background(), asset.MediaInfoQuery{})
	require.ErrorIs(t, err, asset.ErrMissingID)

	require.ErrorIs(t, svc.DeleteMedia(context.Background(), ""), asset.ErrMissingID)
	require.ErrorIs(t, svc.ModifyMedia(context.Background(), asset.ModifyMediaQuery{}), asset.ErrMissingID)
	require.ErrorIs(t, svc.AddTagToMedia(context.Background(), asset.AddTagQuery{TagID: "t"}), asset.ErrMissingID)
}

func TestService_GetMediaInfo(t *testing.T) {
	rec := &recorder{body: `{"id":"m1","mediaItems":[{"id":"i1","version":2}]}`}
	svc := asset.NewService(rec)

	media, err := svc.GetMediaInfo(context.Background(), asset.MediaInfoQuery{ID: "m1", Versions: true})

	require.NoError(t, err)
	assert.Equal(t, 2, media.MediaItems[0].Version)
	assert.Equal(t, "/api/v4/media/m1/", rec.last.Path)
	assert.Equal(t, "versions=1", rec.last.Query.Encode())
}

func TestService_AddTagToMedia(t *testing.T) {
	rec := &recorder{}
	svc := asset.NewService(rec)

	err := svc.AddTagToMedia(context.Background(), asset.AddTagQuery{TagID: "t1", MediaIDs: []string{"m1", "m2"}})

	require.NoError(t, err)
	assert.Equal(t, "/api/v4/tags/t1/media/", rec.last.Path)

	data, ok := rec.last.Form.Get("data")
	require.True(t, ok)
	assert.Equal(t, `["m1","m2"]`, data)
}

func TestService_GetDownloadURL(t *testing.T) {
	rec := &recorder{body: `{"s3_file":"https://files.example.com/a.png"}`}
	svc := asset.NewService(rec)

	u, err := svc.GetDownloadURL(context.Background(), "m1", "i2")

	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/a.png", u.S3File)
	assert.Equal(t, "/api/v4/media/m1/download/i2/", rec.last.Path)
}

func TestService_GetBrandsAndTags(t *testing.T) {
	rec := &recorder{body: `[{"id":"b1","name":"Main","subBrands":[{"id":"b2","name":"Sub"}]}]`}
	svc := asset.NewService(rec)

	brands, err := svc.GetBrands(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sub", brands[0].SubBrands[0].Name)

	rec.body = `[{"id":"t1","tag":"summer","mediaCount":3}]`

	tags, err := svc.GetTags(context.Background(), asset.TagsQuery{Keyword: "sum", MinCount: 2})
	require.NoError(t, err)
	assert.Equal(t, "summer", tags[0].Tag)
	assert.Equal(t, "keyword=sum&mincount=2", rec.last.Query.Encode())
}

func TestService_GetMetaproperties(t *testing.T) {
	rec := &recorder{body: `{"Color":{"id":"mp1","name":"Color","options":[{"id":"o1","name":"red"}]}}`}
	svc := asset.NewService(rec)

	props, err := svc.GetMetaproperties(context.Background(), asset.MetapropertiesQuery{Options: true})

	require.NoError(t, err)
	assert.Equal(t, "o1", props["Color"].Options[0].ID)
	assert.Equal(t, "count=0&options=1", rec.last.Query.Encode())
}

func TestParseMediaType(t *testing.T) {
	mt, err := asset.ParseMediaType("video")
	require.NoError(t, err)
	assert.Equal(t, asset.MediaVideo, mt)

	_, err = asset.ParseMediaType("hologram")
	require.Error(t, err)
}
