package upload

import (
	"context"
	"fmt"

	"github.com/Bynder/bynder-go-sdk/pkg/query"
	"github.com/Bynder/bynder-go-sdk/pkg/transport"
)

// PollPath answers the conversion state of imports.
const PollPath = "/api/v4/upload/poll/"

type pollQuery struct {
	Items []string
}

func (q pollQuery) QueryFields() []query.Field {
	return []query.Field{query.List("items", q.Items)}
}

// StatusClient is the StatusSource backed by the API.
type StatusClient struct {
	sender transport.Sender
}

// NewStatusClient returns a StatusClient sending through sender.
func NewStatusClient(sender transport.Sender) *StatusClient {
	return &StatusClient{sender: sender}
}

// PollStatus implements StatusSource.
func (c *StatusClient) PollStatus(ctx context.Context, ids []string) (*PollResult, error) {
	res, err := transport.SendJSON[PollResult](ctx, c.sender,
		transport.Get(PollPath, query.Encode(pollQuery{Items: ids})))
	if err != nil {
		return nil, fmt.Errorf("poll status: %w", err)
	}

	return &res, nil
}
