//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=osm_test
package osm

import (
	"context"
	"net/url"
)

type client interface {
	GetJSON(ctx context.Context, rawURL string, query url.Values, headers map[string]string, out any) error
}

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}
