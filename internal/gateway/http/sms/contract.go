//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=sms_test
package sms

import (
	"context"
	"net/url"
)

type client interface {
	PostForm(ctx context.Context, rawURL string, form url.Values, out any) error
}
