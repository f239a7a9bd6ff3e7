//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=webhook_test
package webhook

import "context"

type client interface {
	DoJSON(ctx context.Context, method, rawURL string, headers map[string]string, body, out any) error
}
