// Package rest holds one module per backend resource. Each call builds a request with a
// fixed path and hands it to the client core; errors come back untouched.
package rest

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/internal/httpclient"
)

// Requester is the client core surface the modules use.
type Requester interface {
	Send(ctx context.Context, d *httpclient.Descriptor) (*httpclient.Response, error)
	Get(ctx context.Context, path string, query url.Values) (*httpclient.Response, error)
	Post(ctx context.Context, path string, body interface{}) (*httpclient.Response, error)
	Put(ctx context.Context, path string, body interface{}) (*httpclient.Response, error)
	Delete(ctx context.Context, path string, query url.Values) (*httpclient.Response, error)
	Upload(ctx context.Context, path string, form httpclient.Form) (*httpclient.Response, error)
	Download(ctx context.Context, path string) (*httpclient.Response, error)
}

// API groups every resource module over one client.
type API struct {
	Auth         *AuthAPI
	Purchase     *PurchaseAPI
	Inventory    *InventoryAPI
	Outbound     *OutboundAPI
	Confirmation *ConfirmationAPI
	Notification *NotificationAPI
	Report       *ReportAPI
	Workflow     *WorkflowAPI
}

func New(client Requester) *API {
	return &API{
		Auth:         &AuthAPI{client: client},
		Purchase:     &PurchaseAPI{client: client},
		Inventory:    &InventoryAPI{client: client},
		Outbound:     &OutboundAPI{client: client},
		Confirmation: &ConfirmationAPI{client: client},
		Notification: &NotificationAPI{client: client},
		Report:       &ReportAPI{client: client},
		Workflow:     &WorkflowAPI{client: client},
	}
}

// Filterer is implemented by the typed filters in api/transport.
type Filterer interface {
	Map() map[string]interface{}
}

func listQuery(page, size int, filters Filterer) url.Values {
	var q url.Values
	if filters != nil {
		q = httpclient.Query(filters.Map())
	} else {
		q = url.Values{}
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return q
}

func itemPath(prefix string, id int) string {
	return prefix + "/" + strconv.Itoa(id)
}

func decode[T any](resp *httpclient.Response, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	var out T
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func jsonBody(method, path string, body interface{}) (*httpclient.Descriptor, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "encode request body", err)
	}
	return &httpclient.Descriptor{
		Method:      method,
		Path:        path,
		Body:        payload,
		ContentType: "application/json",
	}, nil
}
