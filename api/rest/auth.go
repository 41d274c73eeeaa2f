package rest

import (
	"context"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/internal/httpclient"
)

type AuthAPI struct {
	client Requester
}

// Login exchanges credentials for a bearer token. The backend expects form fields.
func (a *AuthAPI) Login(ctx context.Context, username, password string) (*transport.LoginResponse, error) {
	body, contentType, err := httpclient.Form{Fields: map[string]string{
		"username": username,
		"password": password,
	}}.Encode()
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "encode credentials", err)
	}
	resp, err := a.client.Send(ctx, &httpclient.Descriptor{
		Method:      fasthttp.MethodPost,
		Path:        "/login/access-token",
		Body:        body,
		ContentType: contentType,
	})
	out, err := decode[transport.LoginResponse](resp, err)
	if err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, domain.ErrMissingToken
	}
	return out, nil
}

// Me returns the raw profile so fields the console does not model are kept in the session.
func (a *AuthAPI) Me(ctx context.Context) ([]byte, error) {
	resp, err := a.client.Get(ctx, "/users/me", nil)
	if err != nil {
		return nil, err
	}
	if !resp.JSON {
		return nil, domain.NewError(domain.ErrCodeUnrecognized, "profile is not JSON")
	}
	return resp.Data(), nil
}

func (a *AuthAPI) UpdateMe(ctx context.Context, req transport.ProfileUpdateRequest) ([]byte, error) {
	resp, err := a.client.Put(ctx, "/users/me", req)
	if err != nil {
		return nil, err
	}
	return resp.Data(), nil
}
