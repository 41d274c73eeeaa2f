package httpclient

import (
	"encoding/json"

	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/pkg/envelope"
)

// Response is a successful (2xx, no application error) backend answer. The body is copied
// out of the transport buffers and safe to retain.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
	// JSON is false for payloads passed through untouched.
	JSON bool
}

// Data returns the envelope's data member, or the whole body when it is not wrapped.
func (r *Response) Data() []byte {
	if r == nil {
		return nil
	}
	if !r.JSON {
		return r.Body
	}
	return envelope.Data(r.Body)
}

// Decode unmarshals the unwrapped data into v.
func (r *Response) Decode(v interface{}) error {
	if r == nil || !r.JSON {
		return domain.NewError(domain.ErrCodeUnrecognized, "response is not JSON")
	}
	if err := json.Unmarshal(r.Data(), v); err != nil {
		return domain.WrapError(domain.ErrCodeUnrecognized, "decode response", err)
	}
	return nil
}

// DecodeBody unmarshals the complete body into v, envelope included.
func (r *Response) DecodeBody(v interface{}) error {
	if r == nil || !r.JSON {
		return domain.NewError(domain.ErrCodeUnrecognized, "response is not JSON")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return domain.WrapError(domain.ErrCodeUnrecognized, "decode response", err)
	}
	return nil
}
