package transport

import "encoding/json"

// LoginResponse is the token endpoint payload.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserUnitsResponse lists the user units known to purchase orders.
type UserUnitsResponse struct {
	Data    []string `json:"data"`
	Total   int      `json:"total"`
	Message string   `json:"message,omitempty"`
}

// Envelope is the relay's own JSON wrapper for the responses it generates itself.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}) Envelope {
	return Envelope{Code: 200, Data: data}
}

// NewError returns an error envelope. code mirrors the HTTP status.
func NewError(code int, message string, data interface{}) Envelope {
	return Envelope{Code: code, Message: message, Data: data}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
