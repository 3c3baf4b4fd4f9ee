package handler

import (
	"encoding/json"
	"maps"
	"net/http"
)

// ErrorBody is the JSON error payload.
type ErrorBody struct {
	Error   string              `json:"error"`
	Code    string              `json:"code,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   any
	header http.Header
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	maps.Copy(w.Header(), j.header)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	if r.Method == http.MethodHead {
		return nil
	}
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithJSONHeader sets a response header.
func WithJSONHeader(key, value string) JSONOption {
	return func(r *jsonResponse) {
		r.header.Set(key, value)
	}
}

// JSON encodes v as the response body, unwrapped.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v, header: http.Header{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError encodes err as {"error": "...", "code": "..."} with a status
// derived from the error: HTTPError code, 422 for ValidationError, 400 for
// binding failures, 500 otherwise. Messages of unclassified errors are not exposed.
func JSONError(err error, opts ...JSONOption) Response {
	info := classifyError(err)
	body := ErrorBody{Error: info.Message, Code: info.Key}

	var valErr ValidationError
	if asValidation(err, &valErr) && len(valErr) > 0 {
		body.Details = make(map[string][]string, len(valErr))
		maps.Copy(body.Details, valErr)
	}

	r := &jsonResponse{status: info.StatusCode, body: body, header: http.Header{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
