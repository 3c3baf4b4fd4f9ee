package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

// DataStarQueryParam carries DataStar signals on GET requests.
const DataStarQueryParam = "datastar"

// PatchPrepend and PatchInner are the merge modes used for toasts and fragments.
const (
	PatchPrepend = datastar.ElementPatchModePrepend
	PatchInner   = datastar.ElementPatchModeInner
)

// IsDataStar reports whether r was sent by the DataStar client: it asks for an
// event stream, carries signals in the query, or posts a DataStar payload.
// Such requests receive SSE events instead of documents or 3xx responses.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		return true
	}
	if r.URL.Query().Has(DataStarQueryParam) {
		return true
	}
	return strings.Contains(r.Header.Get("Content-Type"), "application/x-datastar")
}

// NewSSE starts an event stream on w.
func NewSSE(w http.ResponseWriter, r *http.Request) *datastar.ServerSentEventGenerator {
	return datastar.NewSSE(w, r)
}
