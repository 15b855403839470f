// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/critiq/internal/domain/types"
)

// ExamplesDependencies defines the interface for example listing.
type ExamplesDependencies interface {
	Examples(ctx context.Context) ([]types.Example, error)
}

// ExamplesHandler handles curated example requests.
type ExamplesHandler struct {
	deps ExamplesDependencies
}

// NewExamplesHandler creates a new examples handler.
func NewExamplesHandler(deps ExamplesDependencies) *ExamplesHandler {
	return &ExamplesHandler{deps: deps}
}

// HandleGetExamples handles GET /examples requests.
func (h *ExamplesHandler) HandleGetExamples(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_examples"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	examples, err := h.deps.Examples(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, examples)
}
