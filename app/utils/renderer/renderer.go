package renderer

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-api/app/utils/apperror"
	"github.com/unrolled/render"
)

const internalErrorMessage = "Internal Server Error"

// Renderer writes JSON responses and turns errors into the API error body.
type Renderer struct {
	*render.Render
	exposeInternal bool
}

// New returns a JSON renderer. With debug set, unclassified errors carry
// their real message instead of a generic one.
func New(debug bool) *Renderer {
	return &Renderer{
		Render: render.New(render.Options{
			IndentJSON:    debug,
			UnEscapeHTML:  true,
			IsDevelopment: debug,
		}),
		exposeInternal: debug,
	}
}

type errorBody struct {
	Error  string            `json:"error"`
	Code   int               `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Error writes err as {error, code[, fields]} with the status of its kind.
func (r *Renderer) Error(w http.ResponseWriter, err error) {
	kind := apperror.KindOf(err)
	status := apperror.HTTPStatus(kind)

	body := errorBody{Code: status}
	if appErr, ok := apperror.As(err); ok && kind != apperror.KindInternal {
		body.Error = appErr.Message
		body.Fields = appErr.Fields
	} else {
		log.Printf("Renderer.Error: %v", err)
		body.Error = internalErrorMessage
		if r.exposeInternal {
			body.Error = err.Error()
		}
	}

	if jsonErr := r.JSON(w, status, body); jsonErr != nil {
		log.Printf("Renderer.Error: failed to write error response: %v", jsonErr)
	}
}
