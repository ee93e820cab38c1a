package renderer

import (
	"github.com/unrolled/render"
)

// New builds the JSON renderer shared by all handlers.
func New(indent bool) *render.Render {
	return render.New(render.Options{
		IndentJSON:    indent,
		UnEscapeHTML:  true,
		StreamingJSON: false,
	})
}
