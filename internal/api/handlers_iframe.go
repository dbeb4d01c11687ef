package api

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/dgallion1/contentkit/internal/iframe"
)

type placeholderRequest struct {
	iframe.Spec
}

func (p placeholderRequest) Validate() error {
	return validation.ValidateStruct(&p.Spec,
		validation.Field(&p.Spec.Src, validation.Required, is.URL),
		validation.Field(&p.Spec.Width, validation.Required),
		validation.Field(&p.Spec.Height, validation.Required),
		validation.Field(&p.Spec.PageIcon, validation.By(hasIconSource)),
	)
}

func hasIconSource(value any) error {
	pic, _ := value.(iframe.Picture)
	if pic.Image.Src == "" {
		return validation.NewError("validation_icon_src", "image src is required")
	}
	return nil
}

// handleIframePlaceholder renders the placeholder shown before an embed is
// activated. ?format=json wraps the markup in a JSON object.
func (s *Server) handleIframePlaceholder(w http.ResponseWriter, r *http.Request) {
	var req placeholderRequest
	if !decodeJSON(w, r, 1<<20, &req.Spec) {
		return
	}
	if err := req.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	markup := iframe.RenderString(req.Spec)
	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, map[string]any{
			"html":  markup,
			"style": req.Spec.Style(),
		})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(markup))
}
