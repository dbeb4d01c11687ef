package iframe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimension_CSS(t *testing.T) {
	tests := []struct {
		in   Dimension
		want string
	}{
		{Px(400), "400px"},
		{Px(12.5), "12.5px"},
		{"300", "300px"},
		{"auto", "auto"},
		{"50%", "50%"},
		{"20rem", "20rem"},
		{"Infinity", "Infinity"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.CSS(), string(tt.in))
	}
}

func TestDimension_UnmarshalJSON(t *testing.T) {
	var spec Spec
	require.NoError(t, json.Unmarshal([]byte(`{"width": 400, "height": "auto"}`), &spec))
	assert.Equal(t, Dimension("400"), spec.Width)
	assert.Equal(t, Dimension("auto"), spec.Height)

	assert.Error(t, json.Unmarshal([]byte(`{"width": true}`), &spec))
}

func TestSpec_Style(t *testing.T) {
	spec := Spec{Width: Px(400), Height: "auto"}
	style := spec.Style()
	assert.Contains(t, style, "width: 400px")
	assert.Contains(t, style, "height: auto")
	assert.Equal(t, "height: auto; width: 400px;", style)
}

func TestRenderString(t *testing.T) {
	spec := Spec{
		Width:     Px(560),
		Height:    Px(315),
		Src:       "https://example.com/embed",
		PageTitle: "Example Page",
		PageIcon: Picture{
			Sources: []Source{
				{Srcset: "/icon.avif 1x", Type: "image/avif"},
				{Srcset: "/icon.webp 1x", Type: "image/webp"},
			},
			Image: Image{
				Src: "/icon.png",
				Attributes: map[string]string{
					"width":   "24",
					"height":  "24",
					"loading": "eager",
					"class":   "ignored",
				},
			},
		},
	}

	want := `<div class="iframe-replacement-container" data-iframeurl="https://example.com/embed" style="height: 315px; width: 560px;">` +
		`<picture>` +
		`<source srcset="/icon.avif 1x" type="image/avif"/>` +
		`<source srcset="/icon.webp 1x" type="image/webp"/>` +
		`<img src="/icon.png" height="24" width="24" class="iframe-replacement-icon" alt="" loading="lazy" decoding="async" data-nozoom="true"/>` +
		`</picture>` +
		`<p class="iframe-replacement-title"><span class="visually-hidden">An embedded webpage:</span>Example Page</p>` +
		`<button class="iframe-replacement-button">Run embed</button>` +
		`</div>`
	assert.Equal(t, want, RenderString(spec))
}

func TestRenderString_EscapesTitle(t *testing.T) {
	out := RenderString(Spec{Width: "100%", Height: "auto", PageTitle: `<script>"x"</script>`})
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>")
}
