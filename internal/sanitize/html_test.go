package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlogHTML(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		contains []string
		excludes []string
	}{
		{
			name:     "keeps formatting",
			in:       `<h2>Ruta</h2><p>Visita <strong>Cómbita</strong> y <em>Tuta</em>.</p>`,
			contains: []string{"<h2>Ruta</h2>", "<strong>Cómbita</strong>", "<em>Tuta</em>"},
		},
		{
			name:     "drops scripts",
			in:       `<p>hola</p><script>alert(1)</script>`,
			contains: []string{"<p>hola</p>"},
			excludes: []string{"<script", "alert(1)"},
		},
		{
			name:     "drops event handlers",
			in:       `<p onclick="robar()">clic</p>`,
			contains: []string{"clic"},
			excludes: []string{"onclick", "robar"},
		},
		{
			name:     "drops javascript links",
			in:       `<a href="javascript:alert(1)">x</a><a href="https://combita.gov.co">sitio</a>`,
			contains: []string{`href="https://combita.gov.co"`},
			excludes: []string{"javascript:"},
		},
		{
			name:     "keeps images and allowed styles",
			in:       `<img src="/uploads/blog/a.png" alt="plaza"><span style="color: red">rojo</span>`,
			contains: []string{`src="/uploads/blog/a.png"`, `alt="plaza"`, "color: red", "rojo"},
		},
		{
			name:     "drops iframes",
			in:       `<iframe src="https://evil.example"></iframe><p>ok</p>`,
			contains: []string{"<p>ok</p>"},
			excludes: []string{"iframe"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BlogHTML(tt.in)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, got, s)
			}
		})
	}
}
