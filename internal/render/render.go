// Package render turns admin-supplied hero copy into HTML safe to embed in
// the landing page.
package render

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type HeroRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *HeroRenderer {
	md := goldmark.New(
		goldmark.WithRendererOptions(html.WithUnsafe()),
		goldmark.WithExtensions(extension.Strikethrough),
	)
	return &HeroRenderer{md: md, policy: bluemonday.UGCPolicy()}
}

// HeroHTML renders markdown and sanitizes the result. On a render failure the
// escaped source text is returned; the landing payload never carries raw
// admin input.
func (r *HeroRenderer) HeroHTML(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return r.policy.Sanitize(text)
	}
	return r.policy.Sanitize(strings.TrimSpace(buf.String()))
}
