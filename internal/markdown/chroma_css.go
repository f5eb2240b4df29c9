package markdown

import (
	"bytes"
	"html/template"
	"strings"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	DefaultLightStyle = "github"
	DefaultDarkStyle  = "monokai"
)

var codeStyles sync.Map

// CodeStyles returns the stylesheet for highlighted code blocks, switching
// between the two chroma styles on prefers-color-scheme.
func CodeStyles(light string, dark string) template.CSS {
	key := light + "|" + dark
	if cached, ok := codeStyles.Load(key); ok {
		return cached.(template.CSS)
	}

	var out strings.Builder
	for _, scheme := range []struct {
		media string
		style string
	}{
		{media: "light", style: light},
		{media: "dark", style: dark},
	} {
		css := styleCSS(scheme.style)
		if css == "" {
			continue
		}
		out.WriteString("@media (prefers-color-scheme: " + scheme.media + ") {\n")
		out.WriteString(css)
		out.WriteString("}\n")
	}

	stylesheet := template.CSS(out.String())
	codeStyles.Store(key, stylesheet)
	return stylesheet
}

func styleCSS(name string) string {
	style := styles.Get(strings.TrimSpace(name))
	if style == nil {
		style = styles.Fallback
	}

	var buffer bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buffer, style); err != nil {
		return ""
	}
	return buffer.String()
}
