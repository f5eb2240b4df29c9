// Package markdown renders recurso descriptions. Raw HTML in the source is
// dropped; fenced code is highlighted with chroma classes.
package markdown

import (
	stdhtml "html"
	"html/template"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	md "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// EntityLinkScheme marks links to another recurso, e.g. [sala](recurso://12).
const EntityLinkScheme = "recurso://"

type Options struct {
	// RootURL makes absolute links to this front-end relative.
	RootURL string
	// EntityPath maps a recurso id to its page path.
	EntityPath func(id int64) string
}

const lastGoodBreakRatio = 0.8

var (
	codeBlockPattern  = regexp.MustCompile("(?s)```.*?```")
	imagePattern      = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	emphasisPattern   = regexp.MustCompile(`(\*\*\*|\*\*|\*|__|_|~~)(.*?)(\*\*\*|\*\*|\*|__|_|~~)`)
	headingPattern    = regexp.MustCompile(`(?m)^#{1,6}\s+(.*?)$`)
	inlineCodePattern = regexp.MustCompile("`(.*?)`")
	linkPattern       = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
	blockquotePattern = regexp.MustCompile(`(?m)^\s*>\s*(.*?)$`)
	listMarkerPattern = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
)

func ToHTML(input string, opts Options) template.HTML {
	if strings.TrimSpace(input) == "" {
		return template.HTML("")
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(input))
	rewriteLinks(doc, opts)

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags:          mdhtml.CommonFlags | mdhtml.SkipHTML,
		RenderNodeHook: renderNodeHook,
	})

	return template.HTML(md.Render(doc, renderer))
}

// Excerpt returns plain text of at most maxChars runes, cut on a word
// boundary when one is close to the limit.
func Excerpt(input string, maxChars int) string {
	if maxChars < 1 {
		return ""
	}

	clean := plainText(input)
	if utf8.RuneCountInString(clean) <= maxChars {
		return clean
	}

	runes := []rune(clean)
	truncateAt := maxChars
	minBreak := int(float64(maxChars) * lastGoodBreakRatio)
	for idx := maxChars - 1; idx >= minBreak; idx-- {
		if unicode.IsSpace(runes[idx]) {
			truncateAt = idx
			break
		}
	}

	truncated := strings.TrimSpace(string(runes[:truncateAt]))
	if truncated == "" {
		truncated = strings.TrimSpace(string(runes[:maxChars]))
	}
	return truncated + "..."
}

func plainText(input string) string {
	text := codeBlockPattern.ReplaceAllString(input, " ")
	text = imagePattern.ReplaceAllString(text, " ")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = emphasisPattern.ReplaceAllString(text, "$2")
	text = headingPattern.ReplaceAllString(text, "\n$1\n")
	text = inlineCodePattern.ReplaceAllString(text, "$1")
	text = blockquotePattern.ReplaceAllString(text, "$1")
	text = listMarkerPattern.ReplaceAllString(text, "")
	text = htmlTagPattern.ReplaceAllString(text, "")

	return strings.Join(strings.Fields(text), " ")
}

func rewriteLinks(doc ast.Node, opts Options) {
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}

		link, ok := node.(*ast.Link)
		if !ok {
			return ast.GoToNext
		}

		href, internal := resolveHref(string(link.Destination), opts)
		link.Destination = []byte(href)
		link.AdditionalAttributes = linkAttributes(link.AdditionalAttributes, internal)
		return ast.GoToNext
	})
}

func resolveHref(href string, opts Options) (string, bool) {
	if strings.HasPrefix(href, EntityLinkScheme) {
		id, err := strconv.ParseInt(strings.TrimPrefix(href, EntityLinkScheme), 10, 64)
		if err != nil || id < 1 || opts.EntityPath == nil {
			return "#", true
		}
		return opts.EntityPath(id), true
	}

	if strings.HasPrefix(href, "/") || strings.HasPrefix(href, "#") {
		return href, true
	}

	rootURL := strings.TrimRight(opts.RootURL, "/")
	if rootURL == "" || !strings.HasPrefix(href, rootURL) {
		return href, false
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return href, true
	}
	relative := parsed.Path
	if relative == "" {
		relative = "/"
	}
	if parsed.RawQuery != "" {
		relative += "?" + parsed.RawQuery
	}
	if parsed.Fragment != "" {
		relative += "#" + parsed.Fragment
	}
	return relative, true
}

func linkAttributes(existing []string, internal bool) []string {
	attrs := make([]string, 0, len(existing)+2)
	for _, attr := range existing {
		normalized := strings.ToLower(strings.TrimSpace(attr))
		if strings.HasPrefix(normalized, "target=") || strings.HasPrefix(normalized, "rel=") {
			continue
		}
		attrs = append(attrs, attr)
	}

	if !internal {
		attrs = append(attrs, `target="_blank"`, `rel="noopener noreferrer"`)
	}
	return attrs
}

func renderNodeHook(writer io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	if !entering {
		return ast.GoToNext, false
	}

	switch typed := node.(type) {
	case *ast.CodeBlock:
		renderCodeBlock(writer, typed)
		return ast.SkipChildren, true
	case *ast.Code:
		_, _ = io.WriteString(writer, `<code class="inline-code">`)
		_, _ = io.WriteString(writer, stdhtml.EscapeString(string(typed.Literal)))
		_, _ = io.WriteString(writer, `</code>`)
		return ast.SkipChildren, true
	default:
		return ast.GoToNext, false
	}
}

func renderCodeBlock(writer io.Writer, block *ast.CodeBlock) {
	code := string(block.Literal)
	iterator, err := pickLexer(block.Info, code).Tokenise(nil, code)
	if err == nil {
		formatter := chromahtml.New(chromahtml.WithClasses(true))
		if err = formatter.Format(writer, styles.Fallback, iterator); err == nil {
			return
		}
	}

	_, _ = io.WriteString(writer, `<pre class="chroma"><code>`)
	_, _ = io.WriteString(writer, stdhtml.EscapeString(code))
	_, _ = io.WriteString(writer, `</code></pre>`)
}

func pickLexer(info []byte, code string) chroma.Lexer {
	if fields := strings.Fields(string(info)); len(fields) > 0 {
		if lexer := lexers.Get(strings.ToLower(fields[0])); lexer != nil {
			return lexer
		}
	}
	if lexer := lexers.Analyse(code); lexer != nil {
		return lexer
	}
	return lexers.Fallback
}
