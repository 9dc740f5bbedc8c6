package compiler

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/baiwusanyu-c/vinspect/internal/source"
)

// Tags inside a template block that never emit a DOM element of their own:
// nested <template> wrappers are fragments, script/style are not markup.
var excludedTemplateTags = map[string]bool{
	"template": true,
	"script":   true,
	"style":    true,
}

// compileTemplate annotates the markup block of a single-file component.
// The file is tokenized under the HTML grammar; every token is passed
// through byte-for-byte except opening tags inside the top-level
// <template> block, which get the location triple spliced in before the
// tag closer. Blocks declared with a non-HTML lang are left untouched.
func compileTemplate(src, file string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(src))
	idx := source.NewLineIndex(src)

	var out strings.Builder
	out.Grow(len(src) + 512)

	offset := 0        // byte offset of the current token's first byte
	templateDepth := 0 // how many <template> elements are open
	foreign := false   // top-level template uses a non-HTML grammar

	for {
		tt := z.Next()

		// Raw must be copied before TagName/TagAttr, which fold case in
		// the shared buffer; component tags keep their casing this way.
		raw := string(z.Raw())
		tokStart := offset
		offset += len(raw)

		switch tt {
		case html.ErrorToken:
			out.WriteString(raw)
			if err := z.Err(); err != io.EOF {
				return "", fmt.Errorf("compiler: template %s: %w", file, err)
			}
			return out.String(), nil

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)

			inTemplate := templateDepth > 0

			if tag == "template" && !inTemplate && tt == html.StartTagToken {
				foreign = hasNonHTMLLang(z, hasAttr)
			}

			if inTemplate && !foreign && !excludedTemplateTags[tag] {
				line, col := idx.Position(tokStart)
				loc := source.Location{File: file, Line: line, Column: col}
				out.WriteString(injectAttrs(raw, closerIndex(raw, tt), loc))
			} else {
				out.WriteString(raw)
			}

			if tag == "template" && tt == html.StartTagToken {
				templateDepth++
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "template" && templateDepth > 0 {
				templateDepth--
				if templateDepth == 0 {
					foreign = false
				}
			}
			out.WriteString(raw)

		default:
			// Text, comments, doctypes: untouched.
			out.WriteString(raw)
		}
	}
}

// hasNonHTMLLang reports whether the current tag carries a lang attribute
// naming a grammar other than HTML (pug and friends).
func hasNonHTMLLang(z *html.Tokenizer, hasAttr bool) bool {
	for hasAttr {
		key, val, more := z.TagAttr()
		if string(key) == "lang" {
			lang := strings.ToLower(string(val))
			return lang != "" && lang != "html"
		}
		hasAttr = more
	}
	return false
}

// closerIndex locates the tag closer inside a raw opening tag. The token
// type decides between ">" and "/>": an unquoted attribute value may end in
// a slash without making the tag self-closing.
func closerIndex(raw string, tt html.TokenType) int {
	if tt == html.SelfClosingTagToken && strings.HasSuffix(raw, "/>") {
		return len(raw) - 2
	}
	return len(raw) - 1
}
