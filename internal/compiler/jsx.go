package compiler

import (
	"fmt"
	"strings"

	"github.com/baiwusanyu-c/vinspect/internal/source"
)

// The JSX annotator is a hand-written scanner rather than a full parser:
// no importable JSX grammar exists for Go, and all the transform needs is
// to find element-producing opening tags while never mistaking strings,
// comments, regexes, generics, or comparisons for markup. Scanning state
// is a stack of frames: plain code, JSX element children, and template
// literal text. The walk re-enters itself for braced spans inside opening
// tags, so elements reached through {...} expression children, `${...}`
// interpolations, and braced attribute values are all annotated.

const (
	frameCode = iota
	frameChildren
	frameTemplate
)

type jsxFrame struct {
	kind   int
	braces int // open plain braces inside a code frame
}

type jsxTag struct {
	closer      int // index of '>' (or of '/' for self-closing) in src
	end         int // index just past the tag
	selfClosing bool
}

type jsxAnnotator struct {
	src  string
	file string
	idx  *source.LineIndex
}

func compileJSX(src, file string) (string, error) {
	a := &jsxAnnotator{src: src, file: file, idx: source.NewLineIndex(src)}

	var out strings.Builder
	out.Grow(len(src) + 512)
	if err := a.walk(&out, 0, len(src), frameCode); err != nil {
		return "", fmt.Errorf("compiler: jsx %s: %w", file, err)
	}
	return out.String(), nil
}

// walk scans src[start:end) under an initial frame kind, copying text to
// out and rewriting every opening tag it finds. Ranges nested in braced
// spans are walked with the same index, so positions always refer to the
// whole file.
func (a *jsxAnnotator) walk(out *strings.Builder, start, end, kind int) error {
	src := a.src

	stack := []jsxFrame{{kind: kind}}
	top := func() *jsxFrame { return &stack[len(stack)-1] }
	pop := func() {
		if len(stack) > 1 {
			stack = stack[:len(stack)-1]
		}
	}

	i := start
	last := start // start of the pending passthrough span

	emit := func(tag jsxTag) error {
		out.WriteString(src[last:i])
		if err := a.writeTag(out, i, tag); err != nil {
			return err
		}
		last = tag.end
		i = tag.end
		if !tag.selfClosing {
			stack = append(stack, jsxFrame{kind: frameChildren})
		}
		return nil
	}

	for i < end {
		c := src[i]

		switch top().kind {
		case frameTemplate:
			switch {
			case c == '\\':
				i += 2
			case c == '`':
				pop()
				i++
			case c == '$' && i+1 < end && src[i+1] == '{':
				stack = append(stack, jsxFrame{kind: frameCode})
				i += 2
			default:
				i++
			}

		case frameChildren:
			switch {
			case c == '{':
				stack = append(stack, jsxFrame{kind: frameCode})
				i++
			case c == '<' && i+1 < end && src[i+1] == '/':
				// Closing tag ends this element's children.
				if gt := strings.IndexByte(src[i:], '>'); gt >= 0 {
					i += gt + 1
				} else {
					i = end
				}
				pop()
			case c == '<' && i+1 < end && src[i+1] == '>':
				stack = append(stack, jsxFrame{kind: frameChildren})
				i += 2
			case c == '<':
				if tag, ok := scanJSXOpenTag(src, i, true); ok {
					if err := emit(tag); err != nil {
						return err
					}
				} else {
					i++
				}
			default:
				i++
			}

		default: // frameCode
			switch c {
			case '"', '\'':
				j, err := skipJSString(src, i)
				if err != nil {
					return err
				}
				i = j
			case '`':
				stack = append(stack, jsxFrame{kind: frameTemplate})
				i++
			case '/':
				j, err := skipSlash(src, i)
				if err != nil {
					return err
				}
				i = j
			case '{':
				top().braces++
				i++
			case '}':
				if top().braces > 0 {
					top().braces--
				} else {
					pop()
				}
				i++
			case '<':
				if i+1 < end && src[i+1] == '>' && prevExpectsOperand(src, i) {
					stack = append(stack, jsxFrame{kind: frameChildren})
					i += 2
					continue
				}
				if tag, ok := scanJSXOpenTag(src, i, false); ok {
					if err := emit(tag); err != nil {
						return err
					}
					continue
				}
				i++
			default:
				i++
			}
		}
	}

	out.WriteString(src[last:end])
	return nil
}

// writeTag rewrites the opening tag at src[at:tag.end]. Braced spans inside
// the tag, attribute values and spreads alike, are walked again so elements
// passed through props get their own triples; the enclosing tag's triple
// lands before the closer once those spans are in place.
func (a *jsxAnnotator) writeTag(out *strings.Builder, at int, tag jsxTag) error {
	src := a.src
	line, col := a.idx.Position(at)
	loc := source.Location{File: a.file, Line: line, Column: col}

	var b strings.Builder
	j, last := at, at
	for j < tag.closer {
		switch src[j] {
		case '"', '\'':
			k, err := skipJSString(src, j)
			if err != nil {
				return err
			}
			j = k
		case '{':
			k, err := skipBraced(src, j)
			if err != nil {
				return err
			}
			b.WriteString(src[last : j+1])
			if err := a.walk(&b, j+1, k-1, frameCode); err != nil {
				return err
			}
			last = k - 1
			j = k
		default:
			j++
		}
	}
	b.WriteString(src[last:tag.closer])
	closer := b.Len()
	b.WriteString(src[tag.closer:tag.end])

	out.WriteString(injectAttrs(b.String(), closer, loc))
	return nil
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// Tag and attribute names additionally allow member access, namespaces,
// and dashes (web components).
func isTagNamePart(c byte) bool {
	return isIdentPart(c) || c == '.' || c == ':' || c == '-'
}

func isJSXSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// scanJSXOpenTag tries to read a JSX opening tag starting at src[at] == '<'.
// It bails out (false) on anything that is plausibly a comparison, a
// TypeScript generic, or otherwise not an element, in which case the text
// passes through untouched.
func scanJSXOpenTag(src string, at int, inChildren bool) (jsxTag, bool) {
	n := len(src)
	j := at + 1

	if j >= n || !isIdentStart(src[j]) {
		return jsxTag{}, false
	}
	if !inChildren && !prevExpectsOperand(src, at) {
		return jsxTag{}, false
	}

	for j < n && isTagNamePart(src[j]) {
		j++
	}

	firstAttr := true
	for {
		for j < n && isJSXSpace(src[j]) {
			j++
		}
		if j >= n {
			return jsxTag{}, false
		}

		switch c := src[j]; {
		case c == '>':
			return jsxTag{closer: j, end: j + 1}, true

		case c == '/' && j+1 < n && src[j+1] == '>':
			return jsxTag{closer: j, end: j + 2, selfClosing: true}, true

		case c == '{': // spread attribute
			k, err := skipBraced(src, j)
			if err != nil {
				return jsxTag{}, false
			}
			j = k
			firstAttr = false

		case isIdentStart(c):
			nameStart := j
			for j < n && isTagNamePart(src[j]) {
				j++
			}
			name := src[nameStart:j]
			for j < n && isJSXSpace(src[j]) {
				j++
			}
			if j < n && src[j] == '=' {
				j++
				for j < n && isJSXSpace(src[j]) {
					j++
				}
				if j >= n {
					return jsxTag{}, false
				}
				switch src[j] {
				case '"', '\'':
					k, err := skipJSString(src, j)
					if err != nil {
						return jsxTag{}, false
					}
					j = k
				case '{':
					k, err := skipBraced(src, j)
					if err != nil {
						return jsxTag{}, false
					}
					j = k
				default:
					return jsxTag{}, false
				}
			} else if firstAttr && name == "extends" {
				// <T extends U> is a generic parameter list, not an
				// element with a bare attribute.
				return jsxTag{}, false
			}
			firstAttr = false

		default:
			// ',' and friends: a generic parameter list, not an element.
			return jsxTag{}, false
		}
	}
}

// jsxKeywords are the keywords after which a '<' opens an element and a
// '/' opens a regex; after any other identifier they are comparison and
// division.
var jsxKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true,
	"of": true, "new": true, "delete": true, "void": true, "throw": true,
	"case": true, "do": true, "else": true, "yield": true, "await": true,
	"default": true,
}

// prevExpectsOperand reports whether the token preceding src[at] leaves the
// grammar expecting a value, which is where JSX elements and regex literals
// may begin.
func prevExpectsOperand(src string, at int) bool {
	k := at - 1
	for k >= 0 && isJSXSpace(src[k]) {
		k--
	}
	if k < 0 {
		return true
	}

	c := src[k]
	switch {
	case isIdentPart(c):
		start := k
		for start >= 0 && isIdentPart(src[start]) {
			start--
		}
		return jsxKeywords[src[start+1:k+1]]
	case c == ')' || c == ']' || c == '"' || c == '\'' || c == '`':
		return false
	case c == '>':
		return k >= 1 && src[k-1] == '=' // arrow function
	case c == '+' || c == '-':
		return !(k >= 1 && src[k-1] == c) // after ++/-- a value ended
	default:
		return true
	}
}

// skipJSString advances past a single- or double-quoted string literal.
func skipJSString(src string, at int) (int, error) {
	quote := src[at]
	n := len(src)
	for j := at + 1; j < n; j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j + 1, nil
		case '\n':
			return 0, fmt.Errorf("unterminated string literal at offset %d", at)
		}
	}
	return 0, fmt.Errorf("unterminated string literal at offset %d", at)
}

// skipSlash handles the three meanings of '/': comment, regex literal, or
// plain division.
func skipSlash(src string, at int) (int, error) {
	n := len(src)
	if at+1 >= n {
		return at + 1, nil
	}
	switch src[at+1] {
	case '/':
		if nl := strings.IndexByte(src[at:], '\n'); nl >= 0 {
			return at + nl, nil
		}
		return n, nil
	case '*':
		if end := strings.Index(src[at+2:], "*/"); end >= 0 {
			return at + 2 + end + 2, nil
		}
		return 0, fmt.Errorf("unterminated comment at offset %d", at)
	}
	if !prevExpectsOperand(src, at) {
		return at + 1, nil // division
	}
	return skipRegex(src, at)
}

// skipRegex advances past a regex literal, honoring escapes and character
// classes, then past trailing flags.
func skipRegex(src string, at int) (int, error) {
	n := len(src)
	inClass := false
	j := at + 1
	for j < n {
		switch src[j] {
		case '\\':
			j++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '\n':
			return 0, fmt.Errorf("unterminated regular expression at offset %d", at)
		case '/':
			if !inClass {
				j++
				for j < n && isIdentPart(src[j]) {
					j++
				}
				return j, nil
			}
		}
		j++
	}
	return 0, fmt.Errorf("unterminated regular expression at offset %d", at)
}

// skipBraced advances past a balanced {...}, crossing strings, template
// literals, and comments without interpreting them. Scanning only: callers
// decide whether the span gets walked or copied.
func skipBraced(src string, at int) (int, error) {
	n := len(src)
	depth := 0
	j := at
	for j < n {
		switch src[j] {
		case '{':
			depth++
			j++
		case '}':
			depth--
			j++
			if depth == 0 {
				return j, nil
			}
		case '"', '\'':
			k, err := skipJSString(src, j)
			if err != nil {
				return 0, err
			}
			j = k
		case '`':
			k, err := skipTemplateLiteral(src, j)
			if err != nil {
				return 0, err
			}
			j = k
		case '/':
			k, err := skipSlash(src, j)
			if err != nil {
				return 0, err
			}
			j = k
		default:
			j++
		}
	}
	return 0, fmt.Errorf("unterminated braced expression at offset %d", at)
}

// skipTemplateLiteral advances past a template literal, recursing into
// `${...}` interpolations.
func skipTemplateLiteral(src string, at int) (int, error) {
	n := len(src)
	j := at + 1
	for j < n {
		switch {
		case src[j] == '\\':
			j += 2
		case src[j] == '`':
			return j + 1, nil
		case src[j] == '$' && j+1 < n && src[j+1] == '{':
			k, err := skipBraced(src, j+1)
			if err != nil {
				return 0, err
			}
			j = k
		default:
			j++
		}
	}
	return 0, fmt.Errorf("unterminated template literal at offset %d", at)
}
