// Package compiler rewrites component source so that every element a file
// renders carries its own origin as inert data attributes. The transform is
// pure: the same source text and file id always produce the same output.
package compiler

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/baiwusanyu-c/vinspect/internal/source"
)

// The three attributes attached to every element-producing node.
const (
	AttrFile   = "data-v-inspector-file"
	AttrLine   = "data-v-inspector-line"
	AttrColumn = "data-v-inspector-column"
)

// Kind selects the grammar a file is compiled under.
type Kind int

const (
	KindNone Kind = iota
	KindTemplate
	KindJSX
)

func (k Kind) String() string {
	switch k {
	case KindTemplate:
		return "template"
	case KindJSX:
		return "jsx"
	default:
		return "none"
	}
}

// Eligible decides whether a file participates in location injection and
// under which grammar. Raw-mode requests are never compiled.
func Eligible(path string, raw bool) (Kind, bool) {
	if raw {
		return KindNone, false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsx", ".tsx":
		return KindJSX, true
	case ".vue":
		return KindTemplate, true
	}
	return KindNone, false
}

// Compile transforms src, attaching file/line/column attributes to every
// element-producing node. file is embedded verbatim into the emitted
// attributes; callers pass the absolute path of the source on disk.
// Annotations from an earlier compile are stripped from the whole source
// before the grammar runs, so line and column numbers always derive from
// the unannotated text and compiling compiled output reproduces it byte
// for byte. Parse failures propagate unmodified; output is valid source
// in the same grammar as the input.
func Compile(src, file string, kind Kind) (string, error) {
	src = stripInspectorAttrs(src)
	switch kind {
	case KindTemplate:
		return compileTemplate(src, file)
	case KindJSX:
		return compileJSX(src, file)
	default:
		return "", fmt.Errorf("compiler: unknown kind %d", kind)
	}
}

// CountAnnotations reports how many elements in compiled output carry a
// location triple.
func CountAnnotations(code string) int {
	return strings.Count(code, AttrFile+`="`)
}

// inspectorAttrRe matches one injected location triple together with the
// single space that precedes it, exactly as injectAttrs emits it. Removing
// every match restores the text injectAttrs was given, which is what makes
// annotations overwrite instead of duplicate.
var inspectorAttrRe = regexp.MustCompile(
	` ` + AttrFile + `="[^"]*" ` + AttrLine + `="[0-9]+" ` + AttrColumn + `="[0-9]+"`)

func stripInspectorAttrs(src string) string {
	return inspectorAttrRe.ReplaceAllString(src, "")
}

var attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;", "<", "&lt;")

func formatAttrs(loc source.Location) string {
	return fmt.Sprintf(`%s="%s" %s="%d" %s="%d"`,
		AttrFile, attrEscaper.Replace(loc.File), AttrLine, loc.Line, AttrColumn, loc.Column)
}

// injectAttrs rewrites one opening tag, inserting the location triple after
// the last author-written token. Whitespace the author left before the tag
// closer at tag[closerIdx:] moves after the triple, so stripping the triple
// restores the original tag byte for byte.
func injectAttrs(tag string, closerIdx int, loc source.Location) string {
	trimmed := strings.TrimRight(tag[:closerIdx], " \t\r\n")
	ws := tag[len(trimmed):closerIdx]
	return trimmed + " " + formatAttrs(loc) + ws + tag[closerIdx:]
}
