// Package vmod resolves the inspector's virtual module ids: the synthetic
// import paths through which the browser bootstrap and its configuration are
// served without existing in the project tree.
package vmod

import "strings"

// IDOptions is the virtual module that exports the resolved inspector
// options as a default JSON object.
const IDOptions = "virtual:vue-inspector-options"

// PathPrefix introduces a path-mapped virtual id whose suffix names an
// asset relative to the overlay install directory.
const PathPrefix = "virtual:vue-inspector-path:"

// Kind discriminates the recognized id schemes.
type Kind int

const (
	KindOptions Kind = iota
	KindPath
)

func (k Kind) String() string {
	if k == KindPath {
		return "path"
	}
	return "options"
}

// ParsedID is a classified virtual id. Suffix carries the path payload and
// is empty for the options module.
type ParsedID struct {
	Kind   Kind
	Suffix string
}

// Parse classifies id. Ids outside the inspector's namespace report ok
// false and fall through to the rest of the host's resolution pipeline.
func Parse(id string) (ParsedID, bool) {
	switch {
	case id == IDOptions:
		return ParsedID{Kind: KindOptions}, true
	case strings.HasPrefix(id, PathPrefix):
		return ParsedID{Kind: KindPath, Suffix: id[len(PathPrefix):]}, true
	}
	return ParsedID{}, false
}
