// Package inspector assembles the click-to-source inspector as a dev server
// plugin: it annotates component sources with their origin, serves the
// overlay's virtual modules, and mounts the editor bridge and overlay
// websocket routes.
package inspector

import (
	"bytes"
	"log"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/baiwusanyu-c/vinspect/internal/compiler"
	"github.com/baiwusanyu-c/vinspect/internal/config"
	"github.com/baiwusanyu-c/vinspect/internal/devserver"
	"github.com/baiwusanyu-c/vinspect/internal/editor"
	"github.com/baiwusanyu-c/vinspect/internal/overlay"
	"github.com/baiwusanyu-c/vinspect/internal/vmod"
)

// bootstrapSrc is the browser-facing URL of the overlay bootstrap module.
const bootstrapSrc = "/@id/" + vmod.PathPrefix + "load.js"

const (
	scriptTag       = `<script type="module" src="` + bootstrapSrc + `"></script>`
	bootstrapImport = `import "` + bootstrapSrc + `";`
)

// Plugin wires the inspector into a dev server.
type Plugin struct {
	cfg      *config.Config
	appendTo string
	resolver *vmod.Resolver
	launcher *editor.Launcher
	hub      *overlay.Hub
}

var _ devserver.Plugin = (*Plugin)(nil)

// New builds the plugin from resolved configuration. The launcher serves
// both the overlay's click-to-open path and the HTTP endpoint; the hub owns
// the page sessions.
func New(cfg *config.Config, launcher *editor.Launcher, hub *overlay.Hub) *Plugin {
	p := &Plugin{
		cfg:      cfg,
		appendTo: cfg.AppendTo,
		launcher: launcher,
		hub:      hub,
	}
	p.resolver = vmod.New(p.options)
	return p
}

func (p *Plugin) Name() string { return "vue-inspector" }

// clientOptions is the payload of the options virtual module. Field names
// are the client script's property names.
type clientOptions struct {
	Vue                    int    `json:"vue"`
	Enabled                bool   `json:"enabled"`
	ToggleComboKey         string `json:"toggleComboKey"`
	ToggleButtonVisibility string `json:"toggleButtonVisibility"`
	ToggleButtonPos        string `json:"toggleButtonPos"`
	Base                   string `json:"base"`
	Port                   int    `json:"port"`
	WSPath                 string `json:"wsPath"`
	OpenPath               string `json:"openPath"`
}

// options is re-evaluated on every load of the options module so the client
// always sees the server's current view. An explicitly disabled combo is
// sent as the empty string; the client installs no key listener for it.
func (p *Plugin) options() any {
	combo := p.cfg.ToggleComboKey
	if overlay.Disabled(combo) {
		combo = ""
	}
	return clientOptions{
		Vue:                    p.cfg.Vue,
		Enabled:                p.cfg.Enabled,
		ToggleComboKey:         combo,
		ToggleButtonVisibility: string(p.cfg.ToggleButtonVisibility),
		ToggleButtonPos:        string(p.cfg.ToggleButtonPos),
		Base:                   "/",
		Port:                   p.cfg.Port,
		WSPath:                 overlay.WSPath,
		OpenPath:               editor.OpenPath,
	}
}

// ResolveID claims the inspector's virtual module ids.
func (p *Plugin) ResolveID(id string) (string, bool) {
	return p.resolver.ResolveID(id)
}

// Load produces the options module or an overlay asset.
func (p *Plugin) Load(resolved string) ([]byte, bool) {
	return p.resolver.Load(resolved)
}

// Transform annotates eligible component sources with location attributes
// and, when an append target is configured, appends the bootstrap import to
// matching files.
func (p *Plugin) Transform(code []byte, path string) ([]byte, error) {
	if kind, ok := compiler.Eligible(path, false); ok {
		out, err := compiler.Compile(string(code), path, kind)
		if err != nil {
			return nil, err
		}
		code = []byte(out)
	}
	if p.appendTarget(path) && !bytes.Contains(code, []byte(bootstrapImport)) {
		code = append(code, []byte("\n"+bootstrapImport+"\n")...)
	}
	return code, nil
}

// appendTarget reports whether the bootstrap import belongs in this file:
// a literal value matches as a path suffix, a value with glob
// metacharacters matches as a doublestar pattern.
func (p *Plugin) appendTarget(path string) bool {
	if p.appendTo == "" {
		return false
	}
	slash := filepath.ToSlash(path)
	if strings.ContainsAny(p.appendTo, "*?[{") {
		ok, err := doublestar.Match(p.appendTo, slash)
		if err != nil {
			log.Printf("inspector: bad append_to pattern %q: %v", p.appendTo, err)
			return false
		}
		return ok
	}
	return strings.HasSuffix(slash, p.appendTo)
}

var (
	headOpenRe  = regexp.MustCompile(`(?i)<head[^>]*>`)
	bodyCloseRe = regexp.MustCompile(`(?i)</body>`)
)

// TransformIndexHTML injects the bootstrap script tag into served HTML.
// With an append target configured the import travels inside the module
// graph instead and documents pass through untouched. Exactly one of the
// two mechanisms fires per build.
func (p *Plugin) TransformIndexHTML(doc string) string {
	if p.appendTo != "" {
		return doc
	}
	if strings.Contains(doc, bootstrapSrc) {
		return doc
	}
	if m := headOpenRe.FindStringIndex(doc); m != nil {
		return doc[:m[1]] + "\n    " + scriptTag + doc[m[1]:]
	}
	if m := bodyCloseRe.FindStringIndex(doc); m != nil {
		return doc[:m[0]] + scriptTag + "\n" + doc[m[0]:]
	}
	return doc + "\n" + scriptTag + "\n"
}

// ConfigureServer mounts the editor bridge and the overlay websocket, and
// hooks the ready banner. Both routes sit outside the server's timeout
// group; the websocket stays open for the page's lifetime.
func (p *Plugin) ConfigureServer(s *devserver.Server) {
	editor.RegisterRoutes(s.Router(), p.launcher)
	p.hub.RegisterRoutes(s.Router())
	s.OnReady(p.printBanner)
}
