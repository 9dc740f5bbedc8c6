package vmod

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Resolver maps virtual ids to loadable module bodies. Path ids are served
// from the overlay install directory, which lives alongside the binary's
// source rather than inside the served project, so asset loads bypass the
// host's project-root sandbox on purpose.
type Resolver struct {
	installDir string
	options    func() any
}

// New builds a Resolver rooted at the default install directory. options is
// invoked on every load of the options module so runtime fields stay fresh.
func New(options func() any) *Resolver {
	return NewWithDir(defaultInstallDir(), options)
}

// NewWithDir is New with an explicit install directory.
func NewWithDir(dir string, options func() any) *Resolver {
	return &Resolver{installDir: filepath.Clean(dir), options: options}
}

// InstallDir reports where path ids are served from.
func (r *Resolver) InstallDir() string { return r.installDir }

// ResolveID maps a public virtual id to its loadable form: the options id
// resolves to itself, a path id to an absolute file under the install
// directory. Suffixes that escape the install directory are rejected.
func (r *Resolver) ResolveID(id string) (string, bool) {
	p, ok := Parse(id)
	if !ok {
		return "", false
	}
	if p.Kind == KindOptions {
		return IDOptions, true
	}
	full := filepath.Join(r.installDir, filepath.FromSlash(p.Suffix))
	if !strings.HasPrefix(full, r.installDir+string(filepath.Separator)) {
		log.Printf("vmod: rejecting asset id %q: escapes install dir", id)
		return "", false
	}
	return full, true
}

// Load produces the module body for an id previously returned by ResolveID.
// A missing asset is logged and reported as not ok; the server keeps
// running with a degraded overlay rather than failing the page.
func (r *Resolver) Load(resolved string) ([]byte, bool) {
	if resolved == IDOptions {
		body, err := json.Marshal(r.options())
		if err != nil {
			log.Printf("vmod: serializing inspector options: %v", err)
			return nil, false
		}
		out := make([]byte, 0, len("export default ")+len(body)+1)
		out = append(out, "export default "...)
		out = append(out, body...)
		out = append(out, '\n')
		return out, true
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		log.Printf("vmod: loading overlay asset %s: %v", resolved, err)
		return nil, false
	}
	return data, true
}

// defaultInstallDir locates the client asset folder relative to this source
// file, preferring the built dist output and falling back to the checkout's
// source assets.
func defaultInstallDir() string {
	_, self, _, ok := runtime.Caller(0)
	if !ok {
		return "client"
	}
	base := filepath.Join(filepath.Dir(self), "..", "..", "client")
	dist := filepath.Join(base, "dist")
	if info, err := os.Stat(dist); err == nil && info.IsDir() {
		return dist
	}
	return base
}
