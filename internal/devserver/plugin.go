package devserver

// Plugin participates in the dev server's module pipeline. The server runs
// every hook in registration order and takes the first plugin that claims
// a request.
type Plugin interface {
	Name() string

	// ResolveID maps an import specifier to a loadable id. Not-ok passes
	// resolution on; the filesystem is the final fallback.
	ResolveID(id string) (resolved string, ok bool)

	// Load produces module source for an id previously resolved by this
	// plugin. Not-ok falls through.
	Load(resolved string) (body []byte, ok bool)

	// Transform rewrites module source read from disk before it is
	// served. Raw-mode requests never reach Transform.
	Transform(code []byte, path string) ([]byte, error)

	// TransformIndexHTML rewrites a served HTML document.
	TransformIndexHTML(doc string) string

	// ConfigureServer runs once at construction so the plugin can mount
	// routes and ready hooks.
	ConfigureServer(s *Server)
}
