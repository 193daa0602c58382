// Package meta implements spec.md §4.5's Meta engine: a tree-walk
// translator from a Meta block's sub-AST to Go source, evaluated by
// an embedded github.com/traefik/yaegi interpreter (the scripting
// engine spec.md declares external/out of scope; only the handshake —
// translate, evaluate, surface errors as a diagnostic — is specified).
// Host bindings are the "metahost" package, registered via the
// interpreter's Use, letting evaluated meta code call back into
// AST-construction functions that mutate the enclosing Module.
package meta
