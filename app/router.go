package app

import (
	"fmt"
	"regexp"

	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
)

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/\-]+$`).MatchString

// Router maps message paths to handlers.
type Router struct {
	routes map[string]market.Handler
}

var _ market.Registry = (*Router)(nil)
var _ market.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]market.Handler),
	}
}

// Handle assigns the given handler to handle processing of every message
// of the same type as the given one. Registering twice for the same path
// or using an invalid path panics, as this is a misconfiguration that must
// surface at startup.
func (r *Router) Handle(m market.Msg, h market.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path, or nil.
func (r *Router) handler(path string) market.Handler {
	return r.routes[path]
}

// Check dispatches the transaction to the handler registered for its
// message path.
func (r *Router) Check(ctx market.Context, db market.KVStore, tx market.Tx) (*market.CheckResult, error) {
	path := market.GetPath(tx)
	h := r.handler(path)
	if h == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", path)
	}
	return h.Check(ctx, db, tx)
}

// Deliver dispatches the transaction to the handler registered for its
// message path.
func (r *Router) Deliver(ctx market.Context, db market.KVStore, tx market.Tx) (*market.DeliverResult, error) {
	path := market.GetPath(tx)
	h := r.handler(path)
	if h == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", path)
	}
	return h.Deliver(ctx, db, tx)
}
