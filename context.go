package skinmarket

import "context"

// Context is a request-scoped context passed between the executor,
// middleware and handlers. Extensions, such as x/auth, may add their own
// keys to enrich the context with specific data (for example the caller
// identity declared by the embedding process).
//
// There should exist two functions for every XYZ of type T that we want to
// support in Context:
//
//   WithXYZ(Context, T) Context
//   GetXYZ(Context) (val T, ok bool)
type Context context.Context
