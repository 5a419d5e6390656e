package router

import (
	"context"
	"net/http"
)

// Param is a single URL parameter, like ":courseId" in a route pattern.
type Param struct {
	Key   string
	Value string
}

type Params []Param

// ByName returns the value of the first parameter with the given key, or the
// empty string.
func (ps Params) ByName(key string) string {
	for _, p := range ps {
		if p.Key == key {
			return p.Value
		}
	}
	return ""
}

// ParamGeter extracts the matched URL parameters from a request context. The
// concrete router implementation decides how params travel in the context.
type ParamGeter interface {
	Get(ctx context.Context) Params
}

// Router registers endpoint chains and serves requests. Endpoints use the
// "METHOD /path" form, with path parameters in the concrete router's syntax.
type Router interface {
	http.Handler
	Register(chains Chains)
}
