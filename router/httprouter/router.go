package httprouter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	jshttprouter "github.com/julienschmidt/httprouter"

	"github.com/learnhub/learnhub/router"
)

// Implementation of the router interface
type Router struct {
	rt *jshttprouter.Router
}

func New() *Router {
	rt := jshttprouter.New()
	rt.SaveMatchedRoutePath = false
	return &Router{rt: rt}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.rt.ServeHTTP(w, req)
}

// Register mounts every chain under its "METHOD /path" endpoint. Malformed
// endpoints are a programming error and panic at startup.
func (r *Router) Register(chains router.Chains) {
	for endpoint, chain := range chains {
		method, path, ok := strings.Cut(endpoint, " ")
		if !ok || method == "" || !strings.HasPrefix(path, "/") {
			panic(fmt.Sprintf("invalid endpoint %q, want \"METHOD /path\"", endpoint))
		}
		r.rt.Handler(method, path, chain.Handler())
	}
}

// Implementation of the router/ParamGeter interface
type jsParams struct{}

func (js *jsParams) Get(ctx context.Context) router.Params {
	pms, _ := ctx.Value(jshttprouter.ParamsKey).(jshttprouter.Params)

	var params router.Params

	for _, v := range pms {
		p := router.Param{Key: v.Key, Value: v.Value}
		params = append(params, p)
	}

	return params
}

func NewParamGeter() router.ParamGeter {
	return &jsParams{}
}
