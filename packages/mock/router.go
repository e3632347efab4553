package mock

import (
	"net/http"
	"strings"
)

// Route binds a method and exact path to a handler
type Route struct {
	Method  string
	Path    string
	Name    string
	Handler http.HandlerFunc
}

// Router matches incoming requests to routes
type Router struct {
	routes []*Route
}

// NewRouter creates a new router
func NewRouter() *Router {
	return &Router{
		routes: make([]*Route, 0),
	}
}

// AddRoute adds a route to the router
func (r *Router) AddRoute(route *Route) {
	route.Path = normalizePath(route.Path)
	r.routes = append(r.routes, route)
}

// Match finds the route for method and path. When the path is known but
// the method is not, allowed lists the methods that would match.
func (r *Router) Match(method, path string) (route *Route, allowed []string) {
	path = normalizePath(path)

	for _, rt := range r.routes {
		if rt.Path != path {
			continue
		}
		if strings.EqualFold(rt.Method, method) {
			return rt, nil
		}
		allowed = append(allowed, rt.Method)
	}

	return nil, allowed
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}
