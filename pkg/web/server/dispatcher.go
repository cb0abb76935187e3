package server

import (
	"bytes"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tigerroll/pipelines/pkg/web/core/controller"
	"github.com/tigerroll/pipelines/pkg/web/core/view"
	"github.com/tigerroll/pipelines/pkg/web/support/util/exception"
	"github.com/tigerroll/pipelines/pkg/web/support/util/logger"
)

// unmatchedRoute labels requests that matched no mapping (404 and 405).
const unmatchedRoute = "unmatched"

type registeredRoute struct {
	route  *mux.Route
	method string
}

// Dispatcher routes requests to controller handlers and renders the views they name.
// Routes are registered during startup only; afterwards the Dispatcher is read-only.
type Dispatcher struct {
	router   *mux.Router
	resolver view.Resolver
	routes   []registeredRoute
	seen     map[string]bool
}

// NewDispatcher creates a Dispatcher that renders views through resolver.
func NewDispatcher(resolver view.Resolver) *Dispatcher {
	d := &Dispatcher{
		router:   mux.NewRouter(),
		resolver: resolver,
		seen:     make(map[string]bool),
	}
	d.router.NotFoundHandler = http.HandlerFunc(d.notFound)
	d.router.MethodNotAllowedHandler = http.HandlerFunc(d.methodNotAllowed)
	return d
}

// Register adds every mapping of c.
func (d *Dispatcher) Register(c controller.Controller) error {
	for _, m := range c.Mappings() {
		if err := d.Handle(m.Method, m.Path, d.viewHandler(m.Handler)); err != nil {
			return err
		}
		logger.Infof("Mapped \"%s %s\" onto %T", m.Method, m.Path, c)
	}
	return nil
}

// Handle registers a raw handler for method and path. A GET mapping also answers HEAD.
// Registering the same method and path twice fails with exception.ErrDuplicateMapping.
func (d *Dispatcher) Handle(method, path string, h http.Handler) error {
	methods := []string{method}
	if method == http.MethodGet {
		methods = append(methods, http.MethodHead)
	}
	for _, m := range methods {
		if key := m + " " + path; d.seen[key] {
			return exception.NewAppErrorf(moduleName, "ambiguous mapping \"%s\"", key, exception.ErrDuplicateMapping)
		}
	}

	route := d.router.Handle(path, h).Methods(methods...)
	for _, m := range methods {
		d.seen[m+" "+path] = true
		d.routes = append(d.routes, registeredRoute{route: route, method: m})
	}
	return nil
}

// ServeHTTP implements http.Handler.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.router.ServeHTTP(w, r)
}

// RouteLabel returns the path template of the mapping r matches, or "unmatched".
// It keeps metric and span names bounded regardless of the requested URL.
func (d *Dispatcher) RouteLabel(r *http.Request) string {
	var match mux.RouteMatch
	if d.router.Match(r, &match) && match.MatchErr == nil && match.Route != nil {
		if tpl, err := match.Route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return unmatchedRoute
}

// allowedMethods lists the methods registered for the path of r, plus OPTIONS.
// It is empty when no mapping matches the path.
func (d *Dispatcher) allowedMethods(r *http.Request) []string {
	set := make(map[string]bool)
	for _, rr := range d.routes {
		candidate := r.Clone(r.Context())
		candidate.Method = rr.method
		var match mux.RouteMatch
		if rr.route.Match(candidate, &match) {
			set[rr.method] = true
		}
	}
	if len(set) == 0 {
		return nil
	}
	set[http.MethodOptions] = true
	methods := make([]string, 0, len(set))
	for m := range set {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

func (d *Dispatcher) viewHandler(h controller.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mv := h(r)

		v, err := d.resolver.Resolve(mv.View)
		if err != nil {
			logger.Errorf("Request %s: %v", RequestIDFromContext(r.Context()), err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		// Render fully before writing so a template error can still produce a 500.
		var buf bytes.Buffer
		if err := v.Render(&buf, mv.Model); err != nil {
			logger.Errorf("Request %s: template execution error for view '%s': %v", RequestIDFromContext(r.Context()), v.Name(), err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		if r.Method != http.MethodHead {
			_, _ = buf.WriteTo(w)
		}
	})
}

func (d *Dispatcher) notFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "404 page not found", http.StatusNotFound)
}

// methodNotAllowed answers a known path requested with an unmapped method.
// OPTIONS gets 204 listing the allowed methods; everything else gets 405.
func (d *Dispatcher) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	for _, m := range d.allowedMethods(r) {
		w.Header().Add("Allow", m)
	}
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Error(w, "405 method not allowed", http.StatusMethodNotAllowed)
}
