package lookups

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to mount the component. It is
// satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// RegisterRoutes mounts the component under basePath and returns the
// pattern used.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("lookups: missing mux")
	}
	base := strings.TrimRight(strings.TrimSpace(basePath), "/")
	if base == "" {
		mux.Handle("/", c.Handler())
		return "/", nil
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	pattern := base + "/"
	mux.Handle(pattern, http.StripPrefix(base, c.Handler()))
	return pattern, nil
}
