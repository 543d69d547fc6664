package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Router is the client's Navigator: it records the page a dispatch moved
// the session to and tells the user.
type Router struct {
	out io.Writer

	mu      sync.Mutex
	current string
}

func NewRouter(out io.Writer) *Router {
	return &Router{out: out, current: "/resources"}
}

func (r *Router) Navigate(_ context.Context, route string) error {
	r.mu.Lock()
	r.current = route
	r.mu.Unlock()

	_, err := fmt.Fprintf(r.out, "Opening %s ...\n", route)
	return err
}

// Current is the last route navigated to.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
