package acquire

import "fmt"

// Registry maps a sport identifier to its client and remembers the order in
// which sports were registered.
type Registry struct {
	order   []string
	clients map[string]*Client
}

// NewRegistry creates a registry holding the given clients
func NewRegistry(clients ...*Client) *Registry {
	r := &Registry{clients: make(map[string]*Client)}
	for _, c := range clients {
		r.Register(c)
	}
	return r
}

// Register adds a client under its sport tag, replacing an existing one
func (r *Registry) Register(c *Client) {
	sport := c.Sport()
	if _, ok := r.clients[sport]; !ok {
		r.order = append(r.order, sport)
	}
	r.clients[sport] = c
}

// Client retrieves a client by sport
func (r *Registry) Client(sport string) (*Client, error) {
	c, ok := r.clients[sport]
	if !ok {
		return nil, fmt.Errorf("no client registered for sport %q", sport)
	}
	return c, nil
}

// Sports returns the registered sports in registration order
func (r *Registry) Sports() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered sports
func (r *Registry) Len() int {
	return len(r.order)
}
