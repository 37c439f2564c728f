// Package memory provides an in-process remote.Client.
//
// The server keeps domains and products in maps, assigns UUIDs on create and
// enforces the same integrity rules as a Starburst server: names are unique,
// products must point at an existing domain, and a domain cannot be deleted
// while it still owns products. Every call is appended to a call log so
// tests can assert on the order of remote mutations.
package memory

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/remote"
)

// Call is one entry in the call log.
type Call struct {
	Service string // "domains" or "products"
	Method  string
	ID      string // entity ID or name the call targeted
}

// String renders the call as service.Method(id).
func (c Call) String() string {
	return fmt.Sprintf("%s.%s(%s)", c.Service, c.Method, c.ID)
}

// Server is a thread-safe in-memory remote.
type Server struct {
	mu        sync.RWMutex
	domains   map[string]remote.Domain
	products  map[string]remote.DataProduct
	tags      map[string][]remote.Tag
	samples   map[string][]remote.SampleQuery
	published map[string]bool
	calls     []Call
	failures  map[string]error
	newID     func() string
}

// Option configures a Server.
type Option func(*Server)

// WithIDGenerator replaces the UUID generator, mostly for deterministic tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) {
		s.newID = fn
	}
}

// New creates an empty server.
func New(opts ...Option) *Server {
	s := &Server{
		domains:   make(map[string]remote.Domain),
		products:  make(map[string]remote.DataProduct),
		tags:      make(map[string][]remote.Tag),
		samples:   make(map[string][]remote.SampleQuery),
		published: make(map[string]bool),
		failures:  make(map[string]error),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Domains implements remote.Client.
func (s *Server) Domains() remote.DomainService {
	return &domainService{s: s}
}

// Products implements remote.Client.
func (s *Server) Products() remote.ProductService {
	return &productService{s: s}
}

// FailOn makes every subsequent call to method fail with err. Method is
// written as "service.Method", e.g. "domains.Delete". A nil err clears the
// failure.
func (s *Server) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, method)
		return
	}
	s.failures[method] = err
}

// Calls returns a copy of the call log.
func (s *Server) Calls() []Call {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.calls)
}

// Mutations returns the call log without read-only calls, rendered as
// strings.
func (s *Server) Mutations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{}
	for _, c := range s.calls {
		if readOnly(c.Method) {
			continue
		}
		out = append(out, c.String())
	}
	return out
}

// ResetCalls clears the call log.
func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// IsPublished reports whether the product was published since its last
// change.
func (s *Server) IsPublished(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.published[id]
}

// DomainID returns the ID of the domain with the given name.
func (s *Server) DomainID(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, d := range s.domains {
		if d.Name == name {
			return id, true
		}
	}
	return "", false
}

// ProductID returns the ID of the product with the given name.
func (s *Server) ProductID(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, p := range s.products {
		if p.Name == name {
			return id, true
		}
	}
	return "", false
}

// record appends a call and returns the injected failure for it, if any.
// Callers hold the write lock.
func (s *Server) record(service, method, id string) error {
	s.calls = append(s.calls, Call{Service: service, Method: method, ID: id})
	return s.failures[service+"."+method]
}

func readOnly(method string) bool {
	return method == "List" || method == "Tags" || method == "Samples"
}

func (s *Server) domainNameTaken(name, exceptID string) bool {
	for id, d := range s.domains {
		if id != exceptID && d.Name == name {
			return true
		}
	}
	return false
}

func (s *Server) productNameTaken(name, exceptID string) bool {
	for id, p := range s.products {
		if id != exceptID && p.Name == name {
			return true
		}
	}
	return false
}

func (s *Server) productsIn(domainID string) []string {
	var names []string
	for _, p := range s.products {
		if p.DataDomainID == domainID {
			names = append(names, p.Name)
		}
	}
	sort.Strings(names)
	return names
}

func alreadyExists(kind, name string) error {
	return fmt.Errorf("%s %q: %w", kind, name, errors.ErrAlreadyExists)
}

func sortedValues[T any](m map[string]T, name func(T) string) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(name(out[i]), name(out[j])) < 0
	})
	return out
}
