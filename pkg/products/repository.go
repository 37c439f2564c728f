// Package products defines the declarative data product catalog model:
// domains, data products and their datasets, and the Repository that holds
// a complete snapshot of either the local files or the remote catalog.
//
// Every value entering a Repository is normalized, so an empty string, slice,
// or map is indistinguishable from an absent one in diffing, persistence, and
// remote payloads.
package products

import (
	"sort"
)

// Repository is an unordered set of domains and products.
type Repository struct {
	Domains  []Domain  `json:"domains" yaml:"domains"`
	Products []Product `json:"products" yaml:"products"`
}

// NewRepository builds a repository from normalized copies of the inputs.
func NewRepository(domains []Domain, products []Product) *Repository {
	repo := &Repository{
		Domains:  make([]Domain, 0, len(domains)),
		Products: make([]Product, 0, len(products)),
	}
	for _, d := range domains {
		repo.Domains = append(repo.Domains, d.Normalize())
	}
	for _, p := range products {
		repo.Products = append(repo.Products, p.Normalize())
	}
	return repo
}

// Domain returns the domain with the given name.
func (r *Repository) Domain(name string) (Domain, bool) {
	for _, d := range r.Domains {
		if d.Name == name {
			return d, true
		}
	}
	return Domain{}, false
}

// Product returns the product with the given name.
func (r *Repository) Product(name string) (Product, bool) {
	for _, p := range r.Products {
		if p.Name == name {
			return p, true
		}
	}
	return Product{}, false
}

// DomainNames returns the sorted domain names.
func (r *Repository) DomainNames() []string {
	names := make([]string, 0, len(r.Domains))
	for _, d := range r.Domains {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}

// DomainIDs maps domain names to their remote IDs. Domains without an ID
// are left out.
func (r *Repository) DomainIDs() map[string]string {
	ids := make(map[string]string, len(r.Domains))
	for _, d := range r.Domains {
		if d.ID != "" {
			ids[d.Name] = d.ID
		}
	}
	return ids
}
