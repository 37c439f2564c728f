// Package differ computes the delta between two product repositories.
// Entities are matched by name; remote IDs never take part in change
// detection. The delta separates plain updates from domain reassignments so
// that the publisher can move products between domains safely.
package differ

import (
	"github.com/agentstation/sepdpc/pkg/products"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates a field gained a value.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate indicates a field changed value.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove indicates a field lost its value.
	ChangeTypeRemove ChangeType = "remove"
)

// FieldChange represents a change to a top-level entity field.
type FieldChange struct {
	Path     string     `json:"path" yaml:"path"`                   // Field name (e.g., "domain")
	OldValue string     `json:"old,omitempty" yaml:"old,omitempty"` // Previous value (string representation)
	NewValue string     `json:"new,omitempty" yaml:"new,omitempty"` // New value (string representation)
	Type     ChangeType `json:"type" yaml:"type"`
}

// DomainChangeset holds the changes between two domain sets.
type DomainChangeset struct {
	Deleted []products.Domain
	Created []products.Domain
	Updated []products.Domain
	Changes map[string][]FieldChange // keyed by domain name
}

// ProductChangeset holds the changes between two product sets. A product can
// be both Updated and Reassigned when its domain and another field changed.
type ProductChangeset struct {
	Deleted    []products.Product
	Created    []products.Product
	Updated    []products.Product
	Reassigned []products.Product
	Changes    map[string][]FieldChange // keyed by product name
}

// Delta is the full set of operations needed to turn the base repository
// into the target repository.
type Delta struct {
	DeletedDomains     []products.Domain  `json:"deleted_domains" yaml:"deleted_domains"`
	CreatedDomains     []products.Domain  `json:"created_domains" yaml:"created_domains"`
	UpdatedDomains     []products.Domain  `json:"updated_domains" yaml:"updated_domains"`
	DeletedProducts    []products.Product `json:"deleted_products" yaml:"deleted_products"`
	CreatedProducts    []products.Product `json:"created_products" yaml:"created_products"`
	UpdatedProducts    []products.Product `json:"updated_products" yaml:"updated_products"`
	ReassignedProducts []products.Product `json:"reassigned_products" yaml:"reassigned_products"`

	DomainChanges  map[string][]FieldChange `json:"domain_changes,omitempty" yaml:"domain_changes,omitempty"`
	ProductChanges map[string][]FieldChange `json:"product_changes,omitempty" yaml:"product_changes,omitempty"`
}

// Summary provides counts per delta sequence.
type Summary struct {
	DomainsDeleted     int `json:"domains_deleted"`
	DomainsCreated     int `json:"domains_created"`
	DomainsUpdated     int `json:"domains_updated"`
	ProductsDeleted    int `json:"products_deleted"`
	ProductsCreated    int `json:"products_created"`
	ProductsUpdated    int `json:"products_updated"`
	ProductsReassigned int `json:"products_reassigned"`
	TotalChanges       int `json:"total_changes"`
}

// Summary computes the counts for the delta.
func (d *Delta) Summary() Summary {
	s := Summary{
		DomainsDeleted:     len(d.DeletedDomains),
		DomainsCreated:     len(d.CreatedDomains),
		DomainsUpdated:     len(d.UpdatedDomains),
		ProductsDeleted:    len(d.DeletedProducts),
		ProductsCreated:    len(d.CreatedProducts),
		ProductsUpdated:    len(d.UpdatedProducts),
		ProductsReassigned: len(d.ReassignedProducts),
	}
	s.TotalChanges = s.DomainsDeleted + s.DomainsCreated + s.DomainsUpdated +
		s.ProductsDeleted + s.ProductsCreated + s.ProductsUpdated + s.ProductsReassigned
	return s
}

// IsEmpty returns true if the delta contains no operations.
func (d *Delta) IsEmpty() bool {
	return d.Summary().TotalChanges == 0
}

// HasChanges returns true if the domain changeset contains any changes.
func (c *DomainChangeset) HasChanges() bool {
	return len(c.Deleted) > 0 || len(c.Created) > 0 || len(c.Updated) > 0
}

// HasChanges returns true if the product changeset contains any changes.
func (c *ProductChangeset) HasChanges() bool {
	return len(c.Deleted) > 0 || len(c.Created) > 0 || len(c.Updated) > 0 || len(c.Reassigned) > 0
}

// ChangedFields returns the field names in a change list.
func ChangedFields(changes []FieldChange) []string {
	fields := make([]string, 0, len(changes))
	for _, c := range changes {
		fields = append(fields, c.Path)
	}
	return fields
}

func hasField(changes []FieldChange, field string) bool {
	for _, c := range changes {
		if c.Path == field {
			return true
		}
	}
	return false
}
