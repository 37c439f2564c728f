// Package remote defines the contracts for the Starburst data product
// services and the payloads exchanged with them.
//
// Implementations live in internal/sep (HTTP) and internal/remote/memory
// (in-process). The publish orchestrator depends only on the interfaces
// declared here.
package remote

import (
	"context"

	"github.com/agentstation/sepdpc/pkg/products"
)

// Client groups the services exposed by a Starburst Enterprise server.
type Client interface {
	Domains() DomainService
	Products() ProductService
}

// DomainService manages data product domains.
type DomainService interface {
	// List returns every domain on the server.
	List(ctx context.Context) ([]Domain, error)

	// Create creates a domain and returns it with its server-assigned ID.
	Create(ctx context.Context, domain Domain) (*Domain, error)

	// Update replaces the domain identified by domain.ID.
	Update(ctx context.Context, domain Domain) (*Domain, error)

	// Delete removes a domain. It fails while products still belong to it.
	Delete(ctx context.Context, id string) error
}

// ProductService manages data products and their attachments.
type ProductService interface {
	List(ctx context.Context) ([]DataProduct, error)
	Create(ctx context.Context, product DataProduct) (*DataProduct, error)
	Update(ctx context.Context, product DataProduct) (*DataProduct, error)
	Delete(ctx context.Context, id string) error

	// Reassign moves a product to another domain.
	Reassign(ctx context.Context, id, domainID string) error

	Tags(ctx context.Context, id string) ([]Tag, error)
	SetTags(ctx context.Context, id string, tags []Tag) error

	Samples(ctx context.Context, id string) ([]SampleQuery, error)
	SetSamples(ctx context.Context, id string, samples []SampleQuery) error

	// Publish activates the current definition of a product.
	Publish(ctx context.Context, id string) error
}

// Domain is the server representation of a domain.
type Domain struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	SchemaLocation string `json:"schemaLocation,omitempty"`
}

// Column, Owner, Link and SampleQuery share their wire shape with the local
// model.
type (
	Column      = products.Column
	Owner       = products.Owner
	Link        = products.Link
	SampleQuery = products.SampleQuery
)

// Tag is a label attached to a data product.
type Tag struct {
	ID    string `json:"id,omitempty"`
	Value string `json:"value"`
}

// View is a plain dataset view.
type View struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	DefinitionQuery string   `json:"definitionQuery"`
	Columns         []Column `json:"columns,omitempty"`
}

// MaterializedView is a dataset backed by a refreshed storage table.
type MaterializedView struct {
	Name                 string            `json:"name"`
	Description          string            `json:"description,omitempty"`
	DefinitionQuery      string            `json:"definitionQuery"`
	Columns              []Column          `json:"columns,omitempty"`
	DefinitionProperties map[string]string `json:"definitionProperties,omitempty"`
}

// DataProduct is the server representation of a data product. Tags and
// sample queries are managed through separate endpoints.
type DataProduct struct {
	ID                string             `json:"id,omitempty"`
	Name              string             `json:"name"`
	CatalogName       string             `json:"catalogName"`
	DataDomainID      string             `json:"dataDomainId"`
	Summary           string             `json:"summary"`
	Description       string             `json:"description,omitempty"`
	Owners            []Owner            `json:"owners"`
	RelevantLinks     []Link             `json:"relevantLinks,omitempty"`
	Views             []View             `json:"views,omitempty"`
	MaterializedViews []MaterializedView `json:"materializedViews,omitempty"`
}
