package remote

import (
	"context"

	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/logging"
	"github.com/agentstation/sepdpc/pkg/products"
)

// Snapshot reads the full state of the server into a Repository. Tags and
// sample queries are fetched per product; views and materialized views are
// folded into datasets, and each product's domain ID is resolved to the
// domain name.
func Snapshot(ctx context.Context, client Client) (*products.Repository, error) {
	logger := logging.FromContext(ctx)

	remoteDomains, err := client.Domains().List(ctx)
	if err != nil {
		return nil, err
	}
	remoteProducts, err := client.Products().List(ctx)
	if err != nil {
		return nil, err
	}

	domains := make([]products.Domain, 0, len(remoteDomains))
	names := make(map[string]string, len(remoteDomains))
	for _, d := range remoteDomains {
		domains = append(domains, FromDomain(d))
		names[d.ID] = d.Name
	}

	prods := make([]products.Product, 0, len(remoteProducts))
	for _, dp := range remoteProducts {
		domain, ok := names[dp.DataDomainID]
		if !ok {
			return nil, errors.NewNotFoundError("domain", dp.DataDomainID)
		}

		tags, err := client.Products().Tags(ctx, dp.ID)
		if err != nil {
			return nil, err
		}
		samples, err := client.Products().Samples(ctx, dp.ID)
		if err != nil {
			return nil, err
		}

		p := FromDataProduct(dp, domain)
		p.Tags = TagValues(tags)
		p.Samples = samples
		prods = append(prods, p)
	}

	logger.Debug().
		Int("domains", len(domains)).
		Int("products", len(prods)).
		Msg("Fetched remote snapshot")

	return products.NewRepository(domains, prods), nil
}

// FromDomain converts a server domain to the local model.
func FromDomain(d Domain) products.Domain {
	return products.Domain{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Path:        d.SchemaLocation,
	}
}

// ToDomain converts a local domain to its server payload.
func ToDomain(d products.Domain) Domain {
	return Domain{
		ID:             d.ID,
		Name:           d.Name,
		Description:    d.Description,
		SchemaLocation: d.Path,
	}
}

// FromDataProduct converts a server product to the local model. Views come
// first, then materialized views. Tags and samples are not part of the
// payload and are left empty.
func FromDataProduct(dp DataProduct, domainName string) products.Product {
	datasets := make([]products.Dataset, 0, len(dp.Views)+len(dp.MaterializedViews))
	for _, v := range dp.Views {
		datasets = append(datasets, products.Dataset{
			Name:    v.Name,
			Query:   v.DefinitionQuery,
			Summary: v.Description,
			Columns: v.Columns,
		})
	}
	for _, v := range dp.MaterializedViews {
		datasets = append(datasets, products.Dataset{
			Name:            v.Name,
			Query:           v.DefinitionQuery,
			Summary:         v.Description,
			Columns:         v.Columns,
			Materialization: v.DefinitionProperties,
		})
	}

	return products.Product{
		ID:          dp.ID,
		Name:        dp.Name,
		Description: dp.Description,
		Summary:     dp.Summary,
		Catalog:     dp.CatalogName,
		Domain:      domainName,
		Owners:      dp.Owners,
		Links:       dp.RelevantLinks,
		Datasets:    datasets,
	}.Normalize()
}

// ToDataProduct builds the server payload for a product living in the domain
// with the given ID. Datasets without materialization become views, the rest
// materialized views.
func ToDataProduct(p products.Product, domainID string) DataProduct {
	p = p.Normalize()
	dp := DataProduct{
		ID:            p.ID,
		Name:          p.Name,
		CatalogName:   p.Catalog,
		DataDomainID:  domainID,
		Summary:       p.Summary,
		Description:   p.Description,
		Owners:        p.Owners,
		RelevantLinks: p.Links,
	}

	for _, ds := range p.Datasets {
		if !ds.Materialized() {
			dp.Views = append(dp.Views, View{
				Name:            ds.Name,
				Description:     ds.Summary,
				DefinitionQuery: ds.Query,
				Columns:         ds.Columns,
			})
			continue
		}
		dp.MaterializedViews = append(dp.MaterializedViews, MaterializedView{
			Name:                 ds.Name,
			Description:          ds.Summary,
			DefinitionQuery:      ds.Query,
			Columns:              ds.Columns,
			DefinitionProperties: ds.Materialization,
		})
	}

	return dp
}

// NewTags wraps tag values for SetTags.
func NewTags(values []string) []Tag {
	tags := make([]Tag, 0, len(values))
	for _, v := range values {
		tags = append(tags, Tag{Value: v})
	}
	return tags
}

// TagValues returns the values of the given tags.
func TagValues(tags []Tag) []string {
	if len(tags) == 0 {
		return nil
	}
	values := make([]string, 0, len(tags))
	for _, t := range tags {
		values = append(values, t.Value)
	}
	return values
}
