package products

import (
	"maps"
	"slices"
	"sort"
)

// Column describes one column of a dataset.
type Column struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Owner is a person responsible for a data product.
type Owner struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// Link is a labelled reference to documentation or a dashboard.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// SampleQuery is a named example query shipped with a product.
type SampleQuery struct {
	Name  string `json:"name" yaml:"name"`
	Query string `json:"query" yaml:"query"`
}

// Dataset is a view owned by a product. A non-nil Materialization makes it a
// materialized view carrying those definition properties.
type Dataset struct {
	Name            string            `json:"name" yaml:"name"`
	Query           string            `json:"query" yaml:"query"`
	Summary         string            `json:"summary,omitempty" yaml:"summary,omitempty"`
	Columns         []Column          `json:"columns,omitempty" yaml:"columns,omitempty"`
	Materialization map[string]string `json:"materialization,omitempty" yaml:"materialization,omitempty"`
}

// Materialized reports whether the dataset is published as a materialized view.
func (d Dataset) Materialized() bool {
	return len(d.Materialization) > 0
}

// Normalize returns a copy with empty collections collapsed to nil.
func (d Dataset) Normalize() Dataset {
	d.Columns = nilIfEmpty(d.Columns)
	if len(d.Materialization) == 0 {
		d.Materialization = nil
	} else {
		d.Materialization = maps.Clone(d.Materialization)
	}
	return d
}

// Product is a data product: a named, owned set of datasets published under
// a domain. Domain holds the domain *name*, not its remote ID.
type Product struct {
	ID          string        `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"desc" yaml:"desc"`
	Summary     string        `json:"summary" yaml:"summary"`
	Catalog     string        `json:"catalog" yaml:"catalog"`
	Domain      string        `json:"domain" yaml:"domain"`
	Owners      []Owner       `json:"owner" yaml:"owner"`
	Links       []Link        `json:"links,omitempty" yaml:"links,omitempty"`
	Tags        []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Samples     []SampleQuery `json:"samples,omitempty" yaml:"samples,omitempty"`
	Datasets    []Dataset     `json:"datasets,omitempty" yaml:"datasets,omitempty"`
}

// Key returns the identity key of the product.
func (p Product) Key() string {
	return p.Name
}

// Normalize returns a deep copy with empty optional fields collapsed to
// absent. Tags are a set, so they come back sorted and deduplicated.
func (p Product) Normalize() Product {
	p.Owners = nilIfEmpty(p.Owners)
	p.Links = nilIfEmpty(p.Links)
	p.Samples = nilIfEmpty(p.Samples)
	p.Tags = normalizeTags(p.Tags)

	if len(p.Datasets) == 0 {
		p.Datasets = nil
	} else {
		datasets := make([]Dataset, len(p.Datasets))
		for i, ds := range p.Datasets {
			datasets[i] = ds.Normalize()
		}
		p.Datasets = datasets
	}
	return p
}

// Dataset returns the dataset with the given name.
func (p Product) Dataset(name string) (Dataset, bool) {
	for _, ds := range p.Datasets {
		if ds.Name == name {
			return ds, true
		}
	}
	return Dataset{}, false
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := set[t]; ok {
			continue
		}
		set[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

func nilIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}
