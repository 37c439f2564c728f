package products

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sepdpc/pkg/errors"
)

func testProduct(name, domain string) Product {
	return Product{
		Name:        name,
		Description: "# " + name,
		Summary:     name + " summary",
		Catalog:     "hive",
		Domain:      domain,
		Owners:      []Owner{{Name: "Ada", Email: "ada@example.com"}},
		Datasets: []Dataset{
			{Name: "orders", Query: "SELECT * FROM orders"},
		},
	}
}

func TestProductNormalizeCollapsesEmptyValues(t *testing.T) {
	explicit := Product{
		Name:     "Sales",
		Domain:   "Finance",
		Links:    []Link{},
		Tags:     []string{},
		Samples:  []SampleQuery{},
		Datasets: []Dataset{{Name: "a", Query: "q", Columns: []Column{}, Materialization: map[string]string{}}},
	}
	absent := Product{
		Name:     "Sales",
		Domain:   "Finance",
		Datasets: []Dataset{{Name: "a", Query: "q"}},
	}

	assert.Equal(t, absent.Normalize(), explicit.Normalize())
	assert.Nil(t, explicit.Normalize().Links)
	assert.Nil(t, explicit.Normalize().Datasets[0].Materialization)
	assert.False(t, explicit.Normalize().Datasets[0].Materialized())
}

func TestNormalizationFromYAML(t *testing.T) {
	withEmpty := []byte(`name: Sales
desc: ""
summary: s
catalog: hive
domain: Finance
owner:
  - name: Ada
    email: ada@example.com
links: []
tags: []
`)
	withoutField := []byte(`name: Sales
summary: s
catalog: hive
domain: Finance
owner:
  - name: Ada
    email: ada@example.com
`)

	var a, b Product
	require.NoError(t, yaml.Unmarshal(withEmpty, &a))
	require.NoError(t, yaml.Unmarshal(withoutField, &b))
	if diff := cmp.Diff(b.Normalize(), a.Normalize()); diff != "" {
		t.Errorf("normalized products differ (-absent +empty):\n%s", diff)
	}
}

func TestProductNormalizeTagsAsSet(t *testing.T) {
	p := Product{Tags: []string{"pii", "finance", "", "pii"}}.Normalize()
	assert.Equal(t, []string{"finance", "pii"}, p.Tags)

	q := Product{Tags: []string{""}}.Normalize()
	assert.Nil(t, q.Tags)
}

func TestProductNormalizeDoesNotAlias(t *testing.T) {
	original := testProduct("Sales", "Finance")
	original.Datasets[0].Materialization = map[string]string{"refresh_interval": "1h"}

	normalized := original.Normalize()
	normalized.Datasets[0].Materialization["refresh_interval"] = "5m"
	normalized.Owners[0].Name = "Grace"

	assert.Equal(t, "1h", original.Datasets[0].Materialization["refresh_interval"])
	assert.Equal(t, "Ada", original.Owners[0].Name)
}

func TestDomainUnmarshalAliases(t *testing.T) {
	data := []byte(`- name: Finance
  description: Money matters
  schemaLocation: s3://finance
- name: Sales
  desc: Selling things
  path: s3://sales
`)
	var domains []Domain
	require.NoError(t, yaml.Unmarshal(data, &domains))
	require.Len(t, domains, 2)
	assert.Equal(t, Domain{Name: "Finance", Description: "Money matters", Path: "s3://finance"}, domains[0])
	assert.Equal(t, Domain{Name: "Sales", Description: "Selling things", Path: "s3://sales"}, domains[1])
}

func TestRepositoryLookups(t *testing.T) {
	repo := NewRepository(
		[]Domain{{ID: "d2", Name: "Sales"}, {Name: "Finance"}},
		[]Product{testProduct("Revenue", "Finance")},
	)

	d, ok := repo.Domain("Sales")
	assert.True(t, ok)
	assert.Equal(t, "d2", d.ID)

	_, ok = repo.Domain("Unknown")
	assert.False(t, ok)

	p, ok := repo.Product("Revenue")
	assert.True(t, ok)
	ds, ok := p.Dataset("orders")
	assert.True(t, ok)
	assert.Equal(t, "SELECT * FROM orders", ds.Query)

	assert.Equal(t, []string{"Finance", "Sales"}, repo.DomainNames())
	assert.Equal(t, map[string]string{"Sales": "d2"}, repo.DomainIDs())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		repo     *Repository
		wantKind errors.ValidationKind
		wantName string
	}{
		{
			name: "valid",
			repo: NewRepository(
				[]Domain{{Name: "Finance"}, {Name: "Sales"}},
				[]Product{testProduct("Revenue", "Finance"), testProduct("Leads", "Sales")},
			),
		},
		{
			name:     "duplicate domain",
			repo:     NewRepository([]Domain{{Name: "Finance"}, {Name: "Finance"}}, nil),
			wantKind: errors.KindDuplicateDomain,
			wantName: "Finance",
		},
		{
			name: "missing domain reference",
			repo: NewRepository(
				[]Domain{{Name: "Finance"}},
				[]Product{testProduct("Revenue", "Unknown")},
			),
			wantKind: errors.KindMissingDomain,
			wantName: "Unknown",
		},
		{
			name: "duplicate product",
			repo: NewRepository(
				[]Domain{{Name: "Finance"}},
				[]Product{testProduct("Revenue", "Finance"), testProduct("Revenue", "Finance")},
			),
			wantKind: errors.KindDuplicateProduct,
			wantName: "Revenue",
		},
		{
			name: "duplicate domain reported before missing reference",
			repo: NewRepository(
				[]Domain{{Name: "Finance"}, {Name: "Finance"}},
				[]Product{testProduct("Revenue", "Unknown")},
			),
			wantKind: errors.KindDuplicateDomain,
			wantName: "Finance",
		},
		{
			name:     "empty repository",
			repo:     NewRepository(nil, nil),
			wantKind: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.repo)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))

			var verr *errors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantKind, verr.Kind)
			assert.Contains(t, verr.Names, tt.wantName)
		})
	}
}

func TestValidateNil(t *testing.T) {
	assert.True(t, errors.IsValidationError(Validate(nil)))
}
