package remote_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sepdpc/internal/remote/memory"
	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/products"
	"github.com/agentstation/sepdpc/pkg/remote"
)

func revenue() products.Product {
	return products.Product{
		Name:        "Revenue",
		Description: "# Revenue",
		Summary:     "Revenue by month",
		Catalog:     "hive",
		Domain:      "Finance",
		Owners:      []products.Owner{{Name: "Ada", Email: "ada@example.com"}},
		Links:       []products.Link{{Label: "Docs", URL: "https://docs"}},
		Datasets: []products.Dataset{
			{Name: "monthly", Query: "SELECT 1", Summary: "per month"},
			{Name: "totals", Query: "SELECT 2", Materialization: map[string]string{"refresh_interval": "1h"}},
		},
	}
}

func TestToDataProduct(t *testing.T) {
	dp := remote.ToDataProduct(revenue(), "d1")

	assert.Equal(t, "d1", dp.DataDomainID)
	assert.Equal(t, "hive", dp.CatalogName)
	assert.Equal(t, "# Revenue", dp.Description)
	require.Len(t, dp.Views, 1)
	assert.Equal(t, remote.View{Name: "monthly", Description: "per month", DefinitionQuery: "SELECT 1"}, dp.Views[0])
	require.Len(t, dp.MaterializedViews, 1)
	assert.Equal(t, "totals", dp.MaterializedViews[0].Name)
	assert.Equal(t, map[string]string{"refresh_interval": "1h"}, dp.MaterializedViews[0].DefinitionProperties)
}

func TestToDataProductWithoutMaterializedViews(t *testing.T) {
	p := revenue()
	p.Datasets = p.Datasets[:1]

	dp := remote.ToDataProduct(p, "d1")
	assert.Len(t, dp.Views, 1)
	assert.Nil(t, dp.MaterializedViews)
}

func TestFromDataProductInvertsToDataProduct(t *testing.T) {
	p := revenue()
	got := remote.FromDataProduct(remote.ToDataProduct(p, "d1"), "Finance")
	assert.Equal(t, p.Normalize(), got)
}

func TestDomainConversion(t *testing.T) {
	d := products.Domain{ID: "d1", Name: "Finance", Description: "Money", Path: "s3://fin"}
	assert.Equal(t, remote.Domain{ID: "d1", Name: "Finance", Description: "Money", SchemaLocation: "s3://fin"}, remote.ToDomain(d))
	assert.Equal(t, d, remote.FromDomain(remote.ToDomain(d)))
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	server := memory.New()

	d, err := server.Domains().Create(ctx, remote.Domain{Name: "Finance", Description: "Money"})
	require.NoError(t, err)
	dp, err := server.Products().Create(ctx, remote.ToDataProduct(revenue(), d.ID))
	require.NoError(t, err)
	require.NoError(t, server.Products().SetTags(ctx, dp.ID, remote.NewTags([]string{"gold", "core"})))
	require.NoError(t, server.Products().SetSamples(ctx, dp.ID, []remote.SampleQuery{{Name: "top", Query: "SELECT 3"}}))

	repo, err := remote.Snapshot(ctx, server)
	require.NoError(t, err)
	require.NoError(t, products.Validate(repo))

	domain, ok := repo.Domain("Finance")
	require.True(t, ok)
	assert.Equal(t, d.ID, domain.ID)

	p, ok := repo.Product("Revenue")
	require.True(t, ok)
	assert.Equal(t, dp.ID, p.ID)
	assert.Equal(t, "Finance", p.Domain)
	assert.Equal(t, []string{"core", "gold"}, p.Tags)
	assert.Equal(t, []products.SampleQuery{{Name: "top", Query: "SELECT 3"}}, p.Samples)

	ds, ok := p.Dataset("totals")
	require.True(t, ok)
	assert.True(t, ds.Materialized())
}

func TestSnapshotUnknownDomain(t *testing.T) {
	ctx := context.Background()
	server := memory.New()

	d, err := server.Domains().Create(ctx, remote.Domain{Name: "Finance"})
	require.NoError(t, err)
	_, err = server.Products().Create(ctx, remote.ToDataProduct(revenue(), d.ID))
	require.NoError(t, err)

	// Simulate a listing that no longer contains the product's domain.
	client := &staleDomains{Client: server}

	_, err = remote.Snapshot(ctx, client)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestSnapshotPropagatesListFailure(t *testing.T) {
	server := memory.New()
	boom := errors.New("boom")
	server.FailOn("products.List", boom)

	_, err := remote.Snapshot(context.Background(), server)
	assert.ErrorIs(t, err, boom)
}

type staleDomains struct {
	remote.Client
}

func (s *staleDomains) Domains() remote.DomainService {
	return emptyDomains{DomainService: s.Client.Domains()}
}

type emptyDomains struct {
	remote.DomainService
}

func (emptyDomains) List(context.Context) ([]remote.Domain, error) {
	return nil, nil
}
