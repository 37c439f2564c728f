package publish

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/agentstation/sepdpc/pkg/remote"
)

type mockClient struct {
	domains  *mockDomains
	products *mockProducts
}

func newMockClient() *mockClient {
	return &mockClient{domains: &mockDomains{}, products: &mockProducts{}}
}

func (c *mockClient) Domains() remote.DomainService   { return c.domains }
func (c *mockClient) Products() remote.ProductService { return c.products }

type mockDomains struct {
	mock.Mock
}

func (m *mockDomains) List(ctx context.Context) ([]remote.Domain, error) {
	args := m.Called(ctx)
	return args.Get(0).([]remote.Domain), args.Error(1)
}

func (m *mockDomains) Create(ctx context.Context, d remote.Domain) (*remote.Domain, error) {
	args := m.Called(ctx, d)
	created, _ := args.Get(0).(*remote.Domain)
	return created, args.Error(1)
}

func (m *mockDomains) Update(ctx context.Context, d remote.Domain) (*remote.Domain, error) {
	args := m.Called(ctx, d)
	updated, _ := args.Get(0).(*remote.Domain)
	return updated, args.Error(1)
}

func (m *mockDomains) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockProducts struct {
	mock.Mock
}

func (m *mockProducts) List(ctx context.Context) ([]remote.DataProduct, error) {
	args := m.Called(ctx)
	return args.Get(0).([]remote.DataProduct), args.Error(1)
}

func (m *mockProducts) Create(ctx context.Context, p remote.DataProduct) (*remote.DataProduct, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(*remote.DataProduct)
	return created, args.Error(1)
}

func (m *mockProducts) Update(ctx context.Context, p remote.DataProduct) (*remote.DataProduct, error) {
	args := m.Called(ctx, p)
	updated, _ := args.Get(0).(*remote.DataProduct)
	return updated, args.Error(1)
}

func (m *mockProducts) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProducts) Reassign(ctx context.Context, id, domainID string) error {
	return m.Called(ctx, id, domainID).Error(0)
}

func (m *mockProducts) Tags(ctx context.Context, id string) ([]remote.Tag, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]remote.Tag), args.Error(1)
}

func (m *mockProducts) SetTags(ctx context.Context, id string, tags []remote.Tag) error {
	return m.Called(ctx, id, tags).Error(0)
}

func (m *mockProducts) Samples(ctx context.Context, id string) ([]remote.SampleQuery, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]remote.SampleQuery), args.Error(1)
}

func (m *mockProducts) SetSamples(ctx context.Context, id string, samples []remote.SampleQuery) error {
	return m.Called(ctx, id, samples).Error(0)
}

func (m *mockProducts) Publish(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
