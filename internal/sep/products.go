package sep

import (
	"context"
	"net/http"

	"github.com/agentstation/sepdpc/internal/transport"
	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/remote"
)

type productService struct {
	http *transport.Client
}

type reassignRequest struct {
	DataDomainID string `json:"dataDomainId"`
}

func (s *productService) List(ctx context.Context) ([]remote.DataProduct, error) {
	var prods []remote.DataProduct
	if err := s.http.Do(ctx, http.MethodGet, endpoint("products"), nil, &prods); err != nil {
		return nil, err
	}
	return prods, nil
}

func (s *productService) Create(ctx context.Context, product remote.DataProduct) (*remote.DataProduct, error) {
	path := endpoint("products")
	product.ID = ""

	var created remote.DataProduct
	if err := s.http.Do(ctx, http.MethodPost, path, product, &created); err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, errors.NewAPIError(http.MethodPost, path, 0, "created data product has no id")
	}
	return &created, nil
}

func (s *productService) Update(ctx context.Context, product remote.DataProduct) (*remote.DataProduct, error) {
	var updated remote.DataProduct
	if err := s.http.Do(ctx, http.MethodPut, endpoint("products", product.ID), product, &updated); err != nil {
		return nil, err
	}
	if updated.ID == "" {
		updated = product
	}
	return &updated, nil
}

// Delete runs the delete workflow, which also drops the product's views.
func (s *productService) Delete(ctx context.Context, id string) error {
	return s.http.Do(ctx, http.MethodPost, endpoint("products", id, "workflows", "delete"), nil, nil)
}

func (s *productService) Reassign(ctx context.Context, id, domainID string) error {
	return s.http.Do(ctx, http.MethodPost, endpoint("products", id, "reassignDomain"),
		reassignRequest{DataDomainID: domainID}, nil)
}

func (s *productService) Tags(ctx context.Context, id string) ([]remote.Tag, error) {
	var tags []remote.Tag
	if err := s.http.Do(ctx, http.MethodGet, endpoint("tags", "products", id), nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *productService) SetTags(ctx context.Context, id string, tags []remote.Tag) error {
	return s.http.Do(ctx, http.MethodPut, endpoint("tags", "products", id), tags, nil)
}

func (s *productService) Samples(ctx context.Context, id string) ([]remote.SampleQuery, error) {
	var samples []remote.SampleQuery
	if err := s.http.Do(ctx, http.MethodGet, endpoint("products", id, "sampleQueries"), nil, &samples); err != nil {
		return nil, err
	}
	return samples, nil
}

func (s *productService) SetSamples(ctx context.Context, id string, samples []remote.SampleQuery) error {
	return s.http.Do(ctx, http.MethodPut, endpoint("products", id, "sampleQueries"), samples, nil)
}

func (s *productService) Publish(ctx context.Context, id string) error {
	return s.http.Do(ctx, http.MethodPost, endpoint("products", id, "workflows", "publish"), nil, nil)
}
