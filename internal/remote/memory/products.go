package memory

import (
	"context"
	"slices"

	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/remote"
)

type productService struct {
	s *Server
}

func (p *productService) List(_ context.Context) ([]remote.DataProduct, error) {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("products", "List", ""); err != nil {
		return nil, err
	}
	return sortedValues(s.products, func(p remote.DataProduct) string { return p.Name }), nil
}

func (p *productService) Create(_ context.Context, product remote.DataProduct) (*remote.DataProduct, error) {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("products", "Create", product.Name); err != nil {
		return nil, err
	}
	if s.productNameTaken(product.Name, "") {
		return nil, alreadyExists("data product", product.Name)
	}
	if _, ok := s.domains[product.DataDomainID]; !ok {
		return nil, errors.NewNotFoundError("domain", product.DataDomainID)
	}

	product.ID = s.newID()
	s.products[product.ID] = product
	return &product, nil
}

func (p *productService) Update(_ context.Context, product remote.DataProduct) (*remote.DataProduct, error) {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("products", "Update", product.ID); err != nil {
		return nil, err
	}
	if _, ok := s.products[product.ID]; !ok {
		return nil, errors.NewNotFoundError("data product", product.ID)
	}
	if s.productNameTaken(product.Name, product.ID) {
		return nil, alreadyExists("data product", product.Name)
	}
	if _, ok := s.domains[product.DataDomainID]; !ok {
		return nil, errors.NewNotFoundError("domain", product.DataDomainID)
	}

	s.products[product.ID] = product
	s.published[product.ID] = false
	return &product, nil
}

func (p *productService) Delete(_ context.Context, id string) error {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("products", "Delete", id); err != nil {
		return err
	}
	if _, ok := s.products[id]; !ok {
		return errors.NewNotFoundError("data product", id)
	}

	delete(s.products, id)
	delete(s.tags, id)
	delete(s.samples, id)
	delete(s.published, id)
	return nil
}

func (p *productService) Reassign(_ context.Context, id, domainID string) error {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("products", "Reassign", id); err != nil {
		return err
	}
	product, ok := s.products[id]
	if !ok {
		return errors.NewNotFoundError("data product", id)
	}
	if _, ok := s.domains[domainID]; !ok {
		return errors.NewNotFoundError("domain", domainID)
	}

	product.DataDomainID = domainID
	s.products[id] = product
	return nil
}

func (p *productService) Tags(_ context.Context, id string) ([]remote.Tag, error) {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("products", "Tags", id); err != nil {
		return nil, err
	}
	if _, ok := s.products[id]; !ok {
		return nil, errors.NewNotFoundError("data product", id)
	}
	return slices.Clone(s.tags[id]), nil
}

func (p *productService) SetTags(_ context.Context, id string, tags []remote.Tag) error {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("products", "SetTags", id); err != nil {
		return err
	}
	if _, ok := s.products[id]; !ok {
		return errors.NewNotFoundError("data product", id)
	}

	stored := make([]remote.Tag, 0, len(tags))
	for _, t := range tags {
		if t.ID == "" {
			t.ID = s.newID()
		}
		stored = append(stored, t)
	}
	s.tags[id] = stored
	return nil
}

func (p *productService) Samples(_ context.Context, id string) ([]remote.SampleQuery, error) {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("products", "Samples", id); err != nil {
		return nil, err
	}
	if _, ok := s.products[id]; !ok {
		return nil, errors.NewNotFoundError("data product", id)
	}
	return slices.Clone(s.samples[id]), nil
}

func (p *productService) SetSamples(_ context.Context, id string, samples []remote.SampleQuery) error {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("products", "SetSamples", id); err != nil {
		return err
	}
	if _, ok := s.products[id]; !ok {
		return errors.NewNotFoundError("data product", id)
	}
	s.samples[id] = slices.Clone(samples)
	return nil
}

func (p *productService) Publish(_ context.Context, id string) error {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("products", "Publish", id); err != nil {
		return err
	}
	if _, ok := s.products[id]; !ok {
		return errors.NewNotFoundError("data product", id)
	}
	s.published[id] = true
	return nil
}
