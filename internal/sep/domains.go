package sep

import (
	"context"
	"net/http"

	"github.com/agentstation/sepdpc/internal/transport"
	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/remote"
)

type domainService struct {
	http *transport.Client
}

func (s *domainService) List(ctx context.Context) ([]remote.Domain, error) {
	var domains []remote.Domain
	if err := s.http.Do(ctx, http.MethodGet, endpoint("domains"), nil, &domains); err != nil {
		return nil, err
	}
	return domains, nil
}

func (s *domainService) Create(ctx context.Context, domain remote.Domain) (*remote.Domain, error) {
	path := endpoint("domains")
	domain.ID = ""

	var created remote.Domain
	if err := s.http.Do(ctx, http.MethodPost, path, domain, &created); err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, errors.NewAPIError(http.MethodPost, path, 0, "created domain has no id")
	}
	return &created, nil
}

func (s *domainService) Update(ctx context.Context, domain remote.Domain) (*remote.Domain, error) {
	var updated remote.Domain
	if err := s.http.Do(ctx, http.MethodPut, endpoint("domains", domain.ID), domain, &updated); err != nil {
		return nil, err
	}
	if updated.ID == "" {
		updated = domain
	}
	return &updated, nil
}

func (s *domainService) Delete(ctx context.Context, id string) error {
	return s.http.Do(ctx, http.MethodDelete, endpoint("domains", id), nil, nil)
}
