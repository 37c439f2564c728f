package memory

import (
	"context"
	"strings"

	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/remote"
)

type domainService struct {
	s *Server
}

func (d *domainService) List(_ context.Context) ([]remote.Domain, error) {
	s := d.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("domains", "List", ""); err != nil {
		return nil, err
	}
	return sortedValues(s.domains, func(d remote.Domain) string { return d.Name }), nil
}

func (d *domainService) Create(_ context.Context, domain remote.Domain) (*remote.Domain, error) {
	s := d.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("domains", "Create", domain.Name); err != nil {
		return nil, err
	}
	if s.domainNameTaken(domain.Name, "") {
		return nil, alreadyExists("domain", domain.Name)
	}

	domain.ID = s.newID()
	s.domains[domain.ID] = domain
	return &domain, nil
}

func (d *domainService) Update(_ context.Context, domain remote.Domain) (*remote.Domain, error) {
	s := d.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("domains", "Update", domain.ID); err != nil {
		return nil, err
	}
	if _, ok := s.domains[domain.ID]; !ok {
		return nil, errors.NewNotFoundError("domain", domain.ID)
	}
	if s.domainNameTaken(domain.Name, domain.ID) {
		return nil, alreadyExists("domain", domain.Name)
	}

	s.domains[domain.ID] = domain
	return &domain, nil
}

func (d *domainService) Delete(_ context.Context, id string) error {
	s := d.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("domains", "Delete", id); err != nil {
		return err
	}
	if _, ok := s.domains[id]; !ok {
		return errors.NewNotFoundError("domain", id)
	}
	if owned := s.productsIn(id); len(owned) > 0 {
		return errors.NewInvariantError("memory",
			"domain "+s.domains[id].Name+" still owns products: "+strings.Join(owned, ", "))
	}

	delete(s.domains, id)
	return nil
}
