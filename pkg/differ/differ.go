package differ

import (
	"slices"
	"strings"

	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/products"
)

// Differ handles change detection between repositories.
type Differ interface {
	// Domains compares two sets of domains and returns changes
	Domains(base, target []products.Domain) (*DomainChangeset, error)

	// Products compares two sets of products and returns changes
	Products(base, target []products.Product) (*ProductChangeset, error)

	// Repositories validates and compares two complete repositories
	Repositories(base, target *products.Repository) (*Delta, error)
}

// differ is the default implementation of Differ.
type differ struct {
	ignoreFields map[string]bool
}

// Option is a functional option for configuring a Differ.
type Option func(*differ)

// WithIgnoredFields excludes additional fields from change detection.
// The id field is always excluded.
func WithIgnoredFields(fields ...string) Option {
	return func(d *differ) {
		for _, field := range fields {
			d.ignoreFields[field] = true
		}
	}
}

// New creates a Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{
		ignoreFields: map[string]bool{FieldID: true},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Diff validates both repositories and computes the delta from base to
// target. Diff is not symmetric: swapping the arguments inverts created and
// deleted, and updated entries carry the other side's values.
func Diff(base, target *products.Repository) (*Delta, error) {
	return New().Repositories(base, target)
}

// Repositories validates and compares two repositories.
func (diff *differ) Repositories(base, target *products.Repository) (*Delta, error) {
	if err := products.Validate(base); err != nil {
		return nil, err
	}
	if err := products.Validate(target); err != nil {
		return nil, err
	}

	domains, err := diff.Domains(base.Domains, target.Domains)
	if err != nil {
		return nil, err
	}
	prods, err := diff.Products(base.Products, target.Products)
	if err != nil {
		return nil, err
	}

	return &Delta{
		DeletedDomains:     domains.Deleted,
		CreatedDomains:     domains.Created,
		UpdatedDomains:     domains.Updated,
		DeletedProducts:    prods.Deleted,
		CreatedProducts:    prods.Created,
		UpdatedProducts:    prods.Updated,
		ReassignedProducts: prods.Reassigned,
		DomainChanges:      domains.Changes,
		ProductChanges:     prods.Changes,
	}, nil
}

// Domains compares two sets of domains and returns changes.
func (diff *differ) Domains(base, target []products.Domain) (*DomainChangeset, error) {
	deleted, created, pairs, err := partition(base, target)
	if err != nil {
		return nil, err
	}

	changeset := &DomainChangeset{
		Deleted: deleted,
		Created: created,
		Updated: []products.Domain{},
		Changes: map[string][]FieldChange{},
	}

	for _, p := range pairs {
		changes := diff.filter(DomainChanges(p.base, p.target))
		if len(changes) == 0 {
			continue
		}
		changeset.Updated = append(changeset.Updated, mergeDomain(p.base, p.target))
		changeset.Changes[p.target.Name] = changes
	}

	return changeset, nil
}

// Products compares two sets of products and returns changes.
// A changed domain sends the merged product to Reassigned; any other changed
// field sends it to Updated. Both can apply at once.
func (diff *differ) Products(base, target []products.Product) (*ProductChangeset, error) {
	deleted, created, pairs, err := partition(base, target)
	if err != nil {
		return nil, err
	}

	changeset := &ProductChangeset{
		Deleted:    deleted,
		Created:    created,
		Updated:    []products.Product{},
		Reassigned: []products.Product{},
		Changes:    map[string][]FieldChange{},
	}

	for _, p := range pairs {
		changes := diff.filter(ProductChanges(p.base, p.target))
		if len(changes) == 0 {
			continue
		}

		merged := mergeProduct(p.base, p.target)
		changeset.Changes[p.target.Name] = changes

		if hasField(changes, FieldDomain) {
			changeset.Reassigned = append(changeset.Reassigned, merged)
			if len(changes) > 1 {
				changeset.Updated = append(changeset.Updated, merged)
			}
			continue
		}
		changeset.Updated = append(changeset.Updated, merged)
	}

	return changeset, nil
}

// filter drops ignored fields from a change list.
func (diff *differ) filter(changes []FieldChange) []FieldChange {
	out := changes[:0]
	for _, c := range changes {
		if !diff.ignoreFields[c.Path] {
			out = append(out, c)
		}
	}
	return out
}

// keyed is any entity with a name-based identity key.
type keyed interface {
	Key() string
}

type pair[T keyed] struct {
	base   T
	target T
}

// partition splits two entity sets into deleted, created and update
// candidates paired by name. Candidates are sorted by name so pairing does
// not depend on input order.
func partition[T keyed](base, target []T) (deleted, created []T, pairs []pair[T], err error) {
	baseNames := make(map[string]struct{}, len(base))
	for _, e := range base {
		baseNames[e.Key()] = struct{}{}
	}
	targetNames := make(map[string]struct{}, len(target))
	for _, e := range target {
		targetNames[e.Key()] = struct{}{}
	}

	deleted = []T{}
	baseCandidates := []T{}
	for _, e := range base {
		if _, ok := targetNames[e.Key()]; ok {
			baseCandidates = append(baseCandidates, e)
		} else {
			deleted = append(deleted, e)
		}
	}

	created = []T{}
	targetCandidates := []T{}
	for _, e := range target {
		if _, ok := baseNames[e.Key()]; ok {
			targetCandidates = append(targetCandidates, e)
		} else {
			created = append(created, e)
		}
	}

	if len(baseCandidates) != len(targetCandidates) {
		return nil, nil, nil, errors.NewInvariantError("differ",
			"update candidate lists differ in length")
	}

	byKey := func(a, b T) int { return strings.Compare(a.Key(), b.Key()) }
	slices.SortStableFunc(baseCandidates, byKey)
	slices.SortStableFunc(targetCandidates, byKey)

	pairs = make([]pair[T], 0, len(baseCandidates))
	for i := range baseCandidates {
		if baseCandidates[i].Key() != targetCandidates[i].Key() {
			return nil, nil, nil, errors.NewInvariantError("differ",
				"paired candidates "+baseCandidates[i].Key()+" and "+targetCandidates[i].Key()+" do not share a name")
		}
		pairs = append(pairs, pair[T]{base: baseCandidates[i], target: targetCandidates[i]})
	}

	return deleted, created, pairs, nil
}
