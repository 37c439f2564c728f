package products

import (
	"sort"

	"github.com/agentstation/sepdpc/pkg/errors"
)

// Validate checks the repository invariants in order: unique domain names,
// every product domain defined, unique product names. It stops at the first
// violated invariant and never modifies the repository.
func Validate(repo *Repository) error {
	if repo == nil {
		return errors.NewValidationError("", "repository is nil")
	}

	domainNames := make([]string, 0, len(repo.Domains))
	for _, d := range repo.Domains {
		domainNames = append(domainNames, d.Name)
	}
	if dups := duplicates(domainNames); len(dups) > 0 {
		return errors.NewValidationError(errors.KindDuplicateDomain,
			"domain names must be unique", dups...)
	}

	defined := make(map[string]struct{}, len(domainNames))
	for _, name := range domainNames {
		defined[name] = struct{}{}
	}
	missing := make(map[string]struct{})
	for _, p := range repo.Products {
		if _, ok := defined[p.Domain]; !ok {
			missing[p.Domain] = struct{}{}
		}
	}
	if len(missing) > 0 {
		return errors.NewValidationError(errors.KindMissingDomain,
			"domains used by a data product must be defined", sortedKeys(missing)...)
	}

	productNames := make([]string, 0, len(repo.Products))
	for _, p := range repo.Products {
		productNames = append(productNames, p.Name)
	}
	if dups := duplicates(productNames); len(dups) > 0 {
		return errors.NewValidationError(errors.KindDuplicateProduct,
			"product names must be unique", dups...)
	}

	return nil
}

// duplicates returns the sorted names that occur more than once.
func duplicates(names []string) []string {
	seen := make(map[string]int, len(names))
	for _, n := range names {
		seen[n]++
	}
	dups := make(map[string]struct{})
	for n, count := range seen {
		if count > 1 {
			dups[n] = struct{}{}
		}
	}
	return sortedKeys(dups)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
