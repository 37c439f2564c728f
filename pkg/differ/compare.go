package differ

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/agentstation/sepdpc/pkg/products"
)

// Field names reported in FieldChange.Path. They match the repository file keys.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "desc"
	FieldPath        = "path"
	FieldSummary     = "summary"
	FieldCatalog     = "catalog"
	FieldDomain      = "domain"
	FieldOwners      = "owner"
	FieldLinks       = "links"
	FieldTags        = "tags"
	FieldSamples     = "samples"
	FieldDatasets    = "datasets"
)

// DomainChanges compares two domains field by field. The id field is never
// compared.
func DomainChanges(base, target products.Domain) []FieldChange {
	changes := []FieldChange{}
	changes = appendString(changes, FieldName, base.Name, target.Name)
	changes = appendString(changes, FieldDescription, base.Description, target.Description)
	changes = appendString(changes, FieldPath, base.Path, target.Path)
	return changes
}

// ProductChanges compares two products field by field. The id field is never
// compared. Owners, links, tags, samples and datasets compare without regard
// to order; dataset columns compare in order.
func ProductChanges(base, target products.Product) []FieldChange {
	changes := []FieldChange{}
	changes = appendString(changes, FieldName, base.Name, target.Name)
	changes = appendString(changes, FieldDescription, base.Description, target.Description)
	changes = appendString(changes, FieldSummary, base.Summary, target.Summary)
	changes = appendString(changes, FieldCatalog, base.Catalog, target.Catalog)
	changes = appendString(changes, FieldDomain, base.Domain, target.Domain)

	if !sameElements(base.Owners, target.Owners) {
		changes = append(changes, collectionChange(FieldOwners, len(base.Owners), len(target.Owners)))
	}
	if !sameElements(base.Links, target.Links) {
		changes = append(changes, collectionChange(FieldLinks, len(base.Links), len(target.Links)))
	}
	if !sameElements(base.Tags, target.Tags) {
		changes = append(changes, FieldChange{
			Path:     FieldTags,
			OldValue: strings.Join(base.Tags, ","),
			NewValue: strings.Join(target.Tags, ","),
			Type:     changeType(len(base.Tags) > 0, len(target.Tags) > 0),
		})
	}
	if !sameElements(base.Samples, target.Samples) {
		changes = append(changes, collectionChange(FieldSamples, len(base.Samples), len(target.Samples)))
	}
	if !sameDatasets(base.Datasets, target.Datasets) {
		changes = append(changes, collectionChange(FieldDatasets, len(base.Datasets), len(target.Datasets)))
	}

	return changes
}

// mergeDomain overlays every present target field onto base.
func mergeDomain(base, target products.Domain) products.Domain {
	merged := base
	overlay(&merged.ID, target.ID)
	overlay(&merged.Name, target.Name)
	overlay(&merged.Description, target.Description)
	overlay(&merged.Path, target.Path)
	return merged
}

// mergeProduct overlays every present target field onto base. Fields absent
// on the target side keep the base value, and a present target ID wins.
func mergeProduct(base, target products.Product) products.Product {
	merged := base.Normalize()
	overlay(&merged.ID, target.ID)
	overlay(&merged.Name, target.Name)
	overlay(&merged.Description, target.Description)
	overlay(&merged.Summary, target.Summary)
	overlay(&merged.Catalog, target.Catalog)
	overlay(&merged.Domain, target.Domain)

	t := target.Normalize()
	if t.Owners != nil {
		merged.Owners = t.Owners
	}
	if t.Links != nil {
		merged.Links = t.Links
	}
	if t.Tags != nil {
		merged.Tags = t.Tags
	}
	if t.Samples != nil {
		merged.Samples = t.Samples
	}
	if t.Datasets != nil {
		merged.Datasets = t.Datasets
	}
	return merged
}

func overlay(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func appendString(changes []FieldChange, field, old, updated string) []FieldChange {
	if old == updated {
		return changes
	}
	return append(changes, FieldChange{
		Path:     field,
		OldValue: truncateString(old, 50),
		NewValue: truncateString(updated, 50),
		Type:     changeType(old != "", updated != ""),
	})
}

func collectionChange(field string, oldLen, newLen int) FieldChange {
	return FieldChange{
		Path:     field,
		OldValue: fmt.Sprintf("%d item(s)", oldLen),
		NewValue: fmt.Sprintf("%d item(s)", newLen),
		Type:     changeType(oldLen > 0, newLen > 0),
	}
}

func changeType(hadValue, hasValue bool) ChangeType {
	switch {
	case !hadValue && hasValue:
		return ChangeTypeAdd
	case hadValue && !hasValue:
		return ChangeTypeRemove
	default:
		return ChangeTypeUpdate
	}
}

// sameElements reports whether a and b hold the same multiset of values.
func sameElements[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[T]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		if counts[v] == 0 {
			return false
		}
		counts[v]--
	}
	return true
}

// sameDatasets compares datasets keyed by name.
func sameDatasets(a, b []products.Dataset) bool {
	if len(a) != len(b) {
		return false
	}
	byName := make(map[string]products.Dataset, len(a))
	for _, ds := range a {
		byName[ds.Name] = ds
	}
	for _, ds := range b {
		other, ok := byName[ds.Name]
		if !ok || !sameDataset(other, ds) {
			return false
		}
	}
	return true
}

func sameDataset(a, b products.Dataset) bool {
	a, b = a.Normalize(), b.Normalize()
	return a.Name == b.Name &&
		a.Query == b.Query &&
		a.Summary == b.Summary &&
		slices.Equal(a.Columns, b.Columns) &&
		maps.Equal(a.Materialization, b.Materialization)
}

// truncateString truncates a string to maxLen characters.
func truncateString(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
