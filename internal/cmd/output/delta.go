package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/sepdpc/pkg/differ"
)

// Change markers used in delta tables.
const (
	SymbolDeleted    = "-"
	SymbolCreated    = "+"
	SymbolUpdated    = "△"
	SymbolReassigned = "→"
)

var (
	deletedColor    = color.New(color.FgRed)
	createdColor    = color.New(color.FgGreen)
	updatedColor    = color.New(color.FgYellow)
	reassignedColor = color.New(color.FgBlue)

	titleCaser = cases.Title(language.English)
)

type row struct {
	symbol  string
	color   *color.Color
	kind    string
	name    string
	details string
}

// DeltaTable lays out a delta as one row per change, in the order publish
// applies them. Symbols are colored unless color.NoColor is set.
func DeltaTable(delta *differ.Delta) Data {
	if delta == nil || delta.IsEmpty() {
		return Data{Footer: "No changes detected"}
	}

	var rows []row
	for _, p := range delta.DeletedProducts {
		rows = append(rows, row{SymbolDeleted, deletedColor, "product", p.Name, ""})
	}
	for _, d := range delta.CreatedDomains {
		rows = append(rows, row{SymbolCreated, createdColor, "domain", d.Name, ""})
	}
	for _, p := range delta.ReassignedProducts {
		rows = append(rows, row{SymbolReassigned, reassignedColor, "product", p.Name, move(delta.ProductChanges[p.Name])})
	}
	for _, d := range delta.DeletedDomains {
		rows = append(rows, row{SymbolDeleted, deletedColor, "domain", d.Name, ""})
	}
	for _, p := range delta.UpdatedProducts {
		rows = append(rows, row{SymbolUpdated, updatedColor, "product", p.Name, fields(delta.ProductChanges[p.Name])})
	}
	for _, d := range delta.UpdatedDomains {
		rows = append(rows, row{SymbolUpdated, updatedColor, "domain", d.Name, fields(delta.DomainChanges[d.Name])})
	}
	for _, p := range delta.CreatedProducts {
		rows = append(rows, row{SymbolCreated, createdColor, "product", p.Name, "in " + p.Domain})
	}

	data := Data{
		Headers:         []string{"", "Kind", "Name", "Details"},
		ColumnAlignment: []Align{AlignCenter, AlignLeft, AlignLeft, AlignLeft},
		Footer:          summaryLine(delta.Summary()),
	}
	for _, r := range rows {
		data.Rows = append(data.Rows, []string{
			r.color.Sprint(r.symbol),
			titleCaser.String(r.kind),
			r.name,
			r.details,
		})
	}
	return data
}

// move describes a domain reassignment as "old → new".
func move(changes []differ.FieldChange) string {
	for _, c := range changes {
		if c.Path == differ.FieldDomain {
			return c.OldValue + " " + SymbolReassigned + " " + c.NewValue
		}
	}
	return ""
}

// fields lists the changed fields, leaving out the domain which has its
// own row.
func fields(changes []differ.FieldChange) string {
	names := make([]string, 0, len(changes))
	for _, c := range changes {
		if c.Path == differ.FieldDomain {
			continue
		}
		names = append(names, c.Path)
	}
	return strings.Join(names, ", ")
}

func summaryLine(s differ.Summary) string {
	return fmt.Sprintf("%d to create, %d to update, %d to reassign, %d to delete",
		s.DomainsCreated+s.ProductsCreated,
		s.DomainsUpdated+s.ProductsUpdated,
		s.ProductsReassigned,
		s.DomainsDeleted+s.ProductsDeleted,
	)
}
