package local

import (
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/sepdpc/pkg/products"
)

// domainEntry is one item of domains.yaml. IDs are server state and never
// written.
type domainEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"desc,omitempty"`
	Path        string `yaml:"path,omitempty"`
}

// metadataFile is metadata.yaml. Field order is the on-disk key order.
type metadataFile struct {
	Catalog string           `yaml:"catalog"`
	Domain  string           `yaml:"domain"`
	Name    string           `yaml:"name"`
	Summary string           `yaml:"summary"`
	Owners  []products.Owner `yaml:"owner"`
	Links   []products.Link  `yaml:"links,omitempty"`
	Tags    []string         `yaml:"tags,omitempty"`
}

// datasetFile is the optional datasets/<name>.yaml next to the query.
type datasetFile struct {
	Summary         string            `yaml:"summary,omitempty"`
	Columns         []products.Column `yaml:"columns,omitempty"`
	Materialization map[string]string `yaml:"materialization,omitempty"`
}

func (d datasetFile) empty() bool {
	return d.Summary == "" && len(d.Columns) == 0 && len(d.Materialization) == 0
}

// DirName returns the directory a product is stored in: the lower-cased
// name with spaces replaced by dashes.
func DirName(productName string) string {
	return strings.ReplaceAll(strings.ToLower(productName), " ", "-")
}

func marshalYAML(v any) ([]byte, error) {
	return yaml.MarshalWithOptions(v,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
}

func stem(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}
