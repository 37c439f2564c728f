// Package local reads and writes product repositories on a filesystem.
//
// Layout:
//
//	<root>/domains.yaml
//	<root>/<product-dir>/metadata.yaml
//	<root>/<product-dir>/readme.md
//	<root>/<product-dir>/datasets/<name>.sql
//	<root>/<product-dir>/datasets/<name>.yaml   (optional)
//	<root>/<product-dir>/samples/<name>.sql     (optional)
//
// Directories whose name starts with a dot are ignored.
package local

import (
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/goccy/go-yaml"

	"github.com/agentstation/sepdpc/pkg/constants"
	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/logging"
	"github.com/agentstation/sepdpc/pkg/products"
)

// HostFS returns the host filesystem. Paths passed to Load and Persist are
// then absolute host paths.
func HostFS() billy.Filesystem {
	return osfs.New("/")
}

// Load reads the repository stored under root.
func Load(fs billy.Filesystem, root string) (*products.Repository, error) {
	info, err := fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("repository directory", root)
		}
		return nil, errors.WrapIO("stat", root, err)
	}
	if !info.IsDir() {
		return nil, errors.NewIOError("load", root, errors.New("not a directory"))
	}

	domains, err := loadDomains(fs, fs.Join(root, constants.DomainsFile))
	if err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(root)
	if err != nil {
		return nil, errors.WrapIO("read", root, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var prods []products.Product
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		p, err := loadProduct(fs, fs.Join(root, entry.Name()))
		if err != nil {
			return nil, err
		}
		prods = append(prods, p)
	}

	logging.Debug().
		Str("path", root).
		Int("domains", len(domains)).
		Int("products", len(prods)).
		Msg("Loaded local repository")

	return products.NewRepository(domains, prods), nil
}

func loadDomains(fs billy.Filesystem, path string) ([]products.Domain, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var domains []products.Domain
	if err := yaml.Unmarshal(data, &domains); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return domains, nil
}

func loadProduct(fs billy.Filesystem, dir string) (products.Product, error) {
	metaPath := fs.Join(dir, constants.MetadataFile)
	data, err := util.ReadFile(fs, metaPath)
	if err != nil {
		return products.Product{}, errors.WrapIO("read", metaPath, err)
	}
	var meta metadataFile
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return products.Product{}, errors.WrapParse("yaml", metaPath, err)
	}

	readmePath := fs.Join(dir, constants.ReadmeFile)
	readme, err := util.ReadFile(fs, readmePath)
	if err != nil {
		return products.Product{}, errors.WrapIO("read", readmePath, err)
	}

	datasets, err := loadDatasets(fs, fs.Join(dir, constants.DatasetsDir))
	if err != nil {
		return products.Product{}, err
	}
	samples, err := loadSamples(fs, fs.Join(dir, constants.SamplesDir))
	if err != nil {
		return products.Product{}, err
	}

	return products.Product{
		Name:        meta.Name,
		Description: string(readme),
		Summary:     meta.Summary,
		Catalog:     meta.Catalog,
		Domain:      meta.Domain,
		Owners:      meta.Owners,
		Links:       meta.Links,
		Tags:        meta.Tags,
		Samples:     samples,
		Datasets:    datasets,
	}, nil
}

// loadDatasets reads one dataset per file stem, sorted by name. A stem with
// only a .yaml file is an error since the query is required.
func loadDatasets(fs billy.Filesystem, dir string) ([]products.Dataset, error) {
	files, err := listFiles(fs, dir)
	if err != nil || files == nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(files))
	var names []string
	for _, f := range files {
		name := stem(f)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)

	datasets := make([]products.Dataset, 0, len(names))
	for _, name := range names {
		queryPath := fs.Join(dir, name+constants.QueryExtension)
		query, err := util.ReadFile(fs, queryPath)
		if err != nil {
			return nil, errors.WrapIO("read", queryPath, err)
		}

		ds := products.Dataset{Name: name, Query: string(query)}

		metaPath := fs.Join(dir, name+constants.YAMLExtension)
		if data, err := util.ReadFile(fs, metaPath); err == nil {
			var meta datasetFile
			if err := yaml.Unmarshal(data, &meta); err != nil {
				return nil, errors.WrapParse("yaml", metaPath, err)
			}
			ds.Summary = meta.Summary
			ds.Columns = meta.Columns
			ds.Materialization = meta.Materialization
		} else if !os.IsNotExist(err) {
			return nil, errors.WrapIO("read", metaPath, err)
		}

		datasets = append(datasets, ds)
	}
	return datasets, nil
}

func loadSamples(fs billy.Filesystem, dir string) ([]products.SampleQuery, error) {
	files, err := listFiles(fs, dir)
	if err != nil || files == nil {
		return nil, err
	}

	samples := make([]products.SampleQuery, 0, len(files))
	for _, f := range files {
		path := fs.Join(dir, f)
		query, err := util.ReadFile(fs, path)
		if err != nil {
			return nil, errors.WrapIO("read", path, err)
		}
		samples = append(samples, products.SampleQuery{Name: stem(f), Query: string(query)})
	}
	return samples, nil
}

// listFiles returns the sorted regular file names in dir, or nil when dir
// does not exist.
func listFiles(fs billy.Filesystem, dir string) ([]string, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("read", dir, err)
	}

	files := []string{}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}
