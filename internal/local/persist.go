package local

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/agentstation/sepdpc/pkg/constants"
	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/logging"
	"github.com/agentstation/sepdpc/pkg/products"
)

// Persist validates repo and writes it under root, which must not exist yet.
// Server IDs are not written.
func Persist(fs billy.Filesystem, root string, repo *products.Repository) error {
	if err := products.Validate(repo); err != nil {
		return err
	}
	if err := mkdirFresh(fs, root, "directory"); err != nil {
		return err
	}

	entries := make([]domainEntry, 0, len(repo.Domains))
	for _, d := range repo.Domains {
		entries = append(entries, domainEntry{Name: d.Name, Description: d.Description, Path: d.Path})
	}
	if err := writeYAML(fs, fs.Join(root, constants.DomainsFile), entries); err != nil {
		return err
	}

	for _, p := range repo.Products {
		if err := persistProduct(fs, root, p); err != nil {
			return err
		}
	}

	logging.Debug().
		Str("path", root).
		Int("domains", len(repo.Domains)).
		Int("products", len(repo.Products)).
		Msg("Wrote local repository")
	return nil
}

func persistProduct(fs billy.Filesystem, root string, p products.Product) error {
	dir := fs.Join(root, DirName(p.Name))
	if err := mkdirFresh(fs, dir, "product directory"); err != nil {
		return err
	}

	meta := metadataFile{
		Catalog: p.Catalog,
		Domain:  p.Domain,
		Name:    p.Name,
		Summary: p.Summary,
		Owners:  p.Owners,
		Links:   p.Links,
		Tags:    p.Tags,
	}
	if err := writeYAML(fs, fs.Join(dir, constants.MetadataFile), meta); err != nil {
		return err
	}
	if err := writeFile(fs, fs.Join(dir, constants.ReadmeFile), []byte(p.Description)); err != nil {
		return err
	}

	if len(p.Datasets) > 0 {
		dsDir := fs.Join(dir, constants.DatasetsDir)
		for _, ds := range p.Datasets {
			if err := writeFile(fs, fs.Join(dsDir, ds.Name+constants.QueryExtension), []byte(ds.Query)); err != nil {
				return err
			}
			meta := datasetFile{Summary: ds.Summary, Columns: ds.Columns, Materialization: ds.Materialization}
			if meta.empty() {
				continue
			}
			if err := writeYAML(fs, fs.Join(dsDir, ds.Name+constants.YAMLExtension), meta); err != nil {
				return err
			}
		}
	}

	if len(p.Samples) > 0 {
		sDir := fs.Join(dir, constants.SamplesDir)
		for _, s := range p.Samples {
			if err := writeFile(fs, fs.Join(sDir, s.Name+constants.QueryExtension), []byte(s.Query)); err != nil {
				return err
			}
		}
	}
	return nil
}

func mkdirFresh(fs billy.Filesystem, dir, resource string) error {
	if _, err := fs.Stat(dir); err == nil {
		return errors.NewAlreadyExistsError(resource, dir)
	}
	if err := fs.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("mkdir", dir, err)
	}
	return nil
}

func writeYAML(fs billy.Filesystem, path string, v any) error {
	data, err := marshalYAML(v)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	return writeFile(fs, path, data)
}

func writeFile(fs billy.Filesystem, path string, data []byte) error {
	if err := util.WriteFile(fs, path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
