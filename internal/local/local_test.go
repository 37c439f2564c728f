package local

import (
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/products"
)

func sampleRepository() *products.Repository {
	return products.NewRepository(
		[]products.Domain{
			{ID: "d1", Name: "Finance", Description: "Money matters", Path: "s3://finance"},
			{Name: "Sales"},
		},
		[]products.Product{
			{
				ID:          "p1",
				Name:        "Monthly Revenue",
				Description: "# Monthly revenue\n\nBooked revenue per month.\n",
				Summary:     "Revenue per month",
				Catalog:     "hive",
				Domain:      "Finance",
				Owners:      []products.Owner{{Name: "Ada", Email: "ada@example.com"}},
				Links:       []products.Link{{Label: "Dashboard", URL: "https://bi.example.com/revenue"}},
				Tags:        []string{"finance", "gold"},
				Samples:     []products.SampleQuery{{Name: "last-year", Query: "SELECT * FROM monthly WHERE year = 2023"}},
				Datasets: []products.Dataset{
					{
						Name:    "monthly",
						Query:   "SELECT month, sum(amount) FROM orders GROUP BY 1",
						Summary: "Revenue by month",
						Columns: []products.Column{
							{Name: "month", Type: "date"},
							{Name: "amount", Type: "decimal(18,2)", Description: "Booked amount"},
						},
					},
					{
						Name:            "totals",
						Query:           "SELECT sum(amount) FROM orders",
						Materialization: map[string]string{"refresh_interval": "1h", "incremental_column": "month"},
					},
				},
			},
			{
				Name:        "Leads",
				Description: "Leads",
				Summary:     "Open leads",
				Catalog:     "hive",
				Domain:      "Sales",
				Owners:      []products.Owner{{Name: "Grace", Email: "grace@example.com"}},
				Datasets:    []products.Dataset{{Name: "open", Query: "SELECT 1"}},
			},
		},
	)
}

func read(t *testing.T, fs billy.Filesystem, path string) string {
	t.Helper()
	data, err := util.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func write(t *testing.T, fs billy.Filesystem, path, content string) {
	t.Helper()
	require.NoError(t, util.WriteFile(fs, path, []byte(content), 0o644))
}

func withoutIDs(repo *products.Repository) *products.Repository {
	domains := make([]products.Domain, 0, len(repo.Domains))
	for _, d := range repo.Domains {
		d.ID = ""
		domains = append(domains, d)
	}
	prods := make([]products.Product, 0, len(repo.Products))
	for _, p := range repo.Products {
		p.ID = ""
		prods = append(prods, p)
	}
	return products.NewRepository(domains, prods)
}

func TestPersistLayout(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, Persist(fs, "repo", sampleRepository()))

	assert.Equal(t, `- name: Finance
  desc: Money matters
  path: s3://finance
- name: Sales
`, read(t, fs, "repo/domains.yaml"))

	assert.Equal(t, `catalog: hive
domain: Finance
name: Monthly Revenue
summary: Revenue per month
owner:
- name: Ada
  email: ada@example.com
links:
- label: Dashboard
  url: https://bi.example.com/revenue
tags:
- finance
- gold
`, read(t, fs, "repo/monthly-revenue/metadata.yaml"))

	assert.Equal(t, "# Monthly revenue\n\nBooked revenue per month.\n", read(t, fs, "repo/monthly-revenue/readme.md"))
	assert.Equal(t, "SELECT sum(amount) FROM orders", read(t, fs, "repo/monthly-revenue/datasets/totals.sql"))
	assert.Contains(t, read(t, fs, "repo/monthly-revenue/datasets/totals.yaml"), "refresh_interval: 1h")
	assert.Contains(t, read(t, fs, "repo/monthly-revenue/datasets/monthly.yaml"), "summary: Revenue by month")
	assert.Equal(t, "SELECT * FROM monthly WHERE year = 2023", read(t, fs, "repo/monthly-revenue/samples/last-year.sql"))

	// No metadata file for a dataset without metadata, no samples dir without samples.
	_, err := fs.Stat("repo/leads/datasets/open.yaml")
	assert.Error(t, err)
	_, err = fs.Stat("repo/leads/samples")
	assert.Error(t, err)
}

func TestPersistThenLoad(t *testing.T) {
	fs := memfs.New()
	original := sampleRepository()
	require.NoError(t, Persist(fs, "repo", original))

	loaded, err := Load(fs, "repo")
	require.NoError(t, err)

	expected := withoutIDs(original)
	assert.ElementsMatch(t, expected.Domains, loaded.Domains)
	assert.ElementsMatch(t, expected.Products, loaded.Products)
}

func TestPersistRefusesExistingDirectory(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("repo", 0o755))

	err := Persist(fs, "repo", sampleRepository())
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))
}

func TestPersistRefusesCollidingProductDirectories(t *testing.T) {
	repo := products.NewRepository(
		[]products.Domain{{Name: "Finance"}},
		[]products.Product{
			{Name: "Monthly Revenue", Domain: "Finance", Datasets: []products.Dataset{{Name: "a", Query: "q"}}},
			{Name: "monthly revenue", Domain: "Finance", Datasets: []products.Dataset{{Name: "a", Query: "q"}}},
		},
	)

	err := Persist(memfs.New(), "repo", repo)
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))
}

func TestPersistValidates(t *testing.T) {
	repo := products.NewRepository(nil, []products.Product{{Name: "P", Domain: "Missing"}})

	fs := memfs.New()
	err := Persist(fs, "repo", repo)
	assert.True(t, errors.IsValidationError(err))

	_, statErr := fs.Stat("repo")
	assert.Error(t, statErr, "nothing is written for an invalid repository")
}

func TestLoadMissingRoot(t *testing.T) {
	_, err := Load(memfs.New(), "nowhere")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestLoadSkipsHiddenDirectories(t *testing.T) {
	fs := memfs.New()
	write(t, fs, "repo/domains.yaml", "- name: Finance\n")
	write(t, fs, "repo/.git/config", "[core]\n")
	write(t, fs, "repo/revenue/metadata.yaml", "catalog: hive\ndomain: Finance\nname: Revenue\nsummary: s\nowner: []\n")
	write(t, fs, "repo/revenue/readme.md", "Revenue")
	write(t, fs, "repo/revenue/datasets/b.sql", "SELECT 2")
	write(t, fs, "repo/revenue/datasets/a.sql", "SELECT 1")
	write(t, fs, "repo/README.md", "not a product")

	repo, err := Load(fs, "repo")
	require.NoError(t, err)
	require.Len(t, repo.Products, 1)

	p := repo.Products[0]
	assert.Equal(t, "Revenue", p.Name)
	assert.Equal(t, "Revenue", p.Description)
	require.Len(t, p.Datasets, 2)
	assert.Equal(t, "a", p.Datasets[0].Name)
	assert.Equal(t, "b", p.Datasets[1].Name)
	assert.Nil(t, p.Owners)
	assert.Nil(t, p.Samples)
}

func TestLoadDomainAliases(t *testing.T) {
	fs := memfs.New()
	write(t, fs, "repo/domains.yaml", "- name: Finance\n  description: Money\n  schemaLocation: s3://fin\n")

	repo, err := Load(fs, "repo")
	require.NoError(t, err)
	assert.Equal(t, []products.Domain{{Name: "Finance", Description: "Money", Path: "s3://fin"}}, repo.Domains)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		check func(error) bool
	}{
		{
			name:  "missing domains file",
			files: map[string]string{"repo/x/readme.md": "x"},
			check: func(err error) bool { return err != nil },
		},
		{
			name:  "malformed domains file",
			files: map[string]string{"repo/domains.yaml": "- name: [unclosed\n"},
			check: func(err error) bool {
				var perr *errors.ParseError
				return errors.As(err, &perr)
			},
		},
		{
			name: "dataset metadata without query",
			files: map[string]string{
				"repo/domains.yaml":           "- name: Finance\n",
				"repo/p/metadata.yaml":        "name: P\ndomain: Finance\n",
				"repo/p/readme.md":            "P",
				"repo/p/datasets/orphan.yaml": "summary: no query\n",
			},
			check: func(err error) bool {
				var ioErr *errors.IOError
				return errors.As(err, &ioErr)
			},
		},
		{
			name: "missing readme",
			files: map[string]string{
				"repo/domains.yaml":    "- name: Finance\n",
				"repo/p/metadata.yaml": "name: P\ndomain: Finance\n",
			},
			check: func(err error) bool { return err != nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := memfs.New()
			for path, content := range tt.files {
				write(t, fs, path, content)
			}
			_, err := Load(fs, "repo")
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}

func TestDirName(t *testing.T) {
	assert.Equal(t, "monthly-revenue", DirName("Monthly Revenue"))
	assert.Equal(t, "leads", DirName("Leads"))
}
