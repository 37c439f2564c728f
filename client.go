// Package sepdpc keeps the data products of a Starburst Enterprise catalog in
// sync with a repository of YAML and SQL files.
//
// A repository is a directory holding domains.yaml and one directory per data
// product. The client can write the remote catalog out as such a repository,
// validate one, show how the remote differs from it, and publish it so the
// remote converges to the local state.
//
// Example usage:
//
//	client, err := sepdpc.New(sepdpc.WithRemote(sep.New(host, user, token)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	delta, err := client.Diff(ctx, "./products")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(delta.Summary().TotalChanges, "changes")
//
//	result, err := client.Publish(ctx, "./products")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
package sepdpc

import (
	"context"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"

	"github.com/agentstation/sepdpc/internal/local"
	"github.com/agentstation/sepdpc/pkg/differ"
	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/logging"
	"github.com/agentstation/sepdpc/pkg/products"
	"github.com/agentstation/sepdpc/pkg/publish"
	"github.com/agentstation/sepdpc/pkg/remote"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client runs the repository workflows against one remote catalog.
type Client interface {
	// Generate writes the current remote state as a new repository at path.
	Generate(ctx context.Context, path string) (*products.Repository, error)

	// Validate loads the repository at path and checks its invariants.
	Validate(path string) (*products.Repository, error)

	// Diff returns the changes publishing the repository at path would make.
	Diff(ctx context.Context, path string) (*differ.Delta, error)

	// Publish makes the remote match the repository at path.
	Publish(ctx context.Context, path string, opts ...publish.Option) (*publish.Result, error)
}

type client struct {
	remote   remote.Client
	fs       billy.Filesystem
	absPaths bool
	logger   *zerolog.Logger
}

// New creates a client. A remote is only required by the operations that
// talk to it.
func New(opts ...Option) (Client, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &client{
		remote:   cfg.remote,
		fs:       cfg.fs,
		absPaths: cfg.absPaths,
		logger:   cfg.logger,
	}, nil
}

func (c *client) Generate(ctx context.Context, path string) (*products.Repository, error) {
	rc, err := c.requireRemote()
	if err != nil {
		return nil, err
	}
	root, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	ctx = logging.WithLogger(ctx, c.logger)
	repo, err := remote.Snapshot(ctx, rc)
	if err != nil {
		return nil, err
	}
	if err := local.Persist(c.fs, root, repo); err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("path", root).
		Int("domains", len(repo.Domains)).
		Int("products", len(repo.Products)).
		Msg("Generated repository from remote")
	return repo, nil
}

func (c *client) Validate(path string) (*products.Repository, error) {
	repo, err := c.load(path)
	if err != nil {
		return nil, err
	}
	if err := products.Validate(repo); err != nil {
		return nil, err
	}
	return repo, nil
}

func (c *client) Diff(ctx context.Context, path string) (*differ.Delta, error) {
	rc, err := c.requireRemote()
	if err != nil {
		return nil, err
	}
	repo, err := c.Validate(path)
	if err != nil {
		return nil, err
	}

	current, err := remote.Snapshot(logging.WithLogger(ctx, c.logger), rc)
	if err != nil {
		return nil, err
	}
	return differ.Diff(current, repo)
}

func (c *client) Publish(ctx context.Context, path string, opts ...publish.Option) (*publish.Result, error) {
	rc, err := c.requireRemote()
	if err != nil {
		return nil, err
	}
	repo, err := c.load(path)
	if err != nil {
		return nil, err
	}

	opts = append([]publish.Option{publish.WithLogger(c.logger)}, opts...)
	return publish.New(rc, opts...).Publish(ctx, repo)
}

func (c *client) load(path string) (*products.Repository, error) {
	root, err := c.resolve(path)
	if err != nil {
		return nil, err
	}
	return local.Load(c.fs, root)
}

// resolve makes path absolute when the client works on the host filesystem.
func (c *client) resolve(path string) (string, error) {
	if path == "" {
		return "", errors.NewConfigError("client", "repository path is required", nil)
	}
	if !c.absPaths {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.WrapIO("resolve", path, err)
	}
	return abs, nil
}

func (c *client) requireRemote() (remote.Client, error) {
	if c.remote == nil {
		return nil, errors.NewConfigError("client", "no remote catalog configured", nil)
	}
	return c.remote, nil
}
