// Package publish pushes a local product repository to a Starburst server.
//
// A run validates the local repository, snapshots the remote, computes the
// delta from remote to local and applies it in seven fixed steps (see
// Order). The first failing remote call aborts the run; completed steps are
// not rolled back.
package publish

import (
	"context"
	"fmt"

	"github.com/agentstation/sepdpc/pkg/differ"
	"github.com/agentstation/sepdpc/pkg/logging"
	"github.com/agentstation/sepdpc/pkg/products"
	"github.com/agentstation/sepdpc/pkg/remote"
)

// Publisher applies local repositories to a remote.
type Publisher struct {
	client remote.Client
	opts   *Options
}

// New creates a Publisher for the given remote.
func New(client remote.Client, opts ...Option) *Publisher {
	return &Publisher{
		client: client,
		opts:   Defaults().Apply(opts...),
	}
}

// Result reports what a publish run did.
type Result struct {
	Delta     *differ.Delta // Delta from remote to local
	Completed []string      // Steps that finished, in order
	DryRun    bool          // Whether the remote was left untouched
}

// HasChanges returns true if the delta contains any operation.
func (r *Result) HasChanges() bool {
	return r.Delta != nil && !r.Delta.IsEmpty()
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	if !r.HasChanges() {
		return "No changes detected"
	}
	s := r.Delta.Summary()
	summary := fmt.Sprintf("domains: %d created, %d updated, %d deleted; products: %d created, %d updated, %d reassigned, %d deleted",
		s.DomainsCreated, s.DomainsUpdated, s.DomainsDeleted,
		s.ProductsCreated, s.ProductsUpdated, s.ProductsReassigned, s.ProductsDeleted)
	if r.DryRun {
		summary += " (Dry run)"
	}
	return summary
}

// Publish makes the remote match local. On a step failure the returned
// Result lists the steps that completed before it, and the error is a
// *errors.StepError.
func (p *Publisher) Publish(ctx context.Context, local *products.Repository) (*Result, error) {
	if err := products.Validate(local); err != nil {
		return nil, err
	}

	logger := p.opts.Logger
	ctx = logging.WithLogger(ctx, logger)

	current, err := remote.Snapshot(ctx, p.client)
	if err != nil {
		return nil, err
	}

	delta, err := differ.Diff(current, local)
	if err != nil {
		return nil, err
	}

	if p.opts.DryRun {
		logger.Info().Int("changes", delta.Summary().TotalChanges).Msg("Dry run, remote left untouched")
		return &Result{Delta: delta, Completed: []string{}, DryRun: true}, nil
	}

	return p.Apply(ctx, delta, current.DomainIDs())
}

// Apply runs the publish steps for a precomputed delta. ids maps the names
// of domains that already exist remotely to their IDs; it is extended with
// the domains created along the way.
func (p *Publisher) Apply(ctx context.Context, delta *differ.Delta, ids map[string]string) (*Result, error) {
	ctx = logging.WithLogger(ctx, p.opts.Logger)
	x := &executor{
		client: p.client,
		opts:   p.opts,
		ids:    make(map[string]string, len(ids)),
	}
	for name, id := range ids {
		x.ids[name] = id
	}

	result := &Result{Delta: delta, Completed: []string{}}
	for _, step := range Steps(delta) {
		if len(step.Entities) > 0 {
			p.opts.Logger.Info().
				Str("step", step.Name).
				Int("count", len(step.Entities)).
				Msg("Running publish step")
		}
		if err := step.run(logging.WithStep(ctx, step.Name), x); err != nil {
			p.opts.Logger.Error().Err(err).Str("step", step.Name).Msg("Publish step failed")
			return result, err
		}
		result.Completed = append(result.Completed, step.Name)
	}

	p.opts.Logger.Info().Msg(result.Summary())
	return result, nil
}
