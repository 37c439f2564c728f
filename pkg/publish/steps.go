package publish

import (
	"context"

	"github.com/agentstation/sepdpc/pkg/differ"
	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/logging"
	"github.com/agentstation/sepdpc/pkg/products"
	"github.com/agentstation/sepdpc/pkg/remote"
)

// Step names, in execution order.
const (
	StepDeleteProducts   = "delete-products"
	StepCreateDomains    = "create-domains"
	StepReassignProducts = "reassign-products"
	StepDeleteDomains    = "delete-domains"
	StepUpdateProducts   = "update-products"
	StepUpdateDomains    = "update-domains"
	StepCreateProducts   = "create-products"
)

// Order is the fixed step order. Products leave a domain before it is
// deleted, and a domain exists before any product is moved into it.
var Order = []string{
	StepDeleteProducts,
	StepCreateDomains,
	StepReassignProducts,
	StepDeleteDomains,
	StepUpdateProducts,
	StepUpdateDomains,
	StepCreateProducts,
}

// Step is one phase of a publish run.
type Step struct {
	Name     string
	Entities []string // names of the domains or products the step touches

	run func(ctx context.Context, x *executor) error
}

// Steps returns the seven publish steps for a delta, in Order. Steps with no
// entities are included so callers can report them.
func Steps(delta *differ.Delta) []Step {
	return []Step{
		{
			Name:     StepDeleteProducts,
			Entities: productNames(delta.DeletedProducts),
			run: func(ctx context.Context, x *executor) error {
				return eachOf(ctx, x, StepDeleteProducts, delta.DeletedProducts, func(p products.Product) error {
					return x.client.Products().Delete(ctx, p.ID)
				})
			},
		},
		{
			Name:     StepCreateDomains,
			Entities: domainNames(delta.CreatedDomains),
			run: func(ctx context.Context, x *executor) error {
				return eachOf(ctx, x, StepCreateDomains, delta.CreatedDomains, func(d products.Domain) error {
					d.ID = ""
					created, err := x.client.Domains().Create(ctx, remote.ToDomain(d))
					if err != nil {
						return err
					}
					x.ids[created.Name] = created.ID
					return nil
				})
			},
		},
		{
			Name:     StepReassignProducts,
			Entities: productNames(delta.ReassignedProducts),
			run: func(ctx context.Context, x *executor) error {
				return eachOf(ctx, x, StepReassignProducts, delta.ReassignedProducts, func(p products.Product) error {
					domainID, err := x.domainID(p.Domain)
					if err != nil {
						return err
					}
					return x.client.Products().Reassign(ctx, p.ID, domainID)
				})
			},
		},
		{
			Name:     StepDeleteDomains,
			Entities: domainNames(delta.DeletedDomains),
			run: func(ctx context.Context, x *executor) error {
				return eachOf(ctx, x, StepDeleteDomains, delta.DeletedDomains, func(d products.Domain) error {
					return x.client.Domains().Delete(ctx, d.ID)
				})
			},
		},
		{
			Name:     StepUpdateProducts,
			Entities: productNames(delta.UpdatedProducts),
			run: func(ctx context.Context, x *executor) error {
				return eachOf(ctx, x, StepUpdateProducts, delta.UpdatedProducts, func(p products.Product) error {
					return x.upsert(ctx, p, x.client.Products().Update)
				})
			},
		},
		{
			Name:     StepUpdateDomains,
			Entities: domainNames(delta.UpdatedDomains),
			run: func(ctx context.Context, x *executor) error {
				return eachOf(ctx, x, StepUpdateDomains, delta.UpdatedDomains, func(d products.Domain) error {
					_, err := x.client.Domains().Update(ctx, remote.ToDomain(d))
					return err
				})
			},
		},
		{
			Name:     StepCreateProducts,
			Entities: productNames(delta.CreatedProducts),
			run: func(ctx context.Context, x *executor) error {
				return eachOf(ctx, x, StepCreateProducts, delta.CreatedProducts, func(p products.Product) error {
					p.ID = ""
					return x.upsert(ctx, p, x.client.Products().Create)
				})
			},
		},
	}
}

// executor carries the state shared by the steps of one run.
type executor struct {
	client remote.Client
	opts   *Options
	ids    map[string]string // domain name to remote ID
}

type named interface {
	Key() string
}

// eachOf applies fn to every entity, emitting progress and wrapping the
// first failure in a StepError.
func eachOf[T named](ctx context.Context, x *executor, step string, entities []T, fn func(T) error) error {
	for i, e := range entities {
		if err := ctx.Err(); err != nil {
			return errors.NewStepError(step, e.Key(), err)
		}
		if x.opts.Progress != nil {
			x.opts.Progress(Event{Step: step, Entity: e.Key(), Index: i + 1, Total: len(entities)})
		}
		logging.FromContext(ctx).Debug().
			Str("entity", e.Key()).
			Msg("Applying remote mutation")
		if err := fn(e); err != nil {
			return errors.NewStepError(step, e.Key(), err)
		}
	}
	return nil
}

func (x *executor) domainID(name string) (string, error) {
	id, ok := x.ids[name]
	if !ok || id == "" {
		return "", errors.NewNotFoundError("domain", name)
	}
	return id, nil
}

type writeFunc func(context.Context, remote.DataProduct) (*remote.DataProduct, error)

// upsert writes the product, then its tags and samples when it has any, and
// finally publishes it.
func (x *executor) upsert(ctx context.Context, p products.Product, write writeFunc) error {
	domainID, err := x.domainID(p.Domain)
	if err != nil {
		return err
	}

	dp, err := write(ctx, remote.ToDataProduct(p, domainID))
	if err != nil {
		return err
	}

	if len(p.Tags) > 0 {
		if err := x.client.Products().SetTags(ctx, dp.ID, remote.NewTags(p.Tags)); err != nil {
			return err
		}
	}
	if len(p.Samples) > 0 {
		if err := x.client.Products().SetSamples(ctx, dp.ID, p.Samples); err != nil {
			return err
		}
	}

	return x.client.Products().Publish(ctx, dp.ID)
}

func domainNames(domains []products.Domain) []string {
	names := make([]string, 0, len(domains))
	for _, d := range domains {
		names = append(names, d.Name)
	}
	return names
}

func productNames(prods []products.Product) []string {
	names := make([]string, 0, len(prods))
	for _, p := range prods {
		names = append(names, p.Name)
	}
	return names
}
