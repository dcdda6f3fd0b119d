package generator

import (
	"context"
	"errors"

	"github.com/simonhull/devgenesis/internal/environment"
)

// provisionEnvironments creates an environment for each technology the
// registry knows. Failures are returned together; the run goes on without
// the failed environments.
func provisionEnvironments(ctx context.Context, r *run) error {
	if !r.req.CreateEnv {
		return nil
	}
	if len(r.provisioners) == 0 {
		r.log.Debug().Strs("technologies", r.req.TechnologyNames()).Msg("no environment provisioner matched")
		return nil
	}

	executor := r.opts.Executor.WithTimeout(r.opts.CommandTimeout)

	var errs []error
	for _, p := range r.provisioners {
		r.emit(SeverityInfo, "Creating %s environment: %s", p.Language(), p.Command())

		if err := p.Provision(ctx, executor, r.root); err != nil {
			kind := KindCommand
			if errors.Is(err, environment.ErrToolUnavailable) {
				kind = KindToolUnavailable
			}
			errs = append(errs, &Error{Kind: kind, Op: p.Language() + " environment", Err: err})
			continue
		}

		r.provisioned = append(r.provisioned, p)
		r.emit(SeveritySuccess, "Created %s environment in %s", p.Language(), p.Dir())
	}

	return errors.Join(errs...)
}
