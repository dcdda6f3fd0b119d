package generator

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/simonhull/devgenesis/internal/environment"
	"github.com/simonhull/devgenesis/internal/logging"
	"github.com/simonhull/devgenesis/internal/render"
	"github.com/simonhull/devgenesis/internal/workspace"
)

// State is a stage of the generation pipeline
type State int

const (
	StateIdle State = iota
	StateValidating
	StateInvalid
	StateStaging
	StateMaterializing
	StateVCS
	StateEnvironment
	StateCommands
	StateManifest
	StateCommitting
	StateDone
	StateRollingBack
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:          "idle",
	StateValidating:    "validating",
	StateInvalid:       "invalid",
	StateStaging:       "staging",
	StateMaterializing: "materializing",
	StateVCS:           "vcs",
	StateEnvironment:   "environment",
	StateCommands:      "commands",
	StateManifest:      "manifest",
	StateCommitting:    "committing",
	StateDone:          "done",
	StateRollingBack:   "rolling back",
	StateFailed:        "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether a run stops in s
func (s State) Terminal() bool {
	return s == StateDone || s == StateInvalid || s == StateFailed
}

// Step is one stage run inside the workspace. A failed Fatal step rolls the
// run back; any other failed step is reported as a warning.
type Step struct {
	Name  string
	State State
	Fatal bool
	run   func(context.Context, *run) error
}

var pipeline = []Step{
	{Name: "Project structure", State: StateMaterializing, Fatal: true, run: materialize},
	{Name: "Git initialization", State: StateVCS, Fatal: false, run: initRepository},
	{Name: "Environment creation", State: StateEnvironment, Fatal: false, run: provisionEnvironments},
	{Name: "Setup commands", State: StateCommands, Fatal: true, run: runCommands},
	{Name: "Project manifest", State: StateManifest, Fatal: true, run: writeManifest},
}

// Steps returns the pipeline steps in execution order
func Steps() []Step {
	return append([]Step(nil), pipeline...)
}

// run is the state of one Generate call
type run struct {
	req      Request
	opts     Options
	sink     Sink
	log      zerolog.Logger
	now      time.Time
	renderer *render.Renderer

	ws   *workspace.Workspace
	root string // Project root inside the workspace

	provisioners []environment.Provisioner // Matched by technology
	provisioned  []environment.Provisioner // Created in this run

	state  State
	events []Event
}

// Generate creates the project described by req. Events go to sink (which
// may be nil) as they happen and are also collected in the Outcome. On any
// fatal failure nothing is left at req.Path.
func Generate(ctx context.Context, req Request, sink Sink, opts Options) *Outcome {
	opts = opts.withDefaults()

	r := &run{
		req:  req,
		opts: opts,
		sink: sink,
		log:  opts.Logger.With().Str("component", "generator").Str("project", req.Name).Logger(),
		now:  opts.Now(),
	}
	r.renderer = newRenderer(req, opts)
	r.provisioners = opts.Registry.Match(req.TechnologyNames())

	r.emit(SeverityInfo, "Generating project %s", req.Name)

	r.transition(StateValidating)
	if err := ValidateRequest(req, opts); err != nil {
		for _, msg := range ValidateMessages(err) {
			r.emit(SeverityError, "%s", msg)
		}
		return r.finish(StateInvalid, err)
	}

	dest, _ := filepath.Abs(req.Path)

	r.transition(StateStaging)
	ws, err := workspace.Open(dest)
	if err != nil {
		err = &Error{Kind: KindFilesystem, Op: "create workspace", Err: err}
		r.emit(SeverityError, "Generation failed: %v", err)
		return r.finish(StateFailed, err)
	}
	r.ws = ws
	r.root = ws.Root()
	r.log.Debug().Str("workspace", ws.StagingDir()).Msg("opened workspace")

	for _, step := range pipeline {
		if err := ctx.Err(); err != nil {
			return r.rollback(err)
		}

		r.transition(step.State)
		done := logging.TimeOperation(&r.log, step.Name)
		err := step.run(ctx, r)
		done(err)
		if err != nil {
			if step.Fatal {
				return r.rollback(err)
			}
			r.emit(SeverityWarning, "%s skipped: %v", step.Name, err)
		}
	}

	r.transition(StateCommitting)
	if err := ws.Commit(dest); err != nil {
		return r.rollback(&Error{Kind: KindFilesystem, Op: "move project into " + dest, Err: err})
	}
	if err := ws.CleanupErr(); err != nil {
		r.emit(SeverityWarning, "Could not remove staging directory: %v", err)
	}

	r.relocate(dest)

	r.emit(SeveritySuccess, "Project %s created at %s", req.Name, dest)
	return r.finish(StateDone, nil)
}

// ValidateMessages returns the validation messages carried by err, if any
func ValidateMessages(err error) []string {
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	return ve.Messages()
}

// relocate fixes environments that recorded their staging location
func (r *run) relocate(dest string) {
	for _, p := range r.provisioned {
		relocator, ok := p.(environment.Relocator)
		if !ok {
			continue
		}
		if err := relocator.Relocate(r.root, dest); err != nil {
			r.emit(SeverityWarning, "Could not update %s environment paths: %v", p.Language(), err)
		}
	}
}

// rollback discards the workspace after a fatal failure
func (r *run) rollback(cause error) *Outcome {
	r.emit(SeverityError, "Generation failed: %v", cause)

	r.transition(StateRollingBack)
	if err := r.ws.Abort(); err != nil {
		rbErr := &Error{Kind: KindRollback, Op: "remove " + r.ws.StagingDir(), Err: err}
		r.log.Error().Err(err).Msg("rollback failed")
		r.emit(SeverityError, "%v", rbErr)
	} else {
		r.emit(SeverityInfo, "Rolled back: no files were left behind")
	}

	return r.finish(StateFailed, cause)
}

func (r *run) transition(s State) {
	r.log.Debug().Str("from", r.state.String()).Str("to", s.String()).Msg("transition")
	r.state = s
}

func (r *run) finish(s State, err error) *Outcome {
	r.transition(s)
	if err != nil {
		r.log.Error().Err(err).Msg("generation failed")
	} else {
		r.log.Info().Msg("generation complete")
	}

	dest, _ := filepath.Abs(r.req.Path)
	return &Outcome{
		Success: s == StateDone,
		State:   s,
		Path:    dest,
		Events:  r.events,
		Err:     err,
	}
}
