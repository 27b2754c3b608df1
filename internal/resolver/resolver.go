// Package resolver decides which figure is shown: a loaded model when one
// is available, otherwise the procedural mannequin.
package resolver

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/posecraft/internal/logger"
	"github.com/Faultbox/posecraft/internal/scene"
)

// Loader turns an asset reference (file path or URL) into a hierarchy.
type Loader interface {
	Load(ctx context.Context, src string) (*scene.Hierarchy, error)
}

// Request describes one model resolution.
type Request struct {
	// Source is the asset reference. Empty means "use the mannequin".
	Source string
	// Explicit marks a source the user picked. Failures are returned
	// instead of falling back.
	Explicit bool
}

// Purpose tells the frame loop what to do with a finished load.
type Purpose int

const (
	// PurposeModel replaces the figure.
	PurposeModel Purpose = iota
	// PurposeProp adds an object next to the figure.
	PurposeProp
)

// Result is a finished asynchronous load.
type Result struct {
	Generation uint64
	Purpose    Purpose
	Request    Request
	Hierarchy  *scene.Hierarchy
	Err        error
}

// Resolver loads figures. Resolve may be called from any goroutine;
// ResolveAsync, LoadPropAsync and Poll belong to the frame loop.
type Resolver struct {
	loader  Loader
	log     *zap.Logger
	results chan Result
	wg      sync.WaitGroup

	// generation of the newest model request and of the newest model
	// handed out by Poll; owned by the frame loop.
	generation uint64
	installed  uint64
}

// New creates a resolver backed by loader.
func New(loader Loader) *Resolver {
	return &Resolver{
		loader:  loader,
		log:     logger.Named("resolver"),
		results: make(chan Result, 16),
	}
}

// Resolve returns the hierarchy for req. A failed implicit load falls back
// to the mannequin; a failed explicit load returns the error.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*scene.Hierarchy, error) {
	if req.Source == "" {
		r.log.Info("no model source, building mannequin")
		return Mannequin(), nil
	}

	h, err := r.loader.Load(ctx, req.Source)
	if err == nil {
		return h, nil
	}
	if req.Explicit {
		return nil, fmt.Errorf("loading %s: %w", req.Source, err)
	}

	r.log.Warn("model unavailable, falling back to mannequin",
		zap.String("source", req.Source),
		zap.Error(err),
	)
	return Mannequin(), nil
}

// ResolveAsync starts resolving req in the background and returns its
// generation. Earlier model requests become stale once a newer one succeeds.
func (r *Resolver) ResolveAsync(ctx context.Context, req Request) uint64 {
	r.generation++
	gen := r.generation

	r.log.Debug("model load started",
		zap.Uint64("generation", gen),
		zap.String("source", req.Source),
		zap.Bool("explicit", req.Explicit),
	)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		h, err := r.Resolve(ctx, req)
		r.deliver(ctx, Result{
			Generation: gen,
			Purpose:    PurposeModel,
			Request:    req,
			Hierarchy:  h,
			Err:        err,
		})
	}()
	return gen
}

// LoadPropAsync loads an extra object in the background. Props never
// replace the figure, so they are not generation checked.
func (r *Resolver) LoadPropAsync(ctx context.Context, src string) {
	req := Request{Source: src, Explicit: true}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		h, err := r.loader.Load(ctx, src)
		if err != nil {
			err = fmt.Errorf("loading prop %s: %w", src, err)
		}
		r.deliver(ctx, Result{
			Purpose:   PurposeProp,
			Request:   req,
			Hierarchy: h,
			Err:       err,
		})
	}()
}

func (r *Resolver) deliver(ctx context.Context, res Result) {
	select {
	case r.results <- res:
	case <-ctx.Done():
	}
}

// Poll drains finished loads without blocking. A model result is dropped
// once a newer model load has succeeded; a failed load does not make older
// pending loads stale.
func (r *Resolver) Poll() []Result {
	var batch []Result
	newest := r.installed
drain:
	for {
		select {
		case res := <-r.results:
			batch = append(batch, res)
			if res.Purpose == PurposeModel && res.Err == nil && res.Generation > newest {
				newest = res.Generation
			}
		default:
			break drain
		}
	}
	r.installed = newest

	var out []Result
	for _, res := range batch {
		if res.Purpose == PurposeModel && res.Generation < newest {
			r.log.Debug("discarding stale model load",
				zap.Uint64("generation", res.Generation),
				zap.Uint64("installed", newest),
				zap.String("source", res.Request.Source),
			)
			continue
		}
		out = append(out, res)
	}
	return out
}

// Wait blocks until every background load has delivered or given up.
func (r *Resolver) Wait() {
	r.wg.Wait()
}
