package dashboard

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Backend is everything the dashboard needs from the backend.
// *backend.Client satisfies it.
type Backend interface {
	StateSource
	ListingSource
	InitSubmitter
}

// Dashboard wires the synchronizer, the navigator and the init workflow to
// one backend.
type Dashboard struct {
	Sync *Synchronizer
	Nav  *Navigator
	Init *Workflow

	logger *zap.Logger
}

func New(b Backend, opts ...Option) *Dashboard {
	o := buildOptions(opts)
	d := &Dashboard{logger: o.logger}
	d.Sync = NewSynchronizer(b, opts...)
	d.Nav = NewNavigator(b, opts...)
	d.Init = NewWorkflow(b, d, opts...)
	return d
}

// Activate starts polling and arms post-init refreshes under ctx. A
// dashboard can be activated again after Deactivate.
func (d *Dashboard) Activate(ctx context.Context) error {
	if err := d.Sync.Activate(ctx); err != nil {
		return err
	}
	d.Init.Open(ctx)
	return nil
}

// Deactivate stops polling and cancels any pending or running post-init
// refresh. It returns once none of them can publish a result.
func (d *Dashboard) Deactivate() {
	d.Sync.Deactivate()
	d.Init.Close()
}

// LoadRoot lists the root of the remote tree.
func (d *Dashboard) LoadRoot(ctx context.Context) error {
	return d.Nav.Open(ctx, "")
}

// RefreshAfterInit refreshes the document state, the project info and the
// root listing once, concurrently.
func (d *Dashboard) RefreshAfterInit(ctx context.Context) {
	var wg sync.WaitGroup
	run := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
				d.logger.Debug("post-init refresh failed", zap.String("resource", name), zap.Error(err))
			}
		}()
	}

	run(resourceDocument, d.Sync.RefreshDocumentState)
	run(resourceInfo, d.Sync.RefreshProjectInfo)
	run("listing", d.LoadRoot)
	wg.Wait()
}
