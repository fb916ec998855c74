package dashboard

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/spektr-org/chartkit/dataset"
	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// BUILD — Resolves every chart of a Document into a Panel
// ============================================================================
// Datasets load once each, on first use, and are shared read-only by every
// chart that names them. Charts resolve concurrently; panels come back in
// document order. Only cancellation and unknown chart ids fail the build as
// a whole; everything else is reported on the panel.
// ============================================================================

// Build resolves the document's charts.
func Build(ctx context.Context, doc *Document, opts ...Option) ([]Panel, error) {
	cfg := applyOptions(opts)

	charts := make([]Chart, 0, len(doc.Charts))
	for _, c := range doc.Charts {
		if len(cfg.Only) == 0 || cfg.Only[c.ID] {
			charts = append(charts, c)
		}
	}
	for id := range cfg.Only {
		if _, ok := doc.Chart(id); !ok {
			return nil, fmt.Errorf("unknown chart id %q", id)
		}
	}

	loader := newDatasetCache(doc)
	panels := make([]Panel, len(charts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, c := range charts {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			panels[i] = buildPanel(c, loader)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !cfg.Quiet {
		failed := 0
		for _, p := range panels {
			if !p.OK() {
				failed++
				log.Printf("⚠️  chartkit: panel %q not drawn: %v", p.ID, p.Err)
			}
		}
		log.Printf("📊 chartkit: %q resolved %d/%d panels", doc.Title, len(panels)-failed, len(panels))
	}

	return panels, nil
}

func buildPanel(c Chart, loader *datasetCache) Panel {
	p := Panel{ID: c.ID, Title: c.Title, Dataset: c.Dataset}
	if p.Title == "" {
		p.Title = c.ID
	}

	ds, err := loader.get(c.Dataset)
	if err != nil {
		p.Err = err
		p.Message = Explain(err, c.Dataset)
		return p
	}
	if c.Query != nil {
		if ds, err = c.Query.Apply(ds); err != nil {
			p.Err = err
			p.Message = Explain(err, c.Dataset)
			return p
		}
	}

	spec := c.ChartSpec
	if spec.Title == "" {
		spec.Title = p.Title
	}
	plan, err := engine.Resolve(ds, spec)
	if err != nil {
		p.Err = err
		p.Message = Explain(err, c.Dataset)
		return p
	}
	p.Plan = plan
	return p
}

// datasetCache loads each named dataset at most once.
type datasetCache struct {
	doc *Document
	mu  sync.Mutex
	m   map[string]*cacheEntry
}

type cacheEntry struct {
	once sync.Once
	ds   *dataset.Dataset
	err  error
}

func newDatasetCache(doc *Document) *datasetCache {
	return &datasetCache{doc: doc, m: make(map[string]*cacheEntry)}
}

func (c *datasetCache) get(name string) (*dataset.Dataset, error) {
	c.mu.Lock()
	e, ok := c.m[name]
	if !ok {
		e = &cacheEntry{}
		c.m[name] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.ds, e.err = c.doc.loadDataset(name)
	})
	return e.ds, e.err
}
