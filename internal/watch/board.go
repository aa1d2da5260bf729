package watch

import (
	"context"
	"time"

	"github.com/rileyhilliard/ntxmon/internal/stats"
	"github.com/rileyhilliard/ntxmon/internal/table"
)

// Board collects every entity and renders the full table.
type Board struct {
	collector *stats.Collector
	entities  []stats.Entity
	renderer  *table.Renderer
	now       func() time.Time
}

// NewBoard creates a board for entities in display order.
func NewBoard(collector *stats.Collector, entities []stats.Entity, renderer *table.Renderer) *Board {
	return &Board{
		collector: collector,
		entities:  entities,
		renderer:  renderer,
		now:       time.Now,
	}
}

// SetClock replaces the time source used for the footer.
func (b *Board) SetClock(now func() time.Time) {
	b.now = now
}

// Collect gathers one result per entity.
func (b *Board) Collect(ctx context.Context) []stats.Result {
	return b.collector.Collect(ctx, b.entities)
}

// Format renders results as a table with a timestamp footer.
func (b *Board) Format(results []stats.Result) string {
	now := b.now()
	return b.renderer.Render(stats.Rows(results), now, stats.LastMinedAnnotation(results, now))
}

// Refresh collects and renders in one step.
func (b *Board) Refresh(ctx context.Context) string {
	return b.Format(b.Collect(ctx))
}
