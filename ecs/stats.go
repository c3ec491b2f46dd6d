package ecs

import (
	"cmp"
	"slices"
)

// WorldStats is a point-in-time summary of a world's contents.
type WorldStats struct {
	TotalEntityCount   int
	ComponentBreakdown []ComponentStats
	SingletonCount     int
	SingletonTypes     []string
	PendingRemovals    int
}

// ComponentStats counts the entities holding one component kind.
type ComponentStats struct {
	Key         string
	TypeName    string
	EntityCount int
}

// CollectStats gathers entity, component and singleton counts. Component rows are sorted by key.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		TotalEntityCount: w.alive,
		SingletonCount:   len(w.singletons),
		PendingRemovals:  len(w.pending),
	}

	for t, column := range w.columns {
		if column.Len() == 0 {
			continue
		}
		key, _ := w.registry.Key(t)
		stats.ComponentBreakdown = append(stats.ComponentBreakdown, ComponentStats{
			Key:         key,
			TypeName:    t.String(),
			EntityCount: column.Len(),
		})
	}
	slices.SortFunc(stats.ComponentBreakdown, func(a, b ComponentStats) int {
		return cmp.Or(cmp.Compare(a.Key, b.Key), cmp.Compare(a.TypeName, b.TypeName))
	})

	for t := range w.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	slices.Sort(stats.SingletonTypes)
	return stats
}
