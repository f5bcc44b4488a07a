// Package report renders human-readable summaries of attractors and
// trajectories for the cmds. Text only; no decisions are made here.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ohana-garden/moral-manifold/internal/attractor"
	"github.com/ohana-garden/moral-manifold/internal/manifold"
	"github.com/ohana-garden/moral-manifold/internal/trajectory"
)

// #region attractors
// AttractorTable renders one row per attractor.
func AttractorTable(attractors []attractor.Attractor) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-8s  %6s  %8s  %8s  %10s\n",
		"Cluster", "Size", "Radius", "Hub", "Foundation"))
	b.WriteString(fmt.Sprintf("%-8s  %6s  %8s  %8s  %10s\n",
		"--------", "------", "--------", "--------", "----------"))
	for _, a := range attractors {
		b.WriteString(fmt.Sprintf("%-8d  %6d  %8.4f  %8.4f  %10.4f\n",
			a.ClusterID, a.Size, a.Radius,
			a.Centroid[manifold.Unity], a.Centroid[manifold.Truthfulness]))
	}
	return b.String()
}

// StabilityBlock renders an attractor's stability metrics, keys sorted
// for stable output.
func StabilityBlock(a attractor.Attractor) string {
	metrics := attractor.StabilityMetrics(a)
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("cluster %d (%d members)\n", a.ClusterID, a.Size))
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("  %-20s %.4f\n", k, metrics[k]))
	}
	return b.String()
}

// ClassificationBlock renders the 3-band classification.
func ClassificationBlock(buckets map[attractor.Category][]attractor.Attractor) string {
	var b strings.Builder
	for _, cat := range []attractor.Category{
		attractor.CategoryIntegrated,
		attractor.CategoryDeveloping,
		attractor.CategoryFragmented,
	} {
		ids := make([]string, 0, len(buckets[cat]))
		for _, a := range buckets[cat] {
			ids = append(ids, fmt.Sprintf("%d", a.ClusterID))
		}
		label := "(none)"
		if len(ids) > 0 {
			label = strings.Join(ids, ", ")
		}
		b.WriteString(fmt.Sprintf("%-12s %s\n", cat, label))
	}
	return b.String()
}

// #endregion attractors

// #region trajectory
// TrajectorySummary renders count, time span, and path length for one
// agent's trajectory.
func TrajectorySummary(agentID string, points []trajectory.TimedPoint) string {
	if len(points) == 0 {
		return fmt.Sprintf("%s: no points\n", agentID)
	}
	return fmt.Sprintf("%s: %d points, span %.1fs, path length %.4f\n",
		agentID,
		len(points),
		points[len(points)-1].Timestamp-points[0].Timestamp,
		trajectory.PathLength(points),
	)
}

// #endregion trajectory
