package tree

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	AVLTreeStatsName = "xtree/avl"
)

// avlStats records the rebalancing work. A nil *avlStats records nothing.
type avlStats struct {
	rotations     metric.Int64Counter
	restructures  metric.Int64Counter
	entryCount    metric.Int64UpDownCounter
	singleRotAttr metric.AddOption
	doubleRotAttr metric.AddOption
}

func (stats *avlStats) IncreaseRotationCount() {
	if stats == nil {
		return
	}
	stats.rotations.Add(context.Background(), 1)
}

func (stats *avlStats) IncreaseRestructureCount(double bool) {
	if stats == nil {
		return
	}
	if double {
		stats.restructures.Add(context.Background(), 1, stats.doubleRotAttr)
		return
	}
	stats.restructures.Add(context.Background(), 1, stats.singleRotAttr)
}

func (stats *avlStats) RecordEntryCount(delta int64) {
	if stats == nil || delta == 0 {
		return
	}
	stats.entryCount.Add(context.Background(), delta)
}

func newAVLStats(name string) *avlStats {
	meter := otel.Meter(fmt.Sprintf("%s/%s", AVLTreeStatsName, name))
	return &avlStats{
		rotations: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.avl.rotation.count",
			metric.WithDescription("The number of single rotations applied by the AVL tree."),
		)),
		restructures: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.avl.restructure.count",
			metric.WithDescription("The number of trinode restructurings applied by the AVL tree."),
		)),
		entryCount: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"xtree.avl.entry.count",
			metric.WithDescription("The number of entries in the AVL tree."),
		)),
		singleRotAttr: metric.WithAttributeSet(attribute.NewSet(attribute.String("xtree.avl.restructure.kind", "single"))),
		doubleRotAttr: metric.WithAttributeSet(attribute.NewSet(attribute.String("xtree.avl.restructure.kind", "double"))),
	}
}
