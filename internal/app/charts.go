package service

import (
	"context"
	"time"

	"github.com/okian/deckgen/internal/adapters/render/pptx"
	"github.com/okian/deckgen/internal/domain/model"
	"github.com/okian/deckgen/pkg/metrics"
)

// timedCharts records rasterisation latency per chart type.
type timedCharts struct {
	next pptx.ChartRasterizer
}

func (t timedCharts) Render(ctx context.Context, ch *model.Chart, w, h float64) ([]byte, error) {
	start := time.Now()
	img, err := t.next.Render(ctx, ch, w, h)
	if err != nil {
		metrics.RecordErrorByComponent("chart", string(ch.Type))
		return nil, err
	}
	metrics.RecordChartLatency(string(ch.Type), float64(time.Since(start).Microseconds())/1000)
	return img, nil
}
