// Package service builds presentations from deck descriptions. It ties
// the loader, the layout expansion, the renderers and the build ledger
// together and is shared by the CLI and the HTTP API.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/deckgen/internal/adapters/render/pptx"
	"github.com/okian/deckgen/internal/adapters/render/workbook"
	"github.com/okian/deckgen/internal/adapters/repository"
	"github.com/okian/deckgen/internal/deckfile"
	"github.com/okian/deckgen/internal/domain/layout"
	"github.com/okian/deckgen/internal/domain/model"
	"github.com/okian/deckgen/pkg/logger"
	"github.com/okian/deckgen/pkg/metrics"
)

const (
	outputMode      = 0o644
	workbookSuffix  = ".data.xlsx"
	metricComponent = "build"
)

// Renderer encodes a plan into a presentation file.
type Renderer interface {
	Render(ctx context.Context, p *layout.Plan) ([]byte, error)
}

// WorkbookWriter encodes the chart data of a plan into a spreadsheet.
type WorkbookWriter func(ctx context.Context, p *layout.Plan) ([]byte, error)

// Request names one deck to build.
type Request struct {
	// Deck is a YAML or JSON description; empty selects the embedded deck.
	Deck string
	// Output overrides the file name from the description. Relative
	// names are placed under the output directory.
	Output string
	// Workbook also writes the chart data workbook next to the deck.
	Workbook bool
}

// Result describes a finished build.
type Result struct {
	BuildID      string        `json:"build_id"`
	Deck         string        `json:"deck"`
	Path         string        `json:"path"`
	Bytes        int           `json:"bytes"`
	SHA256       string        `json:"sha256"`
	Slides       int           `json:"slides"`
	Elements     int           `json:"elements"`
	Counts       layout.Counts `json:"counts"`
	Duration     time.Duration `json:"duration"`
	WorkbookPath string        `json:"workbook_path,omitempty"`
}

// Service builds decks.
type Service struct {
	renderer   Renderer
	rasterizer pptx.ChartRasterizer
	workbook   WorkbookWriter
	ledger     repository.Ledger

	outputDir       string
	workers         int
	dataWorkbook    bool
	metricsTextfile string

	active atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRenderer replaces the PPTX renderer.
func WithRenderer(r Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithRasterizer makes the default renderer embed charts as pictures
// drawn by r instead of native chart parts. It has no effect when
// WithRenderer is also given.
func WithRasterizer(r pptx.ChartRasterizer) Option {
	return func(s *Service) {
		if r != nil {
			s.rasterizer = r
		}
	}
}

// WithWorkbookWriter replaces the chart data workbook writer.
func WithWorkbookWriter(w WorkbookWriter) Option {
	return func(s *Service) {
		if w != nil {
			s.workbook = w
		}
	}
}

// WithLedger records every successful build in l.
func WithLedger(l repository.Ledger) Option {
	return func(s *Service) {
		s.ledger = l
	}
}

// WithOutputDir sets the directory relative output names resolve against.
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.outputDir = dir
		}
	}
}

// WithWorkers bounds the number of decks BuildAll renders at once.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithDataWorkbook writes the chart data workbook for every build.
func WithDataWorkbook(on bool) Option {
	return func(s *Service) {
		s.dataWorkbook = on
	}
}

// WithMetricsTextfile exports the metrics registry to path after each
// build, in the node exporter textfile format.
func WithMetricsTextfile(path string) Option {
	return func(s *Service) {
		s.metricsTextfile = path
	}
}

// New constructs a Service. Without WithRenderer it renders PPTX with
// native charts.
func New(opts ...Option) *Service {
	s := &Service{
		workbook:  workbook.Write,
		outputDir: ".",
		workers:   runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.renderer == nil {
		ropts := []pptx.Option{pptx.WithLogger(s.logger.Named("pptx"))}
		if s.rasterizer != nil {
			ropts = append(ropts, pptx.WithChartImages(timedCharts{next: s.rasterizer}))
		}
		s.renderer = pptx.New(ropts...)
	}
	return s
}

// Validate loads and expands the deck of req and checks it against the
// canvas without rendering.
func (s *Service) Validate(ctx context.Context, req Request) (*layout.Plan, error) {
	d, err := deckfile.Load(ctx, req.Deck)
	if err != nil {
		return nil, s.fail(ctx, ErrLoad, err)
	}
	if err := d.Validate(); err != nil {
		return nil, s.fail(ctx, ErrValidate, err)
	}
	p, err := layout.Expand(d)
	if err != nil {
		return nil, s.fail(ctx, ErrLayout, err)
	}
	if err := p.Validate(); err != nil {
		return nil, s.fail(ctx, ErrValidate, err)
	}
	return p, nil
}

// Render builds the deck of req in memory.
func (s *Service) Render(ctx context.Context, req Request) ([]byte, *layout.Plan, error) {
	p, err := s.Validate(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.renderer.Render(ctx, p)
	if err != nil {
		return nil, nil, s.fail(ctx, ErrRender, err)
	}
	return b, p, nil
}

// Workbook renders the chart data workbook of req in memory.
func (s *Service) Workbook(ctx context.Context, req Request) ([]byte, *layout.Plan, error) {
	p, err := s.Validate(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.workbook(ctx, p)
	if err != nil {
		return nil, nil, s.fail(ctx, ErrWorkbook, err)
	}
	return b, p, nil
}

// Build renders the deck of req, writes it to disk and records the build.
// The deck and its workbook are both encoded before either is written,
// so an encoding failure leaves no output behind.
func (s *Service) Build(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	b, p, err := s.Render(ctx, req)
	if err != nil {
		return nil, err
	}

	var wb []byte
	withWorkbook := req.Workbook || s.dataWorkbook
	if withWorkbook {
		if wb, err = s.workbook(ctx, p); err != nil {
			return nil, s.fail(ctx, ErrWorkbook, err)
		}
	}

	path := s.outputPath(req.Output, p.Output)
	if err := writeFile(path, b, outputMode); err != nil {
		return nil, s.fail(ctx, ErrWrite, fmt.Errorf("%s: %w", path, err))
	}

	counts := p.Counts()
	sum := sha256.Sum256(b)
	res := &Result{
		BuildID:  uuid.NewString(),
		Deck:     p.Title,
		Path:     path,
		Bytes:    len(b),
		SHA256:   hex.EncodeToString(sum[:]),
		Slides:   counts.Slides,
		Elements: counts.Elements(),
		Counts:   counts,
	}

	if withWorkbook {
		res.WorkbookPath = strings.TrimSuffix(path, filepath.Ext(path)) + workbookSuffix
		if err := writeFile(res.WorkbookPath, wb, outputMode); err != nil {
			return nil, s.fail(ctx, ErrWorkbook, fmt.Errorf("%s: %w", res.WorkbookPath, err))
		}
	}
	res.Duration = time.Since(start)

	if s.ledger != nil {
		if err := s.ledger.Record(ctx, repository.Build{
			ID:         res.BuildID,
			DeckTitle:  res.Deck,
			OutputPath: res.Path,
			Slides:     res.Slides,
			Elements:   res.Elements,
			Bytes:      int64(res.Bytes),
			SHA256:     res.SHA256,
			DurationMS: res.Duration.Milliseconds(),
			CreatedAt:  time.Now(),
		}); err != nil {
			return nil, s.fail(ctx, ErrRecord, err)
		}
	}

	s.observe(ctx, res)
	s.logger.Info(ctx, "presentation built",
		logger.String("build_id", res.BuildID),
		logger.String("path", res.Path),
		logger.String("size", humanize.Bytes(uint64(res.Bytes))),
		logger.Int("slides", res.Slides),
		logger.Int("elements", res.Elements),
		logger.Int64("duration_ms", res.Duration.Milliseconds()),
	)
	return res, nil
}

// BuildAll builds every request with at most the configured number of
// builds in flight. The first failure cancels the builds still running;
// results keep the order of reqs.
func (s *Service) BuildAll(ctx context.Context, reqs []Request) ([]*Result, error) {
	results := make([]*Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, req := range reqs {
		g.Go(func() error {
			metrics.UpdateActiveWorkers(int(s.active.Add(1)))
			defer func() { metrics.UpdateActiveWorkers(int(s.active.Add(-1))) }()

			res, err := s.Build(gctx, req)
			if err != nil {
				return fmt.Errorf("deck %d (%s): %w", i+1, deckName(req), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// History returns the most recent builds from the ledger.
func (s *Service) History(ctx context.Context, limit int) ([]repository.Build, error) {
	if s.ledger == nil {
		return nil, ErrNoLedger
	}
	return s.ledger.Recent(ctx, limit)
}

func (s *Service) outputPath(override, fromDeck string) string {
	name := override
	if name == "" {
		name = fromDeck
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.outputDir, name)
}

func (s *Service) observe(ctx context.Context, res *Result) {
	metrics.RecordBuild(metrics.StatusOK)
	metrics.RecordBuildDuration(float64(res.Duration.Microseconds()) / 1000)
	metrics.RecordSlidesRendered(res.Counts.Slides)
	metrics.RecordElementsRendered(string(model.ElementText), res.Counts.Texts)
	metrics.RecordElementsRendered(string(model.ElementRect), res.Counts.Rects)
	metrics.RecordElementsRendered(string(model.ElementChart), res.Counts.Charts)
	metrics.UpdateOutputBytes(res.Bytes)
	metrics.UpdateLastBuild(time.Now())
	s.exportMetrics(ctx)
}

// fail counts a failed build under stage and wraps err with it.
func (s *Service) fail(ctx context.Context, stage, err error) error {
	metrics.RecordBuild(metrics.StatusFailed)
	metrics.RecordErrorByComponent(metricComponent, stageLabel(stage))
	s.exportMetrics(ctx)
	return fmt.Errorf("%w: %w", stage, err)
}

func (s *Service) exportMetrics(ctx context.Context) {
	if s.metricsTextfile == "" {
		return
	}
	if err := metrics.WriteTextfile(s.metricsTextfile); err != nil {
		s.logger.Warn(ctx, "metrics textfile not written",
			logger.String("path", s.metricsTextfile), logger.Error(err))
	}
}

func stageLabel(stage error) string {
	switch stage {
	case ErrLoad:
		return "load"
	case ErrLayout:
		return "layout"
	case ErrValidate:
		return "validate"
	case ErrRender:
		return "render"
	case ErrWrite:
		return "write"
	case ErrWorkbook:
		return "workbook"
	case ErrRecord:
		return "record"
	default:
		return "unknown"
	}
}

func deckName(req Request) string {
	if req.Deck == "" {
		return deckfile.DefaultName
	}
	return filepath.Base(req.Deck)
}
