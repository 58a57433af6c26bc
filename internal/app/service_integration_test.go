package service_test

import (
	"context"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/deckgen/internal/adapters/render/pptx"
	service "github.com/okian/deckgen/internal/app"
	"github.com/okian/deckgen/pkg/logger"
)

func TestService_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("renders the full deck")
	}

	Convey("Given the default renderer with native charts", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		svc := service.New(service.WithOutputDir(dir), service.WithLogger(logger.Nop()))

		Convey("When the embedded deck is built", func() {
			res, err := svc.Build(ctx, service.Request{Workbook: true})
			So(err, ShouldBeNil)
			So(res.Path, ShouldEqual, filepath.Join(dir, "vCubeVLA年度总结.pptx"))

			Convey("Then reading it back yields six slides and the literal values", func() {
				sum, err := pptx.Inspect(res.Path)
				So(err, ShouldBeNil)
				So(sum.Slides, ShouldHaveLength, 6)
				So(sum.Width, ShouldEqual, 10)
				So(sum.Height, ShouldEqual, 5.625)
				So(sum.Charts, ShouldEqual, res.Counts.Charts)

				shapes := 0
				for _, sl := range sum.Slides {
					shapes += sl.Shapes
				}
				So(shapes, ShouldEqual, res.Counts.Texts+res.Counts.Rects)
				So(sum.Slides[1].Shapes, ShouldEqual, 18)
				So(sum.Slides[5].Shapes, ShouldEqual, 41)

				texts := sum.Texts()
				So(texts, ShouldContain, "年度业绩概览")
				So(texts, ShouldContain, "115%")
				So(texts, ShouldContain, "¥2.3M")
				So(texts, ShouldContain, "• 云原生架构升级")
				So(texts, ShouldContain, "Q4")
			})

			Convey("Then the chart workbook sits next to the deck", func() {
				So(res.WorkbookPath, ShouldEqual, filepath.Join(dir, "vCubeVLA年度总结.data.xlsx"))
			})
		})
	})
}
