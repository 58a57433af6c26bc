package layout_test

import (
	"errors"
	"testing"

	"github.com/okian/deckgen/internal/domain/layout"
	"github.com/okian/deckgen/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func intp(v int) *int { return &v }

func TestExpandHeader(t *testing.T) {
	convey.Convey("Given a slide with a title and subtitle", t, func() {
		d := &model.Deck{
			Title:  "t",
			Output: "t.pptx",
			Slides: []model.Slide{
				{Title: "年度业绩概览", Subtitle: "关键业务指标"},
			},
		}

		p, err := layout.Expand(d)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then the header is placed with theme colors", func() {
			s := p.Slides[0]
			convey.So(s.Name, convey.ShouldEqual, "slide-1")
			convey.So(s.Background, convey.ShouldEqual, layout.DefaultTheme.Background)
			convey.So(s.Elements, convey.ShouldHaveLength, 2)

			title := s.Elements[0]
			convey.So(title.Box, convey.ShouldResemble, model.Box{X: 0.5, Y: 0.3, W: 9, H: 0.8})
			convey.So(title.Font, convey.ShouldResemble, model.Font{Face: "Arial", Size: 32, Bold: true, Color: "FFFFFF"})

			sub := s.Elements[1]
			convey.So(sub.Box, convey.ShouldResemble, model.Box{X: 0.5, Y: 0.9, W: 9, H: 0.4})
			convey.So(sub.Font.Color, convey.ShouldEqual, "AAB7B8")
			convey.So(p.Canvas, convey.ShouldResemble, model.Canvas{Width: 10, Height: 5.625})
		})

		convey.Convey("Then verbatim text inherits the theme text color", func() {
			d.Slides[0].Elements = []model.Element{{
				Kind: model.ElementText,
				Box:  model.Box{X: 1, Y: 4, W: 8, H: 0.4},
				Text: "2024年12月",
				Font: model.Font{Size: 16},
			}}
			p, err := layout.Expand(d)
			convey.So(err, convey.ShouldBeNil)
			convey.So(p.Slides[0].Elements[2].Font.Color, convey.ShouldEqual, "FFFFFF")
		})

		convey.Convey("Then text takes the theme face unless it names one", func() {
			d.Theme.Font = "Microsoft YaHei"
			d.Slides[0].Elements = []model.Element{{
				Kind: model.ElementText,
				Box:  model.Box{X: 1, Y: 4, W: 8, H: 0.4},
				Text: "2024年12月",
				Font: model.Font{Face: "Georgia", Size: 16},
			}}
			p, err := layout.Expand(d)
			convey.So(err, convey.ShouldBeNil)
			convey.So(p.Slides[0].Elements[0].Font.Face, convey.ShouldEqual, "Microsoft YaHei")
			convey.So(p.Slides[0].Elements[2].Font.Face, convey.ShouldEqual, "Georgia")
		})
	})
}

func TestMetricCards(t *testing.T) {
	convey.Convey("Given four metric cards on a two column grid", t, func() {
		c := model.Component{
			Kind: model.ComponentMetricCards,
			Grid: model.Grid{Origin: model.Point{X: 0.5, Y: 1.5}, Step: model.Point{X: 4.5, Y: 1.5}, Columns: 2},
			Items: []model.Item{
				{Value: "115%", Label: "收入完成率", Description: "超出目标15个百分点"},
				{Value: "23%", Label: "成本节约", Description: "运营效率显著提升"},
				{Value: "18%", Label: "ROI提升", Description: "投资回报率稳步增长"},
				{Value: "92%", Label: "客户满意度", Description: "服务质量获得高度认可"},
			},
		}
		d := &model.Deck{Output: "x.pptx", Slides: []model.Slide{{Components: []model.Component{c}}}}

		p, err := layout.Expand(d)
		convey.So(err, convey.ShouldBeNil)
		els := p.Slides[0].Elements

		convey.Convey("Then each card yields a rectangle and three texts", func() {
			convey.So(els, convey.ShouldHaveLength, 16)
			convey.So(p.Counts(), convey.ShouldResemble, layout.Counts{Slides: 1, Texts: 12, Rects: 4})
			convey.So(p.Counts().Elements(), convey.ShouldEqual, 16)
		})

		convey.Convey("Then the fourth card sits bottom right", func() {
			r := els[12]
			convey.So(r.Kind, convey.ShouldEqual, model.ElementRect)
			convey.So(r.Box, convey.ShouldResemble, model.Box{X: 5, Y: 3, W: 4, H: 1.2})
			convey.So(*r.Fill, convey.ShouldResemble, model.Fill{Color: "2E4053", Transparency: 50})
			convey.So(*r.Line, convey.ShouldResemble, model.Line{Color: "E74C3C", Width: 4})

			v := els[13]
			convey.So(v.Text, convey.ShouldEqual, "92%")
			convey.So(v.Box.X, convey.ShouldAlmostEqual, 5.1, 1e-9)
			convey.So(v.Box.Y, convey.ShouldAlmostEqual, 3.1, 1e-9)
			convey.So(v.Font.Size, convey.ShouldEqual, 48)

			desc := els[15]
			convey.So(desc.Text, convey.ShouldEqual, "服务质量获得高度认可")
			convey.So(desc.Box.Y, convey.ShouldAlmostEqual, 3.8, 1e-9)
		})

		convey.Convey("Then the plan validates against the canvas", func() {
			convey.So(p.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestComponentStyles(t *testing.T) {
	convey.Convey("Given components with style overrides", t, func() {
		theme := layout.DefaultTheme

		convey.Convey("When stats use a smaller value and tighter label", func() {
			c := model.Component{
				Kind:  model.ComponentStats,
				Grid:  model.Grid{Origin: model.Point{X: 0.7, Y: 4.1}, Step: model.Point{X: 2.2}},
				Style: model.ComponentStyle{ValueSize: 24, ValueHeight: 0.4, LabelSize: 12, LabelOffset: 0.3},
				Items: []model.Item{{Value: "15+", Label: "团队成员"}, {Value: "98%", Label: "项目完成率"}},
			}
			p, err := layout.Expand(&model.Deck{Output: "x.pptx", Theme: theme, Slides: []model.Slide{{Components: []model.Component{c}}}})
			convey.So(err, convey.ShouldBeNil)

			els := p.Slides[0].Elements
			convey.So(els, convey.ShouldHaveLength, 4)
			convey.So(els[2].Box.X, convey.ShouldAlmostEqual, 2.9, 1e-9)
			convey.So(els[2].Box.H, convey.ShouldEqual, 0.4)
			convey.So(els[2].Font.Size, convey.ShouldEqual, 24)
			convey.So(els[3].Box.Y, convey.ShouldAlmostEqual, 4.4, 1e-9)
			convey.So(els[3].Font.Size, convey.ShouldEqual, 12)
		})

		convey.Convey("When a panel overrides transparency and heading height", func() {
			c := model.Component{
				Kind:    model.ComponentPanel,
				Heading: "季度里程碑",
				Box:     model.Box{X: 0.5, Y: 3.6, W: 9, H: 1.2},
				Style:   model.ComponentStyle{Transparency: intp(80), LabelHeight: 0.3},
			}
			p, err := layout.Expand(&model.Deck{Output: "x.pptx", Slides: []model.Slide{{Components: []model.Component{c}}}})
			convey.So(err, convey.ShouldBeNil)

			els := p.Slides[0].Elements
			convey.So(els, convey.ShouldHaveLength, 2)
			convey.So(els[0].Fill.Color, convey.ShouldEqual, "E74C3C")
			convey.So(els[0].Fill.Transparency, convey.ShouldEqual, 80)
			convey.So(els[0].Line.Width, convey.ShouldEqual, 1)
			convey.So(els[1].Box.X, convey.ShouldAlmostEqual, 0.7, 1e-9)
			convey.So(els[1].Box.Y, convey.ShouldAlmostEqual, 3.7, 1e-9)
			convey.So(els[1].Box.W, convey.ShouldAlmostEqual, 8.6, 1e-9)
			convey.So(els[1].Box.H, convey.ShouldEqual, 0.3)
		})

		convey.Convey("When achievements are numbered", func() {
			c := model.Component{
				Kind: model.ComponentAchievementCards,
				Grid: model.Grid{Origin: model.Point{X: 0.5, Y: 1.5}, Step: model.Point{X: 2.5}},
				Items: []model.Item{
					{Title: "智能化运营升级", Details: []string{"AI算法优化效率40%"}},
					{Title: "客户体验优化", Details: []string{"客户满意度达92%", "响应时间缩短60%"}},
				},
			}
			p, err := layout.Expand(&model.Deck{Output: "x.pptx", Slides: []model.Slide{{Components: []model.Component{c}}}})
			convey.So(err, convey.ShouldBeNil)

			texts := p.Texts()[0]
			convey.So(texts, convey.ShouldResemble, []string{
				"01", "智能化运营升级", "• AI算法优化效率40%",
				"02", "客户体验优化", "• 客户满意度达92%", "• 响应时间缩短60%",
			})
			last := p.Slides[0].Elements[len(p.Slides[0].Elements)-1]
			convey.So(last.Box.Y, convey.ShouldAlmostEqual, 2.65, 1e-9)
		})

		convey.Convey("When milestones are centered", func() {
			c := model.Component{
				Kind:  model.ComponentMilestones,
				Grid:  model.Grid{Origin: model.Point{X: 0.7, Y: 4.0}, Step: model.Point{X: 2.2}},
				Items: []model.Item{{Label: "Q1", Description: "基础建设"}},
			}
			p, err := layout.Expand(&model.Deck{Output: "x.pptx", Slides: []model.Slide{{Components: []model.Component{c}}}})
			convey.So(err, convey.ShouldBeNil)

			els := p.Slides[0].Elements
			convey.So(els, convey.ShouldHaveLength, 3)
			convey.So(els[0].Box, convey.ShouldResemble, model.Box{X: 0.7, Y: 4.0, W: 2.1, H: 0.7})
			convey.So(els[1].Font.Align, convey.ShouldEqual, model.AlignCenter)
			convey.So(els[2].Font.Align, convey.ShouldEqual, model.AlignCenter)
		})

		convey.Convey("When initiatives carry a heading", func() {
			c := model.Component{
				Kind:    model.ComponentInitiativeCards,
				Heading: "关键举措",
				Box:     model.Box{X: 6.5, Y: 1.5, W: 3, H: 0.4},
				Grid:    model.Grid{Origin: model.Point{X: 6.5, Y: 1.9}, Step: model.Point{Y: 0.7}},
				Items:   []model.Item{{Title: "🚀 智能化升级", Details: []string{"AI算法2.0版本", "自动化覆盖率90%"}}},
			}
			p, err := layout.Expand(&model.Deck{Output: "x.pptx", Slides: []model.Slide{{Components: []model.Component{c}}}})
			convey.So(err, convey.ShouldBeNil)

			els := p.Slides[0].Elements
			convey.So(els, convey.ShouldHaveLength, 5)
			convey.So(els[0].Font.Size, convey.ShouldEqual, 18)
			convey.So(els[1].Fill.Transparency, convey.ShouldEqual, 30)
			convey.So(els[1].Line.Width, convey.ShouldEqual, 1)
			convey.So(els[4].Box.Y, convey.ShouldAlmostEqual, 2.35, 1e-9)
			convey.So(els[4].Font.Size, convey.ShouldEqual, 11)
		})
	})
}

func TestExpandErrors(t *testing.T) {
	convey.Convey("Given decks that cannot be expanded", t, func() {
		convey.Convey("When the deck is nil", func() {
			_, err := layout.Expand(nil)
			convey.So(errors.Is(err, model.ErrInvalidDeck), convey.ShouldBeTrue)
		})

		convey.Convey("When a component kind is unknown", func() {
			d := &model.Deck{Output: "x.pptx", Slides: []model.Slide{
				{Name: "plan", Components: []model.Component{{Kind: "gantt"}}},
			}}
			_, err := layout.Expand(d)
			convey.So(errors.Is(err, layout.ErrUnknownComponent), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "plan")
		})

		convey.Convey("When an expanded card falls off the canvas", func() {
			d := &model.Deck{Output: "x.pptx", Slides: []model.Slide{{Components: []model.Component{{
				Kind:  model.ComponentGoalRows,
				Grid:  model.Grid{Origin: model.Point{X: 0.5, Y: 5.2}},
				Items: []model.Item{{Value: "130%", Label: "收入增长目标"}},
			}}}}}
			p, err := layout.Expand(d)
			convey.So(err, convey.ShouldBeNil)
			convey.So(errors.Is(p.Validate(), model.ErrOutOfBounds), convey.ShouldBeTrue)
		})
	})
}

func TestCharts(t *testing.T) {
	convey.Convey("Given a slide with a chart element", t, func() {
		ch := &model.Chart{
			Type:   model.ChartLine,
			Series: []model.Series{{Name: "收入", Labels: []string{"1月", "2月"}, Values: []float64{850, 920}}},
		}
		d := &model.Deck{Output: "x.pptx", Slides: []model.Slide{
			{Name: "cover"},
			{Name: "revenue", Title: "收入增长分析", Elements: []model.Element{
				{Kind: model.ElementChart, Box: model.Box{X: 0.5, Y: 1.5, W: 6, H: 2}, Chart: ch},
			}},
		}}

		p, err := layout.Expand(d)
		convey.So(err, convey.ShouldBeNil)

		refs := p.Charts()
		convey.So(refs, convey.ShouldHaveLength, 1)
		convey.So(refs[0].Slide, convey.ShouldEqual, 2)
		convey.So(refs[0].Index, convey.ShouldEqual, 1)
		convey.So(refs[0].Chart, convey.ShouldEqual, ch)
		convey.So(p.Counts().Charts, convey.ShouldEqual, 1)
	})
}
