package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it registers under the deckgen namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.builds.WithLabelValues(StatusOK).Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)
				So(families[0].GetName(), ShouldStartWith, "deckgen_builder_")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("deck"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then names and constant labels follow the options", func() {
				manager.slidesRendered.Add(6)
				So(testutil.ToFloat64(manager.slidesRendered), ShouldEqual, 6)

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var found bool
				for _, f := range families {
					if f.GetName() == "test_deck_slides_rendered_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty options are given", func() {
			m := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then the defaults are kept", func() {
				So(m.namespace, ShouldEqual, "deckgen")
				So(m.subsystem, ShouldEqual, "builder")
				So(m.histogramBuckets, ShouldNotBeEmpty)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording build metrics", func() {
			before := testutil.ToFloat64(globalManager.builds.WithLabelValues(StatusOK))
			RecordBuild(StatusOK)
			RecordBuildDuration(120)
			RecordSlidesRendered(6)
			RecordElementsRendered("text", 97)
			UpdateOutputBytes(48_213)
			UpdateLastBuild(time.Unix(1_700_000_000, 0))
			UpdateActiveWorkers(2)

			Convey("Then counters and gauges move", func() {
				So(testutil.ToFloat64(globalManager.builds.WithLabelValues(StatusOK)), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.outputBytes), ShouldEqual, 48_213)
				So(testutil.ToFloat64(globalManager.lastBuildUnix), ShouldEqual, 1_700_000_000)
				So(testutil.ToFloat64(globalManager.activeWorkers), ShouldEqual, 2)
			})
		})

		Convey("When recording chart, HTTP, ledger and error metrics", func() {
			So(func() {
				RecordChartLatency("line", 35)
				RecordChartLatency("pie", 20)
				RecordHTTPRequest("/deck.pptx", "GET", "200")
				RecordHTTPRequestDuration("/deck.pptx", "GET", "200", 0.05)
				UpdateLedgerRecords(3)
				RecordLedgerLatency("record", 1.5)
				RecordErrorByComponent("render", "chart")
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.ledgerRecords), ShouldEqual, 3)
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given a textfile path", t, func() {
		RecordBuild(StatusFailed)
		path := filepath.Join(t.TempDir(), "deckgen.prom")

		Convey("When writing the registry", func() {
			So(WriteTextfile(path), ShouldBeNil)

			Convey("Then the file holds the exposition format", func() {
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(strings.Contains(string(data), `deckgen_builder_builds_total{status="failed"}`), ShouldBeTrue)
			})
		})

		Convey("When the directory does not exist", func() {
			err := WriteTextfile(filepath.Join(path, "missing", "x.prom"))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given the registry accessor", t, func() {
		So(GetRegistry(), ShouldEqual, customRegistry)
	})
}
