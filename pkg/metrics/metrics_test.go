package metrics

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

// value reads the current value of a single counter or gauge.
func value(m prometheus.Metric) float64 {
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		return -1
	}
	if out.Counter != nil {
		return out.Counter.GetValue()
	}
	return out.Gauge.GetValue()
}

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating a manager with custom options", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10}),
				WithMetricsEnabled(false),
				WithRefreshInterval(5*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(m.namespace, ShouldEqual, "test")
				So(m.subsystem, ShouldEqual, "unit")
				So(m.histogramBuckets, ShouldResemble, []float64{1, 10})
				So(m.enabled, ShouldBeFalse)
				So(m.refreshInterval, ShouldEqual, 5*time.Second)
			})

			Convey("Then metric names carry the namespace and subsystem", func() {
				m.badgesAwarded.WithLabelValues("Bronze Collector").Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				found := false
				for _, f := range families {
					if f.GetName() == "test_unit_badges_awarded_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "badge")
					}
				}
				So(found, ShouldBeTrue)
			})

			Convey("Then a disabled manager's collector returns immediately", func() {
				done := make(chan struct{})
				go func() {
					m.Run(context.Background())
					close(done)
				}()
				select {
				case <-done:
				case <-time.After(time.Second):
					t.Fatal("collector did not return")
				}
			})
		})

		Convey("When zero values are passed", func() {
			m := NewManager(
				WithNamespace(""),
				WithRefreshInterval(0),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(m.namespace, ShouldEqual, "skillport")
				So(m.refreshInterval, ShouldEqual, defaultRefreshInterval)
				So(m.histogramBuckets, ShouldNotBeEmpty)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording metrics", func() {
			So(func() {
				RecordHTTPRequest("leaderboard", "GET", "200")
				RecordHTTPRequestDuration("leaderboard", "GET", "200", 1.5)
				RecordStoreOperation("members", "list", "ok", 0.3)
				UpdateStoreRecords("members", 12)
				RecordPipelineRun("leaderboard", 2)
				RecordRecordsScanned("submissions", 40)
				RecordBadgeAwarded("Expert Master")
				RecordIdempotentDuplicate("skills")
				RecordErrorByComponent("service", "store")
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("skills", "POST", "client_error")
				RecordErrorLatency("http", "client_error", 3)
			}, ShouldNotPanic)

			Convey("Then counters move", func() {
				before := value(globalManager.idempotentDuplicates.WithLabelValues("tasks"))
				RecordIdempotentDuplicate("tasks")
				So(value(globalManager.idempotentDuplicates.WithLabelValues("tasks")), ShouldEqual, before+1)

				UpdateStoreRecords("skills", 7)
				So(value(globalManager.storeRecords.WithLabelValues("skills")), ShouldEqual, 7)
			})
		})

		Convey("When gathering from the custom registry", func() {
			RecordRecordsScanned("members", 1)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)

			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			So(strings.Join(names, ","), ShouldContainSubstring, "skillport_api_records_scanned_total")
		})

		Convey("When collecting system metrics", func() {
			globalManager.collectSystem()
			So(value(globalManager.systemGoroutineCount), ShouldBeGreaterThan, 0)
		})
	})
}
