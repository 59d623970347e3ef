package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	DiscoveryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "netbox_sd_run_duration_seconds",
		Help:    "单次发现耗时",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})

	DiscoveryErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "netbox_sd_run_errors_total",
		Help: "发现失败次数",
	}, []string{"mode"})

	TargetGroups = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "netbox_sd_target_groups",
		Help: "最近一次发现产出的目标组数量",
	}, []string{"mode"})
)

// MustRegister 注册指标，可在 main 中调用。
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(DiscoveryDuration, DiscoveryErrors, TargetGroups)
}
