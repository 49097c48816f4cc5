package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	NotifyDecoded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "stratum",
		Name:      "notify_decoded_total",
		Help:      "Total mining.notify messages accepted from untrusted input.",
	})

	NotifyRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stratum",
		Name:      "notify_rejected_total",
		Help:      "Total mining.notify messages rejected, by failing field.",
	}, []string{"reason"})

	NotifySent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "stratum",
		Name:      "notify_sent_total",
		Help:      "Total mining.notify messages written to a connection.",
	})
)

func init() {
	prometheus.MustRegister(
		NotifyDecoded,
		NotifyRejected,
		NotifySent,
	)
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
