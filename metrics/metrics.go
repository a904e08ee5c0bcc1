package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requests       = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "deployer_requests_total", Help: "Deployment requests by outcome"}, []string{"outcome"})
	deployments    = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "deployer_deployments_total", Help: "Completed pipelines by status"}, []string{"status"})
	notifyFailures = prometheus.NewCounter(prometheus.CounterOpts{Name: "deployer_notify_failures_total", Help: "Evaluation URL notifications given up on"})
)

func init() {
	prometheus.MustRegister(requests, deployments, notifyFailures)
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler { return promhttp.Handler() }

func IncRequest(outcome string) { requests.WithLabelValues(outcome).Inc() }

func IncDeployment(status string) { deployments.WithLabelValues(status).Inc() }

func IncNotifyFailure() { notifyFailures.Inc() }
