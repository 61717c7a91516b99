// Package metrics provides prometheus collectors for the walkthrough.
package metrics

import (
	"time"

	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "regtest_walkthrough"

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "operations_total",
		Help:      "Count of node RPC operations.",
	}, []string{"operation", "network", "wallet", "status"})
	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of node RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "wallet", "status"})
)

// RPCClient tracks metrics for RPC calls made through one node session.
type RPCClient struct {
	network model.Network
	wallet  string
}

// NewRPCClient constructs a metrics collector for a session; wallet is empty for the unscoped session.
func NewRPCClient(network model.Network, wallet string) *RPCClient {
	if network == "" {
		network = "unknown"
	}
	if wallet == "" {
		wallet = "none"
	}
	return &RPCClient{network: network, wallet: wallet}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	rpcRequestsTotal.WithLabelValues(operation, string(m.network), m.wallet, status).Inc()
	rpcRequestDuration.WithLabelValues(operation, string(m.network), m.wallet, status).Observe(time.Since(started).Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
