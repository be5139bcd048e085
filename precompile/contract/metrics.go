// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks the execution of one stateful precompile.
type Metrics struct {
	numCalls    prometheus.Counter
	numFailures prometheus.Counter
	gasConsumed prometheus.Counter
}

// NewMetrics creates execution metrics registered with [registerer] under
// [namespace]. Each contract gets its own namespace so the series stay
// distinguishable per address.
func NewMetrics(namespace string, registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		numCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls",
			Help:      "Number of times the contract has run",
		}),
		numFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures",
			Help:      "Number of runs that halted with an error",
		}),
		gasConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gas_consumed",
			Help:      "Total gas consumed across all runs of the contract",
		}),
	}

	for _, collector := range []prometheus.Collector{
		m.numCalls,
		m.numFailures,
		m.gasConsumed,
	} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return m, nil
}
