// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

var _ StatefulPrecompiledContract = (*meteredContract)(nil)

// meteredContract wraps a stateful precompile and records execution metrics
// around every run. Halts are logged at debug level so an engine embedding the
// family can see which selector and caller produced them.
type meteredContract struct {
	log     *zap.Logger
	metrics *Metrics
	inner   StatefulPrecompiledContract
}

// NewMeteredContract returns [inner] wrapped with call, failure, and gas
// accounting. A nil [log] disables logging.
func NewMeteredContract(log *zap.Logger, metrics *Metrics, inner StatefulPrecompiledContract) StatefulPrecompiledContract {
	if log == nil {
		log = zap.NewNop()
	}
	return &meteredContract{
		log:     log,
		metrics: metrics,
		inner:   inner,
	}
}

func (m *meteredContract) Run(accessibleState AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) ([]byte, uint64, error) {
	ret, remainingGas, err := m.inner.Run(accessibleState, caller, addr, input, suppliedGas, readOnly)

	m.metrics.numCalls.Inc()
	m.metrics.gasConsumed.Add(float64(suppliedGas - remainingGas))
	if err != nil {
		m.metrics.numFailures.Inc()
		m.log.Debug("stateful precompile halted",
			zap.Stringer("contract", addr),
			zap.Stringer("caller", caller),
			zap.Binary("input", input),
			zap.Error(err),
		)
	}
	return ret, remainingGas, err
}

func (m *meteredContract) RequiredGas(input []byte) uint64 {
	return m.inner.RequiredGas(input)
}
