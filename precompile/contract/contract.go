// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// selectorLen is the length of the function selector in bytes, the first four
// bytes of call data.
const selectorLen = 4

// StatefulPrecompileFunction wires a 4 byte selector to the execution body and
// base gas of one precompile operation.
type StatefulPrecompileFunction struct {
	// selector is the 4 byte function selector for this function
	selector []byte
	// requiredGas is the flat gas this function charges regardless of the work
	// it ends up doing. Operations that scan storage charge additional gas per
	// visited slot inside [execute].
	requiredGas uint64
	// execute is performed when this function is selected
	execute RunStatefulPrecompileFunc
}

// NewStatefulPrecompileFunction creates a stateful precompile function with the
// given [selector], flat [requiredGas], and [execute] body.
func NewStatefulPrecompileFunction(selector []byte, requiredGas uint64, execute RunStatefulPrecompileFunc) *StatefulPrecompileFunction {
	return &StatefulPrecompileFunction{
		selector:    selector,
		requiredGas: requiredGas,
		execute:     execute,
	}
}

// Selector returns the 4 byte selector of this function.
func (f *StatefulPrecompileFunction) Selector() []byte {
	return f.selector
}

// RequiredGas returns the flat gas of this function.
func (f *StatefulPrecompileFunction) RequiredGas() uint64 {
	return f.requiredGas
}

// statefulPrecompileWithFunctionSelectors implements StatefulPrecompiledContract
// by dispatching on the selector of the input. The selector table is built once
// at construction and never rebuilt per call.
type statefulPrecompileWithFunctionSelectors struct {
	fallback  RunStatefulPrecompileFunc
	functions map[string]*StatefulPrecompileFunction
}

// NewStatefulPrecompileContract generates a new StatefulPrecompiledContract
// with [functions] as the available functions and [fallback] as an optional
// fallback for inputs shorter than a selector. Panics on an empty function
// set, a selector of the wrong width, or two functions sharing a selector, so
// a colliding contract definition fails at process start rather than at call
// time.
func NewStatefulPrecompileContract(fallback RunStatefulPrecompileFunc, functions []*StatefulPrecompileFunction) StatefulPrecompiledContract {
	if len(functions) == 0 && fallback == nil {
		panic("cannot create stateful precompile with no functions or fallback")
	}

	functionsMap := make(map[string]*StatefulPrecompileFunction, len(functions))
	for _, function := range functions {
		if len(function.selector) != selectorLen {
			panic(fmt.Errorf("invalid function selector length %d for stateful precompile", len(function.selector)))
		}
		key := string(function.selector)
		if _, exists := functionsMap[key]; exists {
			panic(fmt.Errorf("cannot create stateful precompile with duplicated function selector: %q", function.selector))
		}
		functionsMap[key] = function
	}

	return &statefulPrecompileWithFunctionSelectors{
		fallback:  fallback,
		functions: functionsMap,
	}
}

// Run selects the function using the input data and runs the selected function on the given accessible state.
func (s *statefulPrecompileWithFunctionSelectors) Run(accessibleState AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	// Use the fallback if the input is too short to hold a function selector.
	if len(input) < selectorLen {
		if s.fallback != nil {
			return s.fallback(accessibleState, caller, addr, input, suppliedGas, readOnly)
		}
		return nil, suppliedGas, fmt.Errorf("missing function selector to precompile - input length (%d)", len(input))
	}

	// Otherwise, an unknown selector is a hard failure.
	selector := input[:selectorLen]
	functionInput := input[selectorLen:]
	function, ok := s.functions[string(selector)]
	if !ok {
		return nil, suppliedGas, fmt.Errorf("invalid function selector %#x", selector)
	}

	return function.execute(accessibleState, caller, addr, functionInput, suppliedGas, readOnly)
}

// RequiredGas returns the flat gas of the function [input] selects, or zero
// when no function matches.
func (s *statefulPrecompileWithFunctionSelectors) RequiredGas(input []byte) uint64 {
	if len(input) < selectorLen {
		return 0
	}
	function, ok := s.functions[string(input[:selectorLen])]
	if !ok {
		return 0
	}
	return function.requiredGas
}
