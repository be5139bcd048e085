// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"io"

	"go.uber.org/zap"
)

var (
	_ Logger         = NoLog{}
	_ io.WriteCloser = noWriter{}

	// Discard is a writer that drops everything handed to it.
	Discard io.WriteCloser = noWriter{}
)

// NoLog drops every entry. It is useful as a default while wiring components
// that require a Logger.
type NoLog struct{}

func (NoLog) Write(p []byte) (int, error) { return len(p), nil }

func (NoLog) Fatal(string, ...zap.Field) {}

func (NoLog) Error(string, ...zap.Field) {}

func (NoLog) Warn(string, ...zap.Field) {}

func (NoLog) Info(string, ...zap.Field) {}

func (NoLog) Trace(string, ...zap.Field) {}

func (NoLog) Debug(string, ...zap.Field) {}

func (NoLog) Verbo(string, ...zap.Field) {}

func (NoLog) SetLevel(Level) {}

func (NoLog) Enabled(Level) bool { return false }

func (NoLog) StopOnPanic() {}

func (NoLog) RecoverAndPanic(f func()) { f() }

func (NoLog) RecoverAndExit(f, exit func()) { defer exit(); f() }

func (NoLog) Stop() {}

type noWriter struct{}

func (noWriter) Write(p []byte) (int, error) { return len(p), nil }

func (noWriter) Close() error { return nil }
