// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/ssh/terminal"
)

// Format modes available
const (
	Auto Format = iota
	Plain
	Colors
	JSON

	termTimeFormat = "[01-02|15:04:05.000]"
)

var errUnknownFormat = errors.New("unknown format")

// Format specifies how log entries are encoded.
type Format int

// ToFormat chooses a format. [Auto] resolves against [fd] and falls back to
// [Plain] when the descriptor is not a terminal.
func ToFormat(f string, fd uintptr) (Format, error) {
	switch strings.ToUpper(f) {
	case "AUTO":
		if !terminal.IsTerminal(int(fd)) {
			return Plain, nil
		}
		return Colors, nil
	case "PLAIN":
		return Plain, nil
	case "COLORS":
		return Colors, nil
	case "JSON":
		return JSON, nil
	default:
		return Plain, fmt.Errorf("unknown format mode: %s", f)
	}
}

func (f Format) MarshalJSON() ([]byte, error) {
	switch f {
	case Auto:
		return []byte(`"AUTO"`), nil
	case Plain:
		return []byte(`"PLAIN"`), nil
	case Colors:
		return []byte(`"COLORS"`), nil
	case JSON:
		return []byte(`"JSON"`), nil
	default:
		return nil, errUnknownFormat
	}
}

// WrapPrefix adds the format's prefix decoration to [prefix].
func (f Format) WrapPrefix(prefix string) string {
	if prefix == "" || f == JSON {
		return prefix
	}
	return fmt.Sprintf("<%s>", prefix)
}

// ConsoleEncoder returns the zapcore encoder for this format.
func (f Format) ConsoleEncoder() zapcore.Encoder {
	switch f {
	case Colors:
		return zapcore.NewConsoleEncoder(newTermEncoderConfig(consoleColorLevelEncoder))
	case JSON:
		return zapcore.NewJSONEncoder(newJSONEncoderConfig())
	default:
		return zapcore.NewConsoleEncoder(newTermEncoderConfig(levelEncoder))
	}
}

func newTermEncoderConfig(lvlEncoder zapcore.LevelEncoder) zapcore.EncoderConfig {
	config := zap.NewProductionEncoderConfig()
	config.EncodeLevel = lvlEncoder
	config.EncodeTime = termTimeEncoder
	config.ConsoleSeparator = " "
	return config
}

func newJSONEncoderConfig() zapcore.EncoderConfig {
	config := zap.NewProductionEncoderConfig()
	config.EncodeLevel = jsonLevelEncoder
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	return config
}

func levelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(Level(l).String())
}

func jsonLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(Level(l).LowerString())
}

func consoleColorLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	level := Level(l)
	enc.AppendString(level.Color().Wrap(level.String()))
}

func termTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format(termTimeFormat))
}
