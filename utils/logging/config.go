// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

// Config defines the behavior of the loggers a factory produces.
type Config struct {
	LogLevel   Level  `json:"logLevel"`
	LogFormat  Format `json:"logFormat"`
	MsgPrefix  string `json:"-"`
	LoggerName string `json:"-"`
}

// DefaultConfig writes INFO and above as plain console lines.
var DefaultConfig = Config{
	LogLevel:  Info,
	LogFormat: Plain,
}
