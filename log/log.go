// Package log builds the process logger and provides zap fields for domain values.
package log

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peocoin/go-peocoin/common/types"
)

const (
	// ConsoleEncoder writes human readable lines.
	ConsoleEncoder = "console"
	// JSONEncoder writes one json object per line.
	JSONEncoder = "json"
)

// where logs go by default.
var logWriter io.Writer = os.Stdout

// NewNop creates silent logger.
func NewNop() *zap.Logger {
	return zap.NewNop()
}

// NewWithLevel creates a logger with a fixed level and with a set of (optional) hooks.
func NewWithLevel(module string,
	level zap.AtomicLevel,
	encoder zapcore.Encoder,
	hooks ...func(zapcore.Entry) error,
) *zap.Logger {
	core := zapcore.NewCore(encoder, zapcore.AddSync(logWriter), level)
	return zap.New(zapcore.RegisterHooks(core, hooks...)).Named(module)
}

// New creates a logger for module with level and encoding given as strings, as they appear in config.
func New(module, level, encoding string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse level %q: %w", level, err)
	}
	enc, err := Encoder(encoding)
	if err != nil {
		return nil, err
	}
	return NewWithLevel(module, lvl, enc), nil
}

// Encoder returns zap encoder for the name.
func Encoder(name string) (zapcore.Encoder, error) {
	switch name {
	case ConsoleEncoder, "":
		return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), nil
	case JSONEncoder:
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	}
	return nil, fmt.Errorf("unknown log encoder %q", name)
}

// ZAddress is a field for participant or operator address.
func ZAddress(name string, addr types.Address) zap.Field {
	return zap.String(name, addr.String())
}

// ZAmount is a field for token amount in base units, rendered in tokens.
func ZAmount(name string, v *big.Int) zap.Field {
	return zap.String(name, types.FormatAmount(v))
}

// ZProposal is a field for proposal id.
func ZProposal(id types.ProposalID) zap.Field {
	return zap.Uint64("proposal", uint64(id))
}

// ZShortStringer is a field for an address-like value that is only useful in its short form.
func ZShortStringer(name string, addr types.Address) zap.Field {
	return zap.String(name, addr.ShortString())
}
