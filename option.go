package x402

import (
	"time"

	"github.com/aona-network/x402/logger"
	"github.com/aona-network/x402/metrics"
)

type Option func(*X402)

func WithLogger(l logger.Logger) Option {
	return func(x *X402) {
		x.log = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(x *X402) {
		x.rec = r
	}
}

func WithTimeout(t time.Duration) Option {
	return func(x *X402) {
		x.timeout = t
	}
}
