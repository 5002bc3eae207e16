package heatshrink

import "github.com/sirupsen/logrus"

// defaultLogger is shared by every machine that isn't given its own via
// Option. logrus defaults to InfoLevel, so the Trace calls this package
// makes in Sink are silent unless a caller opts in, with
// no separate discard sink to configure.
var defaultLogger logrus.FieldLogger = logrus.StandardLogger()

// Option configures a new Encoder or Decoder.
type Option func(*machineConfig)

type machineConfig struct {
	log logrus.FieldLogger
}

func newMachineConfig(opts []Option) machineConfig {
	cfg := machineConfig{log: defaultLogger}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger overrides the logrus.FieldLogger a machine traces its Sink
// calls through. Pass logrus.New() with Level set to TraceLevel to see how
// many bytes each Sink accepted and how many are queued.
func WithLogger(log logrus.FieldLogger) Option {
	return func(cfg *machineConfig) {
		cfg.log = log
	}
}
