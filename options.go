package coffar

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger used for layout and duplicate symbol
// diagnostics. Default: logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return func(aw *Writer) {
		aw.logger = logger
	}
}

// WithTimestamp sets the date written in the headers of the linker members
// and the long-name member. Default: the Unix epoch.
func WithTimestamp(t time.Time) Option {
	return func(aw *Writer) {
		aw.timestamp = t
	}
}

// WithDeterministic writes zero in every date field, including those of the
// reserved members, so that identical inputs give identical archives.
func WithDeterministic() Option {
	return func(aw *Writer) {
		aw.deterministic = true
	}
}
