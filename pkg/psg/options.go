package psg

import "github.com/prometheus/common/log"

// Option configures a Controller
type Option func(c *Controller)

// WithLogger routes the controller's diagnostics to logger. Register traffic
// is logged at debug level.
func WithLogger(logger log.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}
