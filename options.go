// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen

import "github.com/go-logr/logr"

type config struct {
	log      logr.Logger
	capacity int
}

// Option configures an [Executor].
type Option func(*config)

// WithLogger sets the logger of the executor.
// Task settlement and token bookkeeping are logged at V(1).
// The default discards everything.
func WithLogger(log logr.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithQueueCapacity sets the capacity of the lock-free ready ring.
// Non-positive values keep the default.
func WithQueueCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}
