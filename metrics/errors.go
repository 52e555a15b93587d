package metrics

import "github.com/dora-network/series-utils/errors"

var (
	ErrMetricsDisabled   = errors.NewInternal("metrics server is disabled")
	ErrMetricsRunning    = errors.NewInternal("metrics server is already running")
	ErrMetricsNotRunning = errors.NewInternal("metrics server is not running")
)
