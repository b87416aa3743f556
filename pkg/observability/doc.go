/*
Package observability provides lifecycle hooks for monitoring the lockstep engine.

Metrics records Prometheus counters and histograms for ticks, transitions, drops,
faults and overruns. Logging writes the same lifecycle events as structured slog
records. Both return domain.LifecycleHooks and can be combined with Merge.
*/
package observability
