/*
Package runner implements the tick loop that drives a lockstep engine.

The Runner owns the configuration state. It initialises it once, replaces it after
every committed tick and publishes each new state as an immutable snapshot that
concurrent readers (such as the introspection HTTP server) can load without
locking. A tick that faults stops the loop and the error is returned to the
caller; the last committed state stays published.

# Usage

	r := runner.NewRunner(
		runner.WithEngine(engine, starts...),
		runner.WithInterval(500*time.Millisecond),
		runner.WithLogger(logger),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
