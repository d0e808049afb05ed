// Package bootstrap orchestrates the daemon lifecycle: typed configuration,
// component registration, startup/shutdown hooks, OS signal routing, and the
// startup summary.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(soundWorker)
//	app.RegisterComponent(controlServer)
//	app.OnSignal(syscall.SIGUSR1, controller.Toggle)
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Run starts components in registration order, runs the configure phase,
// prints the startup summary, then blocks. SIGINT/SIGTERM trigger graceful
// shutdown in reverse order; signals registered via OnSignal are dispatched
// to their handlers without stopping the daemon.
package bootstrap
