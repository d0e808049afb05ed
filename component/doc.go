// Package component defines the lifecycle interfaces for the daemon's
// long-lived services.
//
// The sound worker, model manager, control server, and hotkey listener all
// implement Component. The bootstrap package starts them in registration
// order, stops them in reverse on shutdown, and surfaces their Health in
// the /health endpoint.
//
// Components may additionally implement Describable to appear in the
// startup summary, and RouteProvider to list their HTTP routes there.
package component
