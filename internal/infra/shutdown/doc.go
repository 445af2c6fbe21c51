// Package shutdown coordinates graceful process termination.
//
// Hooks run in reverse registration order under a shared timeout once
// SIGINT or SIGTERM arrives, or when the parent context is cancelled:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown(server.Shutdown)
//	err := h.Wait(ctx)
package shutdown
