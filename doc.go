// Package catalogmcp provides a stdio server that exposes a UI component
// catalog to agent clients: tools for fetching component source, demos and
// metadata, resources for browsing, and prompt templates for guided usage.
//
// # Server Usage
//
// The shipped binary wires everything from configuration, but the pieces
// compose directly:
//
//	store := catalogmcp.NewStaticStore(catalogmcp.DefaultComponents())
//	reg, err := catalogmcp.BuildRegistry(store)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	dispatcher := catalogmcp.NewDispatcher(dispatch.Options{
//	    Registry: reg,
//	    Breaker:  catalogmcp.NewBreaker(breaker.Options{Name: "catalog-store"}),
//	})
//
//	stdio := catalogmcp.NewStdioTransport(logger)
//	dispatcher.Register(stdio)
//	err = stdio.Start(ctx)
//
// A custom catalog replaces the static store with any implementation of
// catalog.Store; the registry, dispatcher and transport are unchanged.
//
// # Packages
//
//   - pkg/protocol: JSON-RPC framing and wire types
//   - pkg/registry: immutable tool/resource/prompt registry
//   - pkg/dispatch: request routing, validation, error shaping
//   - pkg/breaker: circuit breaker for external stores
//   - pkg/catalog: the component catalog surface
//   - pkg/transport: newline-delimited JSON over stdio
//   - pkg/config, pkg/logging, pkg/errors, pkg/observability: ambient stack
package catalogmcp
