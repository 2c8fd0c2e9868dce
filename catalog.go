package catalogmcp

import (
	"github.com/uicatalog/catalog-mcp-go/pkg/breaker"
	"github.com/uicatalog/catalog-mcp-go/pkg/catalog"
	"github.com/uicatalog/catalog-mcp-go/pkg/dispatch"
	"github.com/uicatalog/catalog-mcp-go/pkg/protocol"
	"github.com/uicatalog/catalog-mcp-go/pkg/registry"
	"github.com/uicatalog/catalog-mcp-go/pkg/transport"
)

// Version is the current release of the catalog server.
const Version = "1.0.0"

// ProtocolVersion is the protocol revision the server speaks.
const ProtocolVersion = protocol.ProtocolVersion

// These exports provide direct access to the core components.
var (
	// NewStaticStore builds an in-memory component store.
	NewStaticStore = catalog.NewStaticStore

	// DefaultComponents returns the built-in component set.
	DefaultComponents = catalog.DefaultComponents

	// BuildRegistry declares the full catalog surface over a store.
	BuildRegistry = catalog.BuildRegistry

	// NewRegistryBuilder starts an empty operation registry declaration.
	NewRegistryBuilder = registry.NewBuilder

	// NewDispatcher wires a registry to the protocol methods.
	NewDispatcher = dispatch.New

	// NewBreaker creates a circuit breaker for an external dependency.
	NewBreaker = breaker.New

	// NewStdioTransport creates the stdio frame pump.
	NewStdioTransport = transport.NewStdioTransport
)
