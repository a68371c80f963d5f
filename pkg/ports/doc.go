/*
Package ports defines the driven ports (interfaces) for the Casefile engine.

These interfaces decouple the session engine from external implementations, allowing
it to work with various storage backends and content sources.

# Key Interfaces

  - ContentStore: read-only access to podcasts, branches and accusations.
  - SessionStore: persists Sessions with single-record compare-and-swap.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
  - SessionEngine: the operation surface consumed by driving adapters (HTTP, MCP, runner).
*/
package ports
