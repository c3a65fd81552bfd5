// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the engine to function:
//
//   - ContentStore: Read access to captured content records. The external
//     capture/storage layer owns the records; the engine only reads them.
//   - IndexStore: Search index entry persistence. Single-writer.
//   - GraphStore: Knowledge graph node and edge persistence. Single-writer,
//     mutated only through whole-batch calls.
//
// # Optional Interfaces
//
//   - ConfigStore: Engine tuning configuration. Without it, built-in
//     defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
