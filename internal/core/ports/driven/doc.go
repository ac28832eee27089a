// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - TableLoader: Reads a source file into a RawTable (CSV, XLSX)
//   - TableNormaliser: Validates and coerces a RawTable into a Dataset
//   - DatasetCache: Holds loaded datasets for the process lifetime
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, loader, or normaliser package
package driven
