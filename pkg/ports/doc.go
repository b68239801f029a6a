/*
Package ports defines the driven ports (interfaces) for the Palisade gate.

These interfaces decouple the gating core from external implementations,
allowing the gate to work with different validator backends, definition
sources, report surfaces, and audit stores.

# Key Interfaces

  - ValidatorProvider: builds and refreshes the validators for one check.
  - DefinitionLoader: loads transition definitions and items (Loam, YAML, Memory).
  - ReportSink: receives the block report (e.g. an interactive modal surface).
  - OutcomeStore: persists gate outcomes for audit (Redis, Memory).
*/
package ports
