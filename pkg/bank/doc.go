// Package bank exposes the public contracts for the loader/merger stage: where
// question banks come from (Source), the raw records they hold (Record, Bank)
// and the typed failures shared by every pipeline stage that reads them.
// Implementations live under internal/bank so callers only depend on these
// contracts.
package bank
