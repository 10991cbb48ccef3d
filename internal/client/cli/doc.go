// Package cli provides the interactive bankport command-line client.
//
// It wires configuration, the durable session cache, the portal API gateway,
// and an interactive REPL. Typical flow: restore the cached session, run the
// startup validation probe, and execute user commands.
//
// Key features:
//   - Register / Login / Logout with durable session caching
//   - Wallet: balance, deposit, withdraw
//   - Line of credit: overview and draws
//   - Transaction history
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
