// Package cli provides the interactive offstash command-line client.
//
// It wires configuration, local storage, the compressed attachment store,
// the sync queue, and an interactive REPL that supports online/offline
// operation. Typical flow: open the local database, start a background
// connectivity watcher, and execute user commands.
//
// Key features:
//   - Add / List / Show / Save / Delete attachments (compressed at rest)
//   - Size accounting (original vs stored bytes)
//   - Queue files for delivery and drain the queue when online
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
