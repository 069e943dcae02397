package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Add(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Save(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Clear(ctx context.Context, args []string) error
	Usage(ctx context.Context) error
	Queue(ctx context.Context, args []string) error
	Pending(ctx context.Context) error
	Sync(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the offstash CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//   - help                     — show available commands
//   - add [path]               — store a file (compressed at rest)
//   - list [images|pdfs]       — list stored attachments
//   - show <id>                — show a single attachment (interactive ID prompt)
//   - save <id> <path>         — reconstruct an attachment to a file
//   - delete [id]              — remove one attachment
//   - clear [images|pdfs]      — remove a whole partition (or everything)
//   - usage                    — show size accounting
//   - queue [path]             — enqueue a file for delivery
//   - pending                  — list items awaiting delivery
//   - sync                     — drain the queue now
//   - status                   — show connectivity and queue depth
//   - exit | quit              — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("stash %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: add, (l)ist, show, save, delete, clear, usage, queue, pending, sync, status, exit")

		case "add":
			_ = a.Add(ctx, args)

		case "l", "list":
			_ = a.List(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "save":
			_ = a.Save(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "clear":
			_ = a.Clear(ctx, args)

		case "usage":
			_ = a.Usage(ctx)

		case "queue":
			_ = a.Queue(ctx, args)

		case "pending":
			_ = a.Pending(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
