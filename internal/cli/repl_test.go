package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeExec) Add(ctx context.Context, args []string) error    { return f.record("add", args) }
func (f *fakeExec) List(ctx context.Context, args []string) error   { return f.record("list", args) }
func (f *fakeExec) Show(ctx context.Context, args []string) error   { return f.record("show", args) }
func (f *fakeExec) Save(ctx context.Context, args []string) error   { return f.record("save", args) }
func (f *fakeExec) Delete(ctx context.Context, args []string) error { return f.record("delete", args) }
func (f *fakeExec) Clear(ctx context.Context, args []string) error  { return f.record("clear", args) }
func (f *fakeExec) Usage(ctx context.Context) error                 { return f.record("usage", nil) }
func (f *fakeExec) Queue(ctx context.Context, args []string) error  { return f.record("queue", args) }
func (f *fakeExec) Pending(ctx context.Context) error               { return f.record("pending", nil) }
func (f *fakeExec) Sync(ctx context.Context) error                  { return f.record("sync", nil) }
func (f *fakeExec) Status(ctx context.Context) error                { return f.record("status", nil) }

func TestRunREPL_CommandsAndArgs(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"add /tmp/a.pdf",
		"list images",
		"l",
		"show 123",
		"save 123 /tmp/out.pdf",
		"usage",
		"queue /tmp/b.png",
		"pending",
		"sync",
		"status",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	want := []string{"add", "list", "list", "show", "save", "usage", "queue", "pending", "sync", "status"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i, c := range exec.calls {
		if c != want[i] {
			t.Fatalf("call %d: got %q, want %q (all: %v)", i, c, want[i], exec.calls)
		}
	}

	if got := exec.args[0]; len(got) != 1 || got[0] != "/tmp/a.pdf" {
		t.Fatalf("add args: %v", got)
	}
	if got := exec.args[4]; len(got) != 2 || got[1] != "/tmp/out.pdf" {
		t.Fatalf("save args: %v", got)
	}
}

func TestRunREPL_Quit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("quit\nlist\n")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("no commands expected after quit, got %v", exec.calls)
	}
}

func TestRunREPL_EOFStops(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("list\n")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "list" {
		t.Fatalf("calls: %v", exec.calls)
	}
}
