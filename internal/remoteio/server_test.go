package remoteio

import (
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ehrlich-b/knn-service/internal/codec"
	"github.com/ehrlich-b/knn-service/internal/wire"
)

func pipeServerAndDispatcher(t *testing.T, stdin string) (*Server, *Dispatcher, *os.File) {
	t.Helper()
	a, b := net.Pipe()
	t.Cleanup(func() { a.Close(); b.Close() })

	srv := NewServer(codec.New(wire.NewTransport(a)))

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	go func() {
		w.WriteString(stdin)
		w.Close()
	}()

	out, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	t.Cleanup(func() { out.Close() })

	disp := NewDispatcher(codec.New(wire.NewTransport(b)), r, out)
	return srv, disp, out
}

func TestServer_PromptRoundTrip(t *testing.T) {
	srv, disp, _ := pipeServerAndDispatcher(t, "42\n")
	go disp.Run()

	got, err := srv.Prompt()
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if got != "42" {
		t.Fatalf("got %q", got)
	}
	srv.Terminate()
}

func TestServer_DisplayWritesToClientOut(t *testing.T) {
	srv, disp, out := pipeServerAndDispatcher(t, "")
	done := make(chan error, 1)
	go func() { done <- disp.Run() }()

	if err := srv.Display("hello\n"); err != nil {
		t.Fatalf("Display: %v", err)
	}
	srv.Terminate()
	if err := <-done; err != nil {
		t.Fatalf("dispatcher.Run: %v", err)
	}

	data, err := os.ReadFile(out.Name())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("expected output to contain %q, got %q", "hello", data)
	}
}

func TestServer_OpenReadReadLineRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "train.csv")
	if err := os.WriteFile(path, []byte("1,2,a\n3,4,b\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	srv, disp, _ := pipeServerAndDispatcher(t, "")
	go disp.Run()

	if err := srv.OpenRead(path); err != nil {
		t.Fatalf("OpenRead: %v", err)
	}
	line, ok, err := srv.ReadLine()
	if err != nil || !ok {
		t.Fatalf("ReadLine: line=%q ok=%v err=%v", line, ok, err)
	}
	if line != "1,2,a" {
		t.Fatalf("got %q", line)
	}
	line, ok, err = srv.ReadLine()
	if err != nil || !ok || line != "3,4,b" {
		t.Fatalf("second ReadLine: line=%q ok=%v err=%v", line, ok, err)
	}
	if err := srv.CloseRead(); err != nil {
		t.Fatalf("CloseRead: %v", err)
	}
	srv.Terminate()
}

func TestServer_OpenWriteWriteLineRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.txt")

	srv, disp, _ := pipeServerAndDispatcher(t, "")
	done := make(chan error, 1)
	go func() { done <- disp.Run() }()

	if err := srv.OpenWrite(path); err != nil {
		t.Fatalf("OpenWrite: %v", err)
	}
	if err := srv.WriteLine("1.\ta\n"); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	if err := srv.CloseWrite(); err != nil {
		t.Fatalf("CloseWrite: %v", err)
	}
	srv.Terminate()
	<-done

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "1.\ta\n" {
		t.Fatalf("got %q", data)
	}
}
