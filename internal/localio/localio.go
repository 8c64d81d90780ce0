// Package localio implements remoteio.Endpoint directly against the
// local terminal and filesystem, with no wire/codec layer underneath.
// It lets cmd/knn-local drive the exact same session.Machine a
// networked client drives, mirroring internal/remoteio.Dispatcher's
// local I/O handling but skipping the framed protocol entirely.
package localio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ehrlich-b/knn-service/internal/remoteio"
)

// Endpoint is the local terminal/filesystem implementation of
// remoteio.Endpoint.
type Endpoint struct {
	in  *bufio.Scanner
	out *os.File

	readFile  *os.File
	readLines *bufio.Scanner
	writeFile *os.File
}

// New builds a local endpoint reading prompts from in and writing
// display text to out.
func New(in io.Reader, out *os.File) *Endpoint {
	s := bufio.NewScanner(in)
	s.Split(bufio.ScanWords)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Endpoint{in: s, out: out}
}

func (e *Endpoint) Display(msg string) error {
	_, err := fmt.Fprint(e.out, remoteio.RenderForWriter(e.out, msg))
	return err
}

func (e *Endpoint) Prompt() (string, error) {
	if e.in.Scan() {
		return e.in.Text(), nil
	}
	if err := e.in.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (e *Endpoint) OpenRead(path string) error {
	e.CloseRead()
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	e.readFile = f
	e.readLines = bufio.NewScanner(f)
	return nil
}

func (e *Endpoint) ReadLine() (string, bool, error) {
	if e.readLines == nil {
		return "", false, nil
	}
	if e.readLines.Scan() {
		return e.readLines.Text(), true, nil
	}
	return "", false, e.readLines.Err()
}

func (e *Endpoint) CloseRead() error {
	if e.readFile == nil {
		return nil
	}
	err := e.readFile.Close()
	e.readFile = nil
	e.readLines = nil
	return err
}

func (e *Endpoint) OpenWrite(path string) error {
	e.CloseWrite()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	e.writeFile = f
	return nil
}

func (e *Endpoint) WriteLine(line string) error {
	if e.writeFile == nil {
		return nil
	}
	_, err := fmt.Fprint(e.writeFile, line)
	return err
}

func (e *Endpoint) CloseWrite() error {
	if e.writeFile == nil {
		return nil
	}
	err := e.writeFile.Close()
	e.writeFile = nil
	return err
}

func (e *Endpoint) Terminate() error {
	return e.CloseFiles()
}

// CloseFiles closes any files left open at session end.
func (e *Endpoint) CloseFiles() error {
	err1 := e.CloseRead()
	err2 := e.CloseWrite()
	if err1 != nil {
		return err1
	}
	return err2
}
