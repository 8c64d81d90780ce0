package remoteio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ehrlich-b/knn-service/internal/codec"
)

// Dispatcher is the client-side half of the protocol: it reads one
// tagged frame at a time from the server and executes it against the
// local terminal and filesystem, exactly mirroring what a local
// session would do to itself (internal/localio).
type Dispatcher struct {
	c   *codec.Codec
	in  *bufio.Scanner
	out *os.File

	readFile  *os.File
	readLines *bufio.Scanner
	writeFile *os.File
}

// NewDispatcher builds a client dispatcher reading prompts from in
// and writing display text to out.
func NewDispatcher(c *codec.Codec, in io.Reader, out *os.File) *Dispatcher {
	s := bufio.NewScanner(in)
	s.Split(bufio.ScanWords)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Dispatcher{c: c, in: s, out: out}
}

// Run loops until a TERMINATE frame or a transport error, closing any
// open local files before returning.
func (d *Dispatcher) Run() error {
	defer d.closeFiles()
	for {
		tagByte, err := d.c.ReadByte()
		if err != nil {
			return err
		}
		switch Tag(tagByte) {
		case TagDisplay:
			msg, err := d.c.ReadString()
			if err != nil {
				return err
			}
			fmt.Fprint(d.out, RenderForWriter(d.out, msg))
		case TagPrompt:
			token := ""
			if d.in.Scan() {
				token = d.in.Text()
			}
			if err := d.c.WriteByte(byte(TagPromptReply)); err != nil {
				return err
			}
			if err := d.c.WriteString(token); err != nil {
				return err
			}
		case TagOpenRead:
			path, err := d.c.ReadString()
			if err != nil {
				return err
			}
			d.openRead(path)
		case TagReadLine:
			line := ""
			if d.readLines != nil && d.readLines.Scan() {
				line = d.readLines.Text()
			}
			if err := d.c.WriteByte(byte(TagReadReply)); err != nil {
				return err
			}
			if err := d.c.WriteString(line); err != nil {
				return err
			}
		case TagCloseRead:
			d.closeRead()
		case TagOpenWrite:
			path, err := d.c.ReadString()
			if err != nil {
				return err
			}
			d.openWrite(path)
		case TagWriteLine:
			line, err := d.c.ReadString()
			if err != nil {
				return err
			}
			if d.writeFile != nil {
				fmt.Fprint(d.writeFile, line)
			}
		case TagCloseWrite:
			d.closeWrite()
		case TagTerminate:
			return nil
		default:
			return ErrUnexpectedTag
		}
	}
}

func (d *Dispatcher) openRead(path string) {
	d.closeRead()
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(d.out, RenderForWriter(d.out, ErrorLine(fmt.Sprintf("cannot open %s: %v", path, err))))
		return
	}
	d.readFile = f
	d.readLines = bufio.NewScanner(f)
}

func (d *Dispatcher) closeRead() {
	if d.readFile != nil {
		d.readFile.Close()
		d.readFile = nil
		d.readLines = nil
	}
}

func (d *Dispatcher) openWrite(path string) {
	d.closeWrite()
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintln(d.out, RenderForWriter(d.out, ErrorLine(fmt.Sprintf("cannot open %s: %v", path, err))))
		return
	}
	d.writeFile = f
}

func (d *Dispatcher) closeWrite() {
	if d.writeFile != nil {
		d.writeFile.Close()
		d.writeFile = nil
	}
}

func (d *Dispatcher) closeFiles() {
	d.closeRead()
	d.closeWrite()
}
