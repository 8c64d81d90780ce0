package remoteio

import (
	"github.com/ehrlich-b/knn-service/internal/codec"
)

// Server is the codec-backed, network-side implementation of
// Endpoint. It issues S→C frames and blocks for the matching reply
// where the protocol requires one.
type Server struct {
	c *codec.Codec
}

// NewServer wraps a Codec as a remote-IO server endpoint.
func NewServer(c *codec.Codec) *Server {
	return &Server{c: c}
}

func (s *Server) Display(msg string) error {
	if err := s.c.WriteByte(byte(TagDisplay)); err != nil {
		return err
	}
	return s.c.WriteString(msg)
}

func (s *Server) Prompt() (string, error) {
	if err := s.c.WriteByte(byte(TagPrompt)); err != nil {
		return "", err
	}
	tag, err := s.c.ReadByte()
	if err != nil {
		return "", err
	}
	if Tag(tag) != TagPromptReply {
		return "", ErrUnexpectedTag
	}
	return s.c.ReadString()
}

func (s *Server) OpenRead(path string) error {
	if err := s.c.WriteByte(byte(TagOpenRead)); err != nil {
		return err
	}
	return s.c.WriteString(path)
}

func (s *Server) ReadLine() (string, bool, error) {
	if err := s.c.WriteByte(byte(TagReadLine)); err != nil {
		return "", false, err
	}
	tag, err := s.c.ReadByte()
	if err != nil {
		return "", false, err
	}
	if Tag(tag) != TagReadReply {
		return "", false, ErrUnexpectedTag
	}
	line, err := s.c.ReadString()
	if err != nil {
		return "", false, err
	}
	if line == "" {
		return "", false, nil
	}
	return line, true, nil
}

func (s *Server) CloseRead() error {
	return s.c.WriteByte(byte(TagCloseRead))
}

func (s *Server) OpenWrite(path string) error {
	if err := s.c.WriteByte(byte(TagOpenWrite)); err != nil {
		return err
	}
	return s.c.WriteString(path)
}

func (s *Server) WriteLine(line string) error {
	if err := s.c.WriteByte(byte(TagWriteLine)); err != nil {
		return err
	}
	return s.c.WriteString(line)
}

func (s *Server) CloseWrite() error {
	return s.c.WriteByte(byte(TagCloseWrite))
}

func (s *Server) Terminate() error {
	return s.c.WriteByte(byte(TagTerminate))
}
