// Package codec implements the framed, little-endian wire encodings
// layered on top of internal/wire.Transport: fixed-width primitives,
// length-prefixed strings and byte blobs, length-prefixed vectors,
// and the DataPoint record. The codec is purely syntactic — it knows
// nothing about protocol tags or dialogue ordering; that lives in
// internal/remoteio.
package codec

import (
	"encoding/binary"
	"math"

	"github.com/ehrlich-b/knn-service/internal/wire"
)

// Codec reads and writes typed values on a Transport, little-endian.
type Codec struct {
	t wire.Transport
}

// New wraps a Transport with the framed codec.
func New(t wire.Transport) *Codec {
	return &Codec{t: t}
}

func (c *Codec) WriteByte(v byte) error {
	return c.t.SendExact([]byte{v})
}

func (c *Codec) ReadByte() (byte, error) {
	b, err := c.t.ReceiveExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Codec) WriteUint64(v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return c.t.SendExact(buf[:])
}

func (c *Codec) ReadUint64() (uint64, error) {
	b, err := c.t.ReceiveExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *Codec) WriteInt32(v int32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	return c.t.SendExact(buf[:])
}

func (c *Codec) ReadInt32() (int32, error) {
	b, err := c.t.ReceiveExact(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (c *Codec) WriteFloat64(v float64) error {
	return c.WriteUint64(math.Float64bits(v))
}

func (c *Codec) ReadFloat64() (float64, error) {
	bits, err := c.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// WriteString writes a uint64 length followed by the raw UTF-8 bytes,
// no trailing NUL.
func (c *Codec) WriteString(s string) error {
	if err := c.WriteUint64(uint64(len(s))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	return c.t.SendExact([]byte(s))
}

func (c *Codec) ReadString() (string, error) {
	n, err := c.ReadUint64()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	b, err := c.t.ReceiveExact(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteBytes writes a length-prefixed byte blob, same framing as
// WriteString but returning []byte on read.
func (c *Codec) WriteBytes(b []byte) error {
	if err := c.WriteUint64(uint64(len(b))); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	return c.t.SendExact(b)
}

func (c *Codec) ReadBytes() ([]byte, error) {
	n, err := c.ReadUint64()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []byte{}, nil
	}
	return c.t.ReceiveExact(int(n))
}

// WriteFloat64Vector writes a uint64 length followed by that many
// little-endian float64s.
func (c *Codec) WriteFloat64Vector(v []float64) error {
	if err := c.WriteUint64(uint64(len(v))); err != nil {
		return err
	}
	for _, x := range v {
		if err := c.WriteFloat64(x); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) ReadFloat64Vector() ([]float64, error) {
	n, err := c.ReadUint64()
	if err != nil {
		return nil, err
	}
	v := make([]float64, n)
	for i := range v {
		x, err := c.ReadFloat64()
		if err != nil {
			return nil, err
		}
		v[i] = x
	}
	return v, nil
}

// DataPointWire is the on-wire shape of a classified or unclassified
// point: a feature vector followed by a label string.
type DataPointWire struct {
	Features []float64
	Label    string
}

func (c *Codec) WriteDataPoint(p DataPointWire) error {
	if err := c.WriteFloat64Vector(p.Features); err != nil {
		return err
	}
	return c.WriteString(p.Label)
}

func (c *Codec) ReadDataPoint() (DataPointWire, error) {
	features, err := c.ReadFloat64Vector()
	if err != nil {
		return DataPointWire{}, err
	}
	label, err := c.ReadString()
	if err != nil {
		return DataPointWire{}, err
	}
	return DataPointWire{Features: features, Label: label}, nil
}
