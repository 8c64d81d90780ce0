package knn

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DataPoint pairs a feature vector with a possibly-empty label. A
// point with an empty label is unclassified; one with a non-empty
// label is classified. DataPoint is immutable once constructed.
type DataPoint struct {
	Features []float64
	Label    string
}

// IsClassified reports whether the point carries a non-empty label.
func (p DataPoint) IsClassified() bool {
	return p.Label != ""
}

// DataSet is an insertion-ordered, append-only collection of
// DataPoints that all share the same feature arity. A DataSet is safe
// for concurrent reads by multiple goroutines once fully built; it is
// never mutated after construction completes.
type DataSet struct {
	points []DataPoint
	arity  int
}

// NewDataSet returns an empty set with no arity fixed yet; the first
// Add call fixes it for the set's lifetime.
func NewDataSet() *DataSet {
	return &DataSet{arity: -1}
}

// Add appends p, failing with ErrArityMismatch if p's arity disagrees
// with points already in the set.
func (s *DataSet) Add(p DataPoint) error {
	if s.arity == -1 {
		s.arity = len(p.Features)
	} else if len(p.Features) != s.arity {
		return ErrArityMismatch
	}
	s.points = append(s.points, p)
	return nil
}

// Len returns the number of points in the set.
func (s *DataSet) Len() int {
	return len(s.points)
}

// At returns the point at insertion-order index i.
func (s *DataSet) At(i int) DataPoint {
	return s.points[i]
}

// Arity returns the feature arity fixed by the first inserted point,
// or -1 if the set is still empty.
func (s *DataSet) Arity() int {
	return s.arity
}

// LoadCSV parses a classified CSV: one row per line, fields separated
// by ",", the last field kept verbatim as the label and every
// preceding field parsed as a float64. No header, no quoting; a
// trailing empty line is ignored. The first row's column count fixes
// the arity for the whole set.
func LoadCSV(r io.Reader) (*DataSet, error) {
	ds := NewDataSet()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		p, err := ParseRow(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}
		if err := ds.Add(p); err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ds, nil
}

// ParseRow parses a single "f1,f2,...,fD,label" line into a
// DataPoint. The row must have at least two fields (one feature, one
// label).
func ParseRow(line string) (DataPoint, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return DataPoint{}, fmt.Errorf("expected at least 2 comma-separated fields, got %d", len(fields))
	}
	features := make([]float64, len(fields)-1)
	for i := 0; i < len(fields)-1; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return DataPoint{}, fmt.Errorf("field %d: %w", i, err)
		}
		features[i] = v
	}
	return DataPoint{Features: features, Label: fields[len(fields)-1]}, nil
}
