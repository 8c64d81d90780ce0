// Package session implements the per-connection menu-driven command
// machine: six commands mutating a Settings value, dispatched over a
// remoteio.Endpoint so the exact same machine drives a networked
// client or a local terminal session.
package session

import "github.com/ehrlich-b/knn-service/internal/knn"

// DefaultK and DefaultMetric are the values a fresh session starts
// with.
const (
	DefaultK      = 5
	DefaultMetric = "EUC"
)

// Settings is the mutable, per-session state the command machine
// drives. It is owned exclusively by the worker running the session
// and needs no synchronization.
type Settings struct {
	K          int
	MetricName string
	TestPath   string

	IsClassified    bool
	TrueLabels      []string
	PredictedLabels []string

	// OverlayDataSet, when non-nil, replaces the shared training set
	// for this session's Classify command. It is owned by the
	// session and discarded when the session ends.
	OverlayDataSet *knn.DataSet
}

// NewSettings returns a fresh Settings at the documented defaults.
func NewSettings() *Settings {
	return &Settings{K: DefaultK, MetricName: DefaultMetric}
}

// trainingSet returns the overlay set if one has been uploaded,
// otherwise the shared, read-only training set.
func (s *Settings) trainingSet(shared *knn.DataSet) *knn.DataSet {
	if s.OverlayDataSet != nil {
		return s.OverlayDataSet
	}
	return shared
}

func (s *Settings) invalidateResults() {
	s.IsClassified = false
	s.TrueLabels = nil
	s.PredictedLabels = nil
}
