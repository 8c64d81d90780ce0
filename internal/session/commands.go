package session

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/ehrlich-b/knn-service/internal/knn"
	"github.com/ehrlich-b/knn-service/internal/remoteio"
)

const notClassifiedMsg = "Haven't classified any data yet!"

func (m *Machine) upload() error {
	for {
		if err := m.Endpoint.Display("Please upload your local train CSV file. (Enter ! to skip)\n"); err != nil {
			return err
		}
		trainPath, err := m.Endpoint.Prompt()
		if err != nil {
			return err
		}

		if trainPath == "!" {
			if m.Settings.OverlayDataSet == nil {
				if err := m.Endpoint.Display(remoteio.ErrorLine("You haven't uploaded a train file previously.") + "\n"); err != nil {
					return err
				}
				continue
			}
			if err := m.Endpoint.Display("Leaving the train file unchanged...\n"); err != nil {
				return err
			}
		} else {
			newSet, err := m.readTrainingSet(trainPath)
			if err != nil {
				if err := m.Endpoint.Display(remoteio.ErrorLine(err.Error()) + "\n"); err != nil {
					return err
				}
				continue
			}
			m.Settings.OverlayDataSet = newSet
			m.Settings.invalidateResults()
			if err := m.Endpoint.Display("Upload complete\n"); err != nil {
				return err
			}
		}
		break
	}

	if err := m.Endpoint.Display("Please upload your local test CSV file.\n"); err != nil {
		return err
	}
	testPath, err := m.Endpoint.Prompt()
	if err != nil {
		return err
	}
	m.Settings.TestPath = testPath
	return m.Endpoint.Display("Upload complete\n")
}

// readTrainingSet opens path on the client, reads every line as a
// classified row, and returns the resulting set without touching
// m.Settings — the caller commits it only on full success.
func (m *Machine) readTrainingSet(path string) (*knn.DataSet, error) {
	if err := m.Endpoint.OpenRead(path); err != nil {
		return nil, err
	}
	defer m.Endpoint.CloseRead()

	ds := knn.NewDataSet()
	for {
		line, ok, err := m.Endpoint.ReadLine()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		p, err := knn.ParseRow(line)
		if err != nil {
			return nil, fmt.Errorf("malformed training row %q: %w", line, err)
		}
		if err := ds.Add(p); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func (m *Machine) algorithmSettings() error {
	if err := m.Endpoint.Display(fmt.Sprintf(
		"The current KNN parameters are: K = %d, distance metric = %s\n",
		m.Settings.K, m.Settings.MetricName)); err != nil {
		return err
	}

	for {
		kStr, err := m.Endpoint.Prompt()
		if err != nil {
			return err
		}
		metric, err := m.Endpoint.Prompt()
		if err != nil {
			return err
		}

		k, convErr := strconv.Atoi(kStr)
		if convErr != nil || k < 1 || k > 10 {
			if err := m.Endpoint.Display(remoteio.ErrorLine("Invalid value for K, please try again") + "\n"); err != nil {
				return err
			}
			continue
		}
		if !knn.KnownMetric(metric) {
			if err := m.Endpoint.Display(remoteio.ErrorLine("Invalid distance metric, please try again") + "\n"); err != nil {
				return err
			}
			continue
		}

		m.Settings.K = k
		m.Settings.MetricName = metric
		m.Settings.invalidateResults()
		return nil
	}
}

func (m *Machine) classify() error {
	if err := m.Endpoint.OpenRead(m.Settings.TestPath); err != nil {
		return err
	}

	ds := m.Settings.trainingSet(m.Shared)
	var trueLabels, predictedLabels []string

	for {
		line, ok, err := m.Endpoint.ReadLine()
		if err != nil {
			m.Endpoint.CloseRead()
			return err
		}
		if !ok {
			break
		}
		row, err := knn.ParseRow(line)
		if err != nil {
			m.Endpoint.CloseRead()
			return m.Endpoint.Display(remoteio.ErrorLine(fmt.Sprintf("malformed test row %q: %v", line, err)) + "\n")
		}
		predicted, err := knn.Classify(ds, row, m.Settings.K, m.Settings.MetricName)
		if err != nil {
			m.Endpoint.CloseRead()
			return m.Endpoint.Display(remoteio.ErrorLine(classifyErrorMessage(err)) + "\n")
		}
		trueLabels = append(trueLabels, row.Label)
		predictedLabels = append(predictedLabels, predicted)
	}

	if err := m.Endpoint.CloseRead(); err != nil {
		return err
	}

	m.Settings.TrueLabels = trueLabels
	m.Settings.PredictedLabels = predictedLabels
	m.Settings.IsClassified = true
	return nil
}

func classifyErrorMessage(err error) string {
	switch {
	case errors.Is(err, knn.ErrInvalidK):
		return "invalid k for the current training set size"
	case errors.Is(err, knn.ErrArityMismatch):
		return "query feature arity does not match the training set"
	case errors.Is(err, knn.ErrUnknownMetric):
		return "unknown distance metric"
	default:
		return err.Error()
	}
}

func (m *Machine) displayResults() error {
	if !m.Settings.IsClassified {
		return m.Endpoint.Display(remoteio.ErrorLine(notClassifiedMsg) + "\n")
	}
	for i, label := range m.Settings.PredictedLabels {
		if err := m.Endpoint.Display(fmt.Sprintf("%d.\t%s\n", i+1, label)); err != nil {
			return err
		}
	}
	return m.Endpoint.Display("Done.\n")
}

func (m *Machine) downloadResults() error {
	if !m.Settings.IsClassified {
		return m.Endpoint.Display(remoteio.ErrorLine(notClassifiedMsg) + "\n")
	}
	if err := m.Endpoint.Display("Please type the path for saving the results.\n"); err != nil {
		return err
	}
	path, err := m.Endpoint.Prompt()
	if err != nil {
		return err
	}
	if err := m.Endpoint.OpenWrite(path); err != nil {
		return err
	}
	for i, label := range m.Settings.PredictedLabels {
		if err := m.Endpoint.WriteLine(fmt.Sprintf("%d.\t%s\n", i+1, label)); err != nil {
			return err
		}
	}
	return m.Endpoint.CloseWrite()
}

func (m *Machine) confusionMatrix() error {
	if !m.Settings.IsClassified {
		return m.Endpoint.Display(remoteio.ErrorLine(notClassifiedMsg) + "\n")
	}

	trueLabels := m.Settings.TrueLabels
	predictedLabels := m.Settings.PredictedLabels

	classSet := make(map[string]struct{})
	for _, l := range trueLabels {
		classSet[l] = struct{}{}
	}
	for _, l := range predictedLabels {
		classSet[l] = struct{}{}
	}
	classes := make([]string, 0, len(classSet))
	for l := range classSet {
		classes = append(classes, l)
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, l := range classes {
		index[l] = i
	}

	n := len(classes)
	matrix := make([][]int, n)
	trueCount := make([]int, n)
	for i := range matrix {
		matrix[i] = make([]int, n)
	}

	common := len(trueLabels)
	if len(predictedLabels) < common {
		common = len(predictedLabels)
	}
	for i := 0; i < common; i++ {
		ti, pi := index[trueLabels[i]], index[predictedLabels[i]]
		matrix[ti][pi]++
		trueCount[ti]++
	}

	if len(trueLabels) != len(predictedLabels) {
		msg := fmt.Sprintf(
			"Mismatch between number of classified and true classes. Have %d and %d.\n\tPlease ensure that your test and train files have the same number of lines.",
			len(predictedLabels), len(trueLabels))
		if err := m.Endpoint.Display(remoteio.ErrorLine(msg) + "\n"); err != nil {
			return err
		}
	}

	for i, label := range classes {
		row := label + "\t"
		for j := range classes {
			row += "|\t" + cell(matrix[i][j], trueCount[i]) + "\t"
		}
		row += "|\n"
		if err := m.Endpoint.Display(row); err != nil {
			return err
		}
	}

	footer := "\t\t|"
	for _, label := range classes {
		footer += " " + label + " |"
	}
	return m.Endpoint.Display(footer + "\n")
}

func cell(count, total int) string {
	switch {
	case total > 0:
		return strconv.Itoa((100 * count) / total) + "%"
	case count == 0:
		return "0%"
	default:
		return "inf"
	}
}
