package knn

// Classify returns the plurality label of the k training points in ds
// closest to query under the named metric. k must be in
// [1, min(10, ds.Len())] or ErrInvalidK is returned. Ties in the vote
// are broken by first-encountered label among the selected points in
// their post-quickselect order — an incidental, documented tie-break,
// not a guarantee about which tied label wins.
func Classify(ds *DataSet, query DataPoint, k int, metricName string) (string, error) {
	maxK := 10
	if ds.Len() < maxK {
		maxK = ds.Len()
	}
	if k < 1 || k > maxK {
		return "", ErrInvalidK
	}
	metric, err := LookupMetric(metricName)
	if err != nil {
		return "", err
	}

	records := make([]neighborRecord, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		d, err := metric(query, ds.At(i))
		if err != nil {
			return "", err
		}
		records[i] = neighborRecord{Index: i, Dist: d}
	}

	quickselect(records, k)

	counts := make(map[string]int, k)
	order := make([]string, 0, k)
	for i := 0; i < k; i++ {
		label := ds.At(records[i].Index).Label
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	best := order[0]
	bestCount := counts[best]
	for _, label := range order[1:] {
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}
	return best, nil
}
