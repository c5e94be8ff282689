package classifier

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Rajeshwari-1K/AgriSense-AI/util/common"
)

const labelColumn = "crop"

// TrainFromCSV builds a model from a labeled dataset. The file must carry a
// header row with the seven feature columns and a crop label column. This is
// the offline counterpart of the serving path; the web server never calls it.
func TrainFromCSV(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Train(csv.NewReader(f))
}

// Train computes per-crop feature means and standard deviations from the
// CSV stream and packages them as a model artifact.
func Train(r *csv.Reader) (*Model, error) {
	header, err := r.Read()
	if err != nil {
		return nil, common.NewErrorf("reading dataset header: %v", err)
	}

	featureIdx := [NumFeatures]int{}
	labelIdx := -1
	for i := range featureIdx {
		featureIdx[i] = -1
	}
	for col, name := range header {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == labelColumn {
			labelIdx = col
			continue
		}
		for i, feature := range FeatureNames {
			if name == feature {
				featureIdx[i] = col
			}
		}
	}
	if labelIdx < 0 {
		return nil, common.NewErrorf("dataset has no %q column", labelColumn)
	}
	for i, col := range featureIdx {
		if col < 0 {
			return nil, common.NewErrorf("dataset has no %q column", FeatureNames[i])
		}
	}

	type stats struct {
		n     float64
		sum   [NumFeatures]float64
		sumSq [NumFeatures]float64
	}
	perCrop := map[string]*stats{}
	order := []string{}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, common.NewErrorf("reading dataset row: %v", err)
		}
		crop := strings.TrimSpace(record[labelIdx])
		if crop == "" {
			continue
		}
		s, ok := perCrop[crop]
		if !ok {
			s = &stats{}
			perCrop[crop] = s
			order = append(order, crop)
		}
		for i, col := range featureIdx {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[col]), 64)
			if err != nil {
				return nil, common.NewErrorf("row for crop %q: bad %s value %q", crop, FeatureNames[i], record[col])
			}
			s.sum[i] += v
			s.sumSq[i] += v * v
		}
		s.n++
	}
	if len(order) == 0 {
		return nil, common.NewError("dataset contains no rows")
	}

	model := &Model{
		Version:       1,
		Features:      FeatureNames[:],
		Probabilities: true,
	}
	for _, crop := range order {
		s := perCrop[crop]
		c := Centroid{Crop: crop}
		for i := 0; i < NumFeatures; i++ {
			mean := s.sum[i] / s.n
			variance := s.sumSq[i]/s.n - mean*mean
			if variance < 0 {
				variance = 0
			}
			c.Mean[i] = mean
			c.Scale[i] = math.Sqrt(variance)
			if c.Scale[i] < 1e-9 {
				c.Scale[i] = 1
			}
		}
		model.Centroids = append(model.Centroids, c)
	}
	return model, nil
}
