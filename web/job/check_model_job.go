// Package job contains the scheduled background jobs run by the web server.
package job

import (
	"github.com/Rajeshwari-1K/AgriSense-AI/classifier"
)

// CheckModelJob watches the model artifact and hot-reloads it when the file
// changes or a previously missing artifact appears.
type CheckModelJob struct {
	classifier *classifier.Classifier
}

func NewCheckModelJob(clf *classifier.Classifier) *CheckModelJob {
	return &CheckModelJob{classifier: clf}
}

func (j *CheckModelJob) Run() {
	j.classifier.ReloadIfChanged()
}
