package job

import (
	"github.com/Rajeshwari-1K/AgriSense-AI/logger"
	"github.com/Rajeshwari-1K/AgriSense-AI/web/service"
)

// StatsJob logs a daily usage line: registered users and stored
// predictions.
type StatsJob struct {
	userService       service.UserService
	predictionService service.PredictionService
}

func NewStatsJob() *StatsJob {
	return &StatsJob{}
}

func (j *StatsJob) Run() {
	users, err := j.userService.CountUsers()
	if err != nil {
		logger.Warning("stats job: count users:", err)
		return
	}

	total, err := j.predictionService.CountAll()
	if err != nil {
		logger.Warning("stats job: count predictions:", err)
		return
	}
	logger.Infof("stats: %d users, %d predictions stored", users, total)
}
