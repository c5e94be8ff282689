package service

import (
	"testing"
	"time"

	"github.com/Rajeshwari-1K/AgriSense-AI/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func savePrediction(t *testing.T, s *PredictionService, userId, crop string, createdAt time.Time) string {
	t.Helper()
	id, err := s.Save(&model.Prediction{
		UserId:        userId,
		Nitrogen:      10,
		Phosphorus:    20,
		Potassium:     30,
		PredictedCrop: crop,
		Confidence:    90,
		CreatedAt:     createdAt,
	})
	require.NoError(t, err)
	return id
}

func TestGetPredictionsNewestFirst(t *testing.T) {
	setupTestDB(t)
	s := PredictionService{}

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	savePrediction(t, &s, "user-a", "rice", base)
	savePrediction(t, &s, "user-a", "maize", base.Add(time.Hour))
	savePrediction(t, &s, "user-a", "cotton", base.Add(2*time.Hour))
	savePrediction(t, &s, "user-b", "mango", base.Add(3*time.Hour))

	recent, err := s.GetPredictions("user-a", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "cotton", recent[0].PredictedCrop)
	assert.Equal(t, "maize", recent[1].PredictedCrop)

	all, err := s.GetPredictions("user-a", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3, "no limit means full history")

	count, err := s.CountPredictions("user-a")
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestDeletePredictionOwnership(t *testing.T) {
	setupTestDB(t)
	s := PredictionService{}

	id := savePrediction(t, &s, "user-a", "rice", time.Now().UTC())

	deleted, err := s.DeletePrediction(id, "user-b")
	require.NoError(t, err)
	assert.False(t, deleted, "another user's delete must miss")

	count, err := s.CountPredictions("user-a")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "record must be intact after a foreign delete")

	deleted, err = s.DeletePrediction(id, "user-a")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeletePrediction(id, "user-a")
	require.NoError(t, err)
	assert.False(t, deleted, "second delete misses without error")
}

func TestCropDistribution(t *testing.T) {
	setupTestDB(t)
	s := PredictionService{}

	base := time.Now().UTC()
	savePrediction(t, &s, "user-a", "rice", base)
	savePrediction(t, &s, "user-a", "rice", base.Add(time.Minute))
	savePrediction(t, &s, "user-a", "maize", base.Add(2*time.Minute))

	predictions, err := s.GetPredictions("user-a", 0)
	require.NoError(t, err)

	uniqueCrops, distribution := s.CropDistribution(predictions)

	total := 0
	for _, n := range distribution {
		total += n
	}
	count, err := s.CountPredictions("user-a")
	require.NoError(t, err)
	assert.EqualValues(t, count, total, "distribution counts must sum to the owner's count")

	assert.ElementsMatch(t, []string{"rice", "maize"}, uniqueCrops)
	assert.Len(t, distribution, len(uniqueCrops))
	assert.Equal(t, 2, distribution["rice"])
	assert.Equal(t, 1, distribution["maize"])
}
