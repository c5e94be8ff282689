package service

import (
	"time"

	"github.com/Rajeshwari-1K/AgriSense-AI/database"
	"github.com/Rajeshwari-1K/AgriSense-AI/database/model"

	"github.com/google/uuid"
)

type PredictionService struct{}

// Save stores a prediction under its owner and returns the generated id.
// CreatedAt is stamped unless the caller already set it.
func (s *PredictionService) Save(prediction *model.Prediction) (string, error) {
	db := database.GetDB()

	if prediction.Id == "" {
		prediction.Id = uuid.NewString()
	}
	if prediction.CreatedAt.IsZero() {
		prediction.CreatedAt = time.Now().UTC()
	}
	if err := db.Create(prediction).Error; err != nil {
		return "", err
	}
	return prediction.Id, nil
}

// GetPredictions returns the user's predictions newest first. A limit <= 0
// returns the full history.
func (s *PredictionService) GetPredictions(userId string, limit int) ([]*model.Prediction, error) {
	db := database.GetDB()

	var predictions []*model.Prediction
	query := db.Model(model.Prediction{}).
		Where("user_id = ?", userId).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

// CountPredictions returns how many predictions the user owns.
func (s *PredictionService) CountPredictions(userId string) (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(model.Prediction{}).Where("user_id = ?", userId).Count(&count).Error
	return count, err
}

// CountAll returns the total number of stored predictions across all users.
func (s *PredictionService) CountAll() (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(model.Prediction{}).Count(&count).Error
	return count, err
}

// DeletePrediction removes the prediction only when userId owns it. A miss
// (unknown id or someone else's record) returns false without error.
func (s *PredictionService) DeletePrediction(id string, userId string) (bool, error) {
	db := database.GetDB()

	result := db.Where("id = ? AND user_id = ?", id, userId).Delete(&model.Prediction{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CropDistribution derives the distinct crop labels and a count per label
// from a prediction list. The counts always sum to len(predictions).
func (s *PredictionService) CropDistribution(predictions []*model.Prediction) ([]string, map[string]int) {
	uniqueCrops := make([]string, 0)
	distribution := make(map[string]int)
	for _, p := range predictions {
		if _, seen := distribution[p.PredictedCrop]; !seen {
			uniqueCrops = append(uniqueCrops, p.PredictedCrop)
		}
		distribution[p.PredictedCrop]++
	}
	return uniqueCrops, distribution
}
