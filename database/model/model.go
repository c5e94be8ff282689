package model

import "time"

// User is an account record. Passwords are stored only as bcrypt hashes.
type User struct {
	Id        string     `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name"`
	Email     string     `json:"email" gorm:"uniqueIndex"`
	Password  string     `json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

// Prediction is one stored inference result. UserId is a weak reference to
// the owning user, no foreign key and no cascading delete.
type Prediction struct {
	Id            string    `json:"id" gorm:"primaryKey"`
	UserId        string    `json:"-" gorm:"index"`
	Nitrogen      float64   `json:"N" form:"N"`
	Phosphorus    float64   `json:"P" form:"P"`
	Potassium     float64   `json:"K" form:"K"`
	Temperature   float64   `json:"temperature" form:"temperature"`
	Humidity      float64   `json:"humidity" form:"humidity"`
	Ph            float64   `json:"ph" form:"ph"`
	Rainfall      float64   `json:"rainfall" form:"rainfall"`
	PredictedCrop string    `json:"predictedCrop"`
	Confidence    float64   `json:"confidence"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Features returns the record's feature vector in classifier input order.
func (p *Prediction) Features() [7]float64 {
	return [7]float64{p.Nitrogen, p.Phosphorus, p.Potassium, p.Temperature, p.Humidity, p.Ph, p.Rainfall}
}
