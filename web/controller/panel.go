package controller

import (
	"net/http"

	"github.com/Rajeshwari-1K/AgriSense-AI/classifier"
	"github.com/Rajeshwari-1K/AgriSense-AI/database/model"
	"github.com/Rajeshwari-1K/AgriSense-AI/logger"
	"github.com/Rajeshwari-1K/AgriSense-AI/web/service"
	"github.com/Rajeshwari-1K/AgriSense-AI/web/session"

	"github.com/gin-gonic/gin"
)

// recentPredictions is how many entries the dashboard shows.
const recentPredictions = 5

// PanelController handles the authenticated pages: dashboard, prediction,
// history and the weather info page.
type PanelController struct {
	BaseController

	classifier        *classifier.Classifier
	predictionService service.PredictionService
}

func NewPanelController(g *gin.RouterGroup, clf *classifier.Classifier) *PanelController {
	a := &PanelController{classifier: clf}
	a.initRouter(g)
	return a
}

func (a *PanelController) initRouter(g *gin.RouterGroup) {
	pages := g.Group("/", a.checkLogin)
	pages.GET("/home", a.home)
	pages.GET("/predict", a.predictForm)
	pages.POST("/predict", a.predict)
	pages.GET("/history", a.history)
	pages.GET("/weather", a.weather)

	// JSON contract, guarded separately so failures come back as 401
	// envelopes rather than redirects.
	g.POST("/delete-prediction/:id", a.checkLoginJSON, a.deletePrediction)
}

// home renders the dashboard with the owner's prediction count and most
// recent entries.
func (a *PanelController) home(c *gin.Context) {
	user := session.GetLoginUser(c)

	count, err := a.predictionService.CountPredictions(user.Id)
	if err != nil {
		logger.Warning("load dashboard count:", err)
		session.Flash(c, "danger", "Error loading dashboard")
		c.Redirect(http.StatusFound, "/auth")
		return
	}
	recent, err := a.predictionService.GetPredictions(user.Id, recentPredictions)
	if err != nil {
		logger.Warning("load recent predictions:", err)
		session.Flash(c, "danger", "Error loading dashboard")
		c.Redirect(http.StatusFound, "/auth")
		return
	}

	html(c, "home.html", "Dashboard", gin.H{
		"prediction_count":   count,
		"recent_predictions": recent,
	})
}

// predictForm shows the measurement input form.
func (a *PanelController) predictForm(c *gin.Context) {
	html(c, "predict.html", "Crop Prediction", nil)
}

// predict parses the seven measurements, runs the classifier and persists
// the result under the session's user. Absent or unparseable fields count
// as 0 rather than failing validation.
func (a *PanelController) predict(c *gin.Context) {
	user := session.GetLoginUser(c)

	prediction := &model.Prediction{
		UserId:      user.Id,
		Nitrogen:    formFloat(c, "N"),
		Phosphorus:  formFloat(c, "P"),
		Potassium:   formFloat(c, "K"),
		Temperature: formFloat(c, "temperature"),
		Humidity:    formFloat(c, "humidity"),
		Ph:          formFloat(c, "ph"),
		Rainfall:    formFloat(c, "rainfall"),
	}

	crop, confidence, err := a.classifier.Predict(prediction.Features())
	if err != nil {
		logger.Error("inference failed:", err)
		session.Flash(c, "danger", "Prediction error, please try again.")
		c.Redirect(http.StatusFound, "/predict")
		return
	}
	prediction.PredictedCrop = crop
	prediction.Confidence = confidence

	if _, err := a.predictionService.Save(prediction); err != nil {
		logger.Error("save prediction:", err)
		session.Flash(c, "danger", "Prediction error, please try again.")
		c.Redirect(http.StatusFound, "/predict")
		return
	}

	session.Flash(c, "success", "Prediction successful! Recommended crop: "+crop)
	html(c, "result.html", "Prediction Result", gin.H{
		"prediction": prediction,
	})
}

// deletePrediction removes one of the owner's predictions. The response is
// a JSON envelope: 401 when anonymous (handled by the guard), 404 when the
// record is missing or not owned, 500 on store failure.
func (a *PanelController) deletePrediction(c *gin.Context) {
	user := session.GetLoginUser(c)
	id := c.Param("id")

	deleted, err := a.predictionService.DeletePrediction(id, user.Id)
	if err != nil {
		logger.Error("delete prediction:", err)
		pureJsonMsg(c, http.StatusInternalServerError, false, "Error deleting prediction")
		return
	}
	if !deleted {
		pureJsonMsg(c, http.StatusNotFound, false, "Prediction not found")
		return
	}
	jsonMsg(c, "Prediction deleted successfully")
}

// history lists the owner's full prediction history newest first, with the
// distinct crops and a count per crop.
func (a *PanelController) history(c *gin.Context) {
	user := session.GetLoginUser(c)

	predictions, err := a.predictionService.GetPredictions(user.Id, 0)
	if err != nil {
		logger.Warning("load history:", err)
		session.Flash(c, "danger", "Error loading history")
		c.Redirect(http.StatusFound, "/home")
		return
	}
	uniqueCrops, distribution := a.predictionService.CropDistribution(predictions)

	html(c, "history.html", "Prediction History", gin.H{
		"predictions":       predictions,
		"unique_crops":      uniqueCrops,
		"crop_distribution": distribution,
	})
}

// weather shows the static weather information page.
func (a *PanelController) weather(c *gin.Context) {
	html(c, "weather.html", "Weather", nil)
}
