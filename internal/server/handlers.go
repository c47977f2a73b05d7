package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/patient"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/predict"
)

type predictResponse struct {
	predict.Outcome
	Columns   []string  `json:"columns"`
	Row       []float64 `json:"row"`
	RequestID string    `json:"request_id"`
}

type fieldView struct {
	patient.Field
	Value string
	Error string
}

type pageData struct {
	Fields         []fieldView
	Outcome        *predict.Outcome
	Failure        string
	ShowConfidence bool
}

func newPage(form patient.Form, verr *patient.ValidationError) pageData {
	msgs := map[string]string{}
	if verr != nil {
		for _, fe := range verr.Fields {
			msgs[fe.Field] = fe.Message
		}
	}

	fields := patient.Fields()
	views := make([]fieldView, 0, len(fields))
	for _, f := range fields {
		views = append(views, fieldView{Field: f, Value: form.Value(f.Key), Error: msgs[f.Key]})
	}
	return pageData{Fields: views}
}

func (h *handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPage(patient.DefaultForm(), nil))
}

func (h *handler) submit(c *gin.Context) {
	form := patient.DefaultForm()
	if err := c.ShouldBind(&form); err != nil {
		page := newPage(patient.DefaultForm(), nil)
		page.Failure = "The form could not be read. Please check the values and try again."
		c.HTML(http.StatusBadRequest, "index.html", page)
		return
	}
	// the page must select the option that was scored
	form.Normalize()

	p, err := h.svc.Predict(c.Request.Context(), form)
	var verr *patient.ValidationError
	switch {
	case errors.As(err, &verr):
		c.HTML(http.StatusUnprocessableEntity, "index.html", newPage(form, verr))
		return
	case err != nil:
		h.logFailure(c, err)
		page := newPage(form, nil)
		page.Failure = "Prediction failed. Please try again later."
		c.HTML(http.StatusInternalServerError, "index.html", page)
		return
	}

	outcome := predict.Present(p, h.opts.ShowConfidence)
	page := newPage(form, nil)
	page.Outcome = &outcome
	page.ShowConfidence = outcome.Confidence != nil
	c.HTML(http.StatusOK, "index.html", page)
}

func (h *handler) predictJSON(c *gin.Context) {
	form := patient.DefaultForm()
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	p, err := h.svc.Predict(c.Request.Context(), form)
	var verr *patient.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation_failed",
			"fields": verr.Fields,
		})
		return
	case err != nil:
		h.logFailure(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction_failed"})
		return
	}

	c.JSON(http.StatusOK, predictResponse{
		Outcome:   predict.Present(p, h.opts.ShowConfidence),
		Columns:   patient.ColumnNames(),
		Row:       p.Row.Slice(),
		RequestID: c.GetString("request_id"),
	})
}

func (h *handler) logFailure(c *gin.Context, err error) {
	log.WithError(err).WithField("request_id", c.GetString("request_id")).Error("prediction failed")
}
