package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Add("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, log logrus.FieldLogger, v any) {
	_, err := SendJSON(w, v)
	if err != nil {
		log.WithError(err).WithField("response", v).Error("unable to send response")
	}
}

func sendErrorOrLog(w http.ResponseWriter, log logrus.FieldLogger, statusCode int, e error) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	payload, err := json.Marshal(wrapError(e))
	if err == nil {
		_, err = w.Write(payload)
	}
	if err != nil {
		log.WithError(err).WithField("sent_error", e.Error()).Error("unable to send error")
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}
