package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/police-records-api/api"
	"github.com/linesmerrill/police-records-api/config"
	"github.com/linesmerrill/police-records-api/models"
	"github.com/linesmerrill/police-records-api/registration"
)

// Arrest exported for testing purposes
type Arrest struct {
	Registrar *registration.Registrar
}

// RegisterArrestHandler atomically creates an arrest and its charge
func (a Arrest) RegisterArrestHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var in registration.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.ObserveRegistration(api.OutcomeValidation, time.Since(start))
		config.WriteError(w, http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	res, err := a.Registrar.Register(r.Context(), in)
	if err != nil {
		status, body, outcome := registrationError(err)
		api.ObserveRegistration(outcome, time.Since(start))
		if status == http.StatusInternalServerError {
			zap.S().Errorw("arrest registration failed",
				"requestId", api.RequestID(r.Context()),
				"personID", in.PersonID,
				"caseID", in.CaseID,
				"error", body.Details)
		}
		config.WriteError(w, status, body)
		return
	}

	api.ObserveRegistration(api.OutcomeSuccess, time.Since(start))
	zap.S().Infow("arrest registered",
		"requestId", api.RequestID(r.Context()),
		"arrestID", res.Arrest.ArrestID,
		"chargeID", res.Charge.ChargeID)
	api.WriteJSON(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Arrest successfully registered",
		Data:    res,
	})
}

func registrationError(err error) (int, models.ErrorResponse, string) {
	var ve *registration.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, models.ErrorResponse{Success: false, Error: ve.Error()}, api.OutcomeValidation
	}
	var nf *registration.NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound, models.ErrorResponse{Success: false, Error: nf.Error()}, api.OutcomeNotFound
	}
	body := models.ErrorResponse{Success: false, Error: "Transaction failed, no data saved", Details: err.Error()}
	var te *registration.TransactionError
	if errors.As(err, &te) {
		body.Details = te.Details()
	}
	return http.StatusInternalServerError, body, api.OutcomeFailed
}
