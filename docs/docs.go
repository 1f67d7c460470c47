// Package docs Police Records API.
//
// Documentation of the Police Records API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - bearer
//
//    SecurityDefinitions:
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/linesmerrill/police-records-api/models"
	"github.com/linesmerrill/police-records-api/registration"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api and whether the database answers a ping.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/arrest/register arrest registerArrest
// Atomically creates an arrest and its charge, reopens the case and marks the person a suspect.
// responses:
//   200: registerArrestResponse
//   400: errorResponse
//   404: errorResponse
//   500: errorResponse

// swagger:parameters registerArrest
type registerArrestParams struct {
	// in:body
	Body registration.Input
}

// The created arrest and charge.
// swagger:response registerArrestResponse
type registerArrestResponseWrapper struct {
	// in:body
	Body struct {
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Data    registration.Result `json:"data"`
	}
}

// swagger:route GET /api/collections records listCollections
// Lists the record collections with their key field and id prefix.
// responses:
//   200: collectionsResponse

// swagger:response collectionsResponse
type collectionsResponseWrapper struct {
	// in:body
	Body struct {
		Success bool                `json:"success"`
		Data    []models.Collection `json:"data"`
	}
}

// swagger:route GET /api/records/{collection} records listRecords
// Returns one page of a collection.
// responses:
//   200: pageResponse
//   404: errorResponse

// swagger:response pageResponse
type pageResponseWrapper struct {
	// in:body
	Body models.PageResponse
}

// swagger:route GET /api/dashboard/stats dashboard dashboardStats
// Aggregate counts and breakdowns, refreshed every five minutes.
// responses:
//   200: dashboardResponse

// swagger:response dashboardResponse
type dashboardResponseWrapper struct {
	// in:body
	Body struct {
		Success bool                  `json:"success"`
		Data    models.DashboardStats `json:"data"`
	}
}

// swagger:route POST /api/auth/login auth login
// Exchanges credentials for a bearer token.
// responses:
//   200: loginResponse
//   401: errorResponse

// swagger:parameters login
type loginParams struct {
	// in:body
	Body models.LoginRequest
}

// swagger:response loginResponse
type loginResponseWrapper struct {
	// in:body
	Body models.LoginResponse
}

// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorResponse
}
