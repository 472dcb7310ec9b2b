// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

/*
Package respond standardizes the JSON response surface of the API.

Every handler terminates through one of these helpers, which guarantees a
uniform envelope shape across the whole service:

	{ "data": ... }                 success
	{ "data": ..., "meta": ... }    paginated success
	{ "error": { "code", "message", "details" } }   failure

Failures are mapped from [apperr.AppError]; anything else is treated as an
internal error and logged with the request-scoped logger.
*/
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/novaria/api/internal/platform/apperr"
	"github.com/novaria/api/internal/platform/ctxutil"
	"github.com/novaria/api/pkg/pagination"
)

// SuccessEnvelope wraps a single resource or collection.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PaginatedEnvelope wraps a collection page with its pagination metadata.
type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorBody is the wire shape of a failed request.
type ErrorBody struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// ErrorEnvelope wraps an [ErrorBody].
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// JSON writes an arbitrary payload with the given status code.
func JSON(writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)

	if payload == nil {
		return
	}
	// Encoding failures after WriteHeader cannot be reported to the client.
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 response with a data envelope.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Created writes a 201 response with a data envelope.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// Paginated writes a 200 response with data and pagination metadata.
func Paginated(writer http.ResponseWriter, data any, meta pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: meta})
}

// NoContent writes an empty 204 response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts err into the error envelope and writes it.
//
// Unknown error types are masked as internal errors so implementation details
// never leak to clients.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger := ctxutil.GetLogger(request.Context())
		logger.Error("request failed",
			"code", appError.Code,
			"error", appError.Error(),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{Error: ErrorBody{
		Code:    appError.Code,
		Message: appError.Message,
		Details: appError.Details,
	}})
}
