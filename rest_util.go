package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"golang.org/x/exp/slog"
)

// upper bound for request bodies
const MAX_BODY_BYTES = 8 << 20

func ReadRequestBody[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var req T
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, MAX_BODY_BYTES))
	if err := decoder.Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	return req, nil
}

func WriteResponse[T any](w http.ResponseWriter, resp T, status int) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

type Result struct {
	result any
	status int
}

func OK[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusOK,
	}
}

func BadRequest[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusBadRequest,
	}
}

func InternalError[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusInternalServerError,
	}
}

// Registers a POST handler receiving the json decoded body.
func MapPost[F any](app *mux.Router, path string, handler func(F) Result) {
	app.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		body, err := ReadRequestBody[F](w, r)
		if err != nil {
			_Respond(w, r, BadRequest(err.Error()))
			return
		}
		_Respond(w, r, handler(body))
	}).Methods(http.MethodPost)
}

// Registers a GET handler receiving the query parameters.
func MapGet(app *mux.Router, path string, handler func(url.Values) Result) {
	app.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		_Respond(w, r, handler(r.URL.Query()))
	}).Methods(http.MethodGet)
}

func _Respond(w http.ResponseWriter, r *http.Request, res Result) {
	request := r.Method + " " + r.URL.Path
	if res.status != http.StatusOK {
		slog.Error("failed "+request, "status", res.status)
		WriteResponse(w, NewErrorResponse(request, res.result), res.status)
		return
	}
	slog.Info("finished " + request)
	WriteResponse(w, res.result, res.status)
}
