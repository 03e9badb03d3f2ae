package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/dto"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/usecase"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/response"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.CreatePatient(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrNameRequired) {
			response.Error(w, http.StatusBadRequest, "Name is required", nil)
			return
		}
		response.InternalServerError(w, "Failed to create patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	patient, err := h.patientUsecase.UpdatePatient(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrNameRequired):
			response.Error(w, http.StatusBadRequest, "Name is required", nil)
		default:
			response.InternalServerError(w, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.patientUsecase.DeletePatient(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to delete patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	patient, err := h.patientUsecase.GetPatient(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	patients, err := h.patientUsecase.SearchPatients(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to search patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}
