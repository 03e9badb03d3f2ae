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

type ClinicalRecordHandler struct {
	recordUsecase usecase.ClinicalRecordUsecase
	validator     *validator.CustomValidator
}

func NewClinicalRecordHandler(recordUsecase usecase.ClinicalRecordUsecase, validator *validator.CustomValidator) *ClinicalRecordHandler {
	return &ClinicalRecordHandler{
		recordUsecase: recordUsecase,
		validator:     validator,
	}
}

func (h *ClinicalRecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]

	record, err := h.recordUsecase.GetRecord(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to get clinical record")
		return
	}

	response.Success(w, http.StatusOK, "Clinical record retrieved successfully", record)
}

func (h *ClinicalRecordHandler) SaveAnamnesis(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]

	var req dto.AnamnesisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	record, err := h.recordUsecase.SaveAnamnesis(r.Context(), patientID, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to save anamnesis")
		return
	}

	response.Success(w, http.StatusOK, "Anamnesis saved successfully", record)
}

func (h *ClinicalRecordHandler) AppendVisit(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]

	var req dto.AppendVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.AppendVisit(r.Context(), patientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrNoteRequired):
			response.Error(w, http.StatusBadRequest, "Visit note is required", nil)
		default:
			response.InternalServerError(w, "Failed to append visit")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Visit added successfully", record)
}

func (h *ClinicalRecordHandler) EditVisit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.EditVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	record, err := h.recordUsecase.EditVisit(r.Context(), vars["id"], vars["visitId"], &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrVisitNotFound):
			response.NotFound(w, "Visit not found")
		case errors.Is(err, usecase.ErrNoteRequired):
			response.Error(w, http.StatusBadRequest, "Visit note is required", nil)
		default:
			response.InternalServerError(w, "Failed to edit visit")
		}
		return
	}

	response.Success(w, http.StatusOK, "Visit updated successfully", record)
}

func (h *ClinicalRecordHandler) DeleteVisit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	record, err := h.recordUsecase.DeleteVisit(r.Context(), vars["id"], vars["visitId"])
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to delete visit")
		return
	}

	response.Success(w, http.StatusOK, "Visit deleted successfully", record)
}
