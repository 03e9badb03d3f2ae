package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/dto"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/usecase"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/calendar"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/response"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpsertAppointment(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBlockedDay):
			response.Error(w, http.StatusConflict, "Appointments cannot be booked on weekends or holidays", nil)
		case errors.Is(err, usecase.ErrInvalidDate),
			errors.Is(err, usecase.ErrDateRequired),
			errors.Is(err, usecase.ErrTimeRequired),
			errors.Is(err, usecase.ErrPatientRequired):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req dto.EditAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	appointment, err := h.appointmentUsecase.EditAppointment(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrAppointmentNotFound) {
			response.NotFound(w, "Appointment not found")
			return
		}
		response.InternalServerError(w, "Failed to edit appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.appointmentUsecase.DeleteAppointment(r.Context(), id); err != nil {
		response.InternalServerError(w, "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

// ByDate lists a single day's schedule. The date defaults to today.
func (h *AppointmentHandler) ByDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = calendar.Today()
	}
	if !calendar.IsValidISO(date) {
		response.Error(w, http.StatusBadRequest, "Invalid date", nil)
		return
	}

	appointments, err := h.appointmentUsecase.AppointmentsByDate(r.Context(), date)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ByPatient(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]

	appointments, err := h.appointmentUsecase.AppointmentsByPatient(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.UpcomingAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list upcoming appointments")
		return
	}

	response.Success(w, http.StatusOK, "Upcoming appointments retrieved successfully", appointments)
}
