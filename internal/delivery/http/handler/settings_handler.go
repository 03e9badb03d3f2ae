package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/dto"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/usecase"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/response"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/validator"
)

type SettingsHandler struct {
	settingsUsecase usecase.SettingsUsecase
	validator       *validator.CustomValidator
}

func NewSettingsHandler(settingsUsecase usecase.SettingsUsecase, validator *validator.CustomValidator) *SettingsHandler {
	return &SettingsHandler{
		settingsUsecase: settingsUsecase,
		validator:       validator,
	}
}

func (h *SettingsHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.settingsUsecase.Login(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, usecase.ErrWrongPassword), errors.Is(err, usecase.ErrPasswordRequired):
			response.Unauthorized(w, "Invalid password")
		default:
			response.InternalServerError(w, "Failed to log in")
		}
		return
	}

	response.Success(w, http.StatusOK, "Logged in successfully", nil)
}

func (h *SettingsHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.settingsUsecase.Logout(r.Context()); err != nil {
		response.InternalServerError(w, "Failed to log out")
		return
	}

	response.Success(w, http.StatusOK, "Logged out successfully", nil)
}

func (h *SettingsHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.settingsUsecase.ChangePassword(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, usecase.ErrWrongPassword):
			response.Unauthorized(w, "Current password is wrong")
		case errors.Is(err, usecase.ErrPasswordTooShort):
			response.Error(w, http.StatusBadRequest, "New password is too short", nil)
		case errors.Is(err, usecase.ErrPasswordMismatch):
			response.Error(w, http.StatusBadRequest, "Password confirmation does not match", nil)
		default:
			response.InternalServerError(w, "Failed to change password")
		}
		return
	}

	response.Success(w, http.StatusOK, "Password changed successfully", nil)
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsUsecase.GetSettings(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get settings")
		return
	}

	response.Success(w, http.StatusOK, "Settings retrieved successfully", settings)
}

func (h *SettingsHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	settings, err := h.settingsUsecase.SaveProfile(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to save profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile saved successfully", settings)
}

func (h *SettingsHandler) SaveHolidays(w http.ResponseWriter, r *http.Request) {
	var req dto.HolidaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	settings, err := h.settingsUsecase.SaveHolidays(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to save holidays")
		return
	}

	response.Success(w, http.StatusOK, "Holidays saved successfully", settings)
}
