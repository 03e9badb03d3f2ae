package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/dto"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/usecase"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/response"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/validator"
)

// maxSnapshotBytes bounds an uploaded snapshot. The store fits a
// single practice, so anything bigger is not a legitimate backup.
const maxSnapshotBytes = 32 << 20

type BackupHandler struct {
	backupUsecase usecase.BackupUsecase
	validator     *validator.CustomValidator
}

func NewBackupHandler(backupUsecase usecase.BackupUsecase, validator *validator.CustomValidator) *BackupHandler {
	return &BackupHandler{
		backupUsecase: backupUsecase,
		validator:     validator,
	}
}

// Export streams the full snapshot as a downloadable JSON file.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.backupUsecase.Export(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to export backup")
		return
	}

	filename := fmt.Sprintf("backup-clinica-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(snapshot)
}

func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Failed to read request body", nil)
		return
	}

	if err := h.backupUsecase.Import(r.Context(), data); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSnapshot):
			response.Error(w, http.StatusBadRequest, "Backup file is not valid", nil)
		case errors.Is(err, usecase.ErrUnsupportedSnapshot):
			response.Error(w, http.StatusBadRequest, "Backup file version is not supported", nil)
		default:
			response.InternalServerError(w, "Failed to import backup")
		}
		return
	}

	response.Success(w, http.StatusOK, "Backup imported successfully", nil)
}

func (h *BackupHandler) Wipe(w http.ResponseWriter, r *http.Request) {
	var req dto.WipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.backupUsecase.Wipe(r.Context(), req.Confirm); err != nil {
		if errors.Is(err, usecase.ErrWipeNotConfirmed) {
			response.Error(w, http.StatusBadRequest, "Confirmation phrase does not match", nil)
			return
		}
		response.InternalServerError(w, "Failed to wipe data")
		return
	}

	response.Success(w, http.StatusOK, "All data erased; restart the application", nil)
}
