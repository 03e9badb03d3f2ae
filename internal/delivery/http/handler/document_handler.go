package handler

import (
	"errors"
	"net/http"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/usecase"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/response"

	"github.com/gorilla/mux"
)

type DocumentHandler struct {
	documentUsecase usecase.DocumentUsecase
}

func NewDocumentHandler(documentUsecase usecase.DocumentUsecase) *DocumentHandler {
	return &DocumentHandler{
		documentUsecase: documentUsecase,
	}
}

// Get returns the structured data for one printable document type.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	data, err := h.documentUsecase.BuildDocumentData(r.Context(), vars["id"], vars["type"])
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrUnknownDocumentType):
			response.Error(w, http.StatusBadRequest, "Unknown document type", nil)
		default:
			response.InternalServerError(w, "Failed to build document")
		}
		return
	}

	response.Success(w, http.StatusOK, "Document data retrieved successfully", data)
}
