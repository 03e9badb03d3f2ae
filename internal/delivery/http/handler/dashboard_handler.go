package handler

import (
	"net/http"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/usecase"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardUsecase.Overview(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to build dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", overview)
}
