package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/assetcache"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/response"
)

// AssetHandler serves the app shell through the asset cache worker, so
// a previously installed shell keeps working with the origin down.
type AssetHandler struct {
	worker *assetcache.Worker
}

func NewAssetHandler(worker *assetcache.Worker) *AssetHandler {
	return &AssetHandler{
		worker: worker,
	}
}

func (h *AssetHandler) Serve(w http.ResponseWriter, r *http.Request) {
	if h.worker == nil {
		response.NotFound(w, "Asset serving is not configured")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, r.URL.Path, nil)
	if err != nil {
		response.InternalServerError(w, "Failed to build asset request")
		return
	}

	res, err := h.worker.Fetch(r.Context(), req)
	if err != nil {
		if errors.Is(err, assetcache.ErrOffline) {
			response.Error(w, http.StatusServiceUnavailable, "Asset unavailable offline", nil)
			return
		}
		response.InternalServerError(w, "Failed to fetch asset")
		return
	}
	defer res.Body.Close()

	for key, values := range res.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.WriteHeader(res.StatusCode)
	io.Copy(w, res.Body)
}
