package converter

import (
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/dto"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/settings"
)

func ProfileToResponse(p settings.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		Name:      p.Name,
		Reg:       p.Reg,
		Phone:     p.Phone,
		Email:     p.Email,
		Address:   p.Address,
		PublicBio: p.PublicBio,
	}
}
