package handlers

import (
	"medtrack/internal/domain/catalogs/centre"
	"medtrack/internal/infrastructure/http/v1/dto"
)

// CentreHTTPHandler is a type alias for the configured generic handler.
type CentreHTTPHandler = CatalogHandler[
	*centre.Centre,
	dto.CreateCentreRequest,
	dto.UpdateCentreRequest,
]

// NewCentreHandler wires the generic catalog handler for medical centres.
func NewCentreHandler(
	base *BaseHandler,
	service *centre.Service,
) *CentreHTTPHandler {

	config := CatalogHandlerConfig[
		*centre.Centre,
		dto.CreateCentreRequest,
		dto.UpdateCentreRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "medical_centre",

		MapCreateDTO: func(req dto.CreateCentreRequest) *centre.Centre {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateCentreRequest, existing *centre.Centre) *centre.Centre {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *centre.Centre) any {
			return dto.FromCentre(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
