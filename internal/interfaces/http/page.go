package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/almacen-api/internal/application/dto"
)

// parsePage lee limit/offset del query string y aplica los defaults.
func parsePage(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", dto.DefaultPageLimit),
		Offset: c.QueryInt("offset", 0),
	}
	if page.Limit <= 0 || page.Limit > 100 {
		page.Limit = dto.DefaultPageLimit
	}
	page.DefaultPage()
	return page
}
