package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"qrstudio_backend/internals/helpers/odoo"
)

// JsonFromError memetakan error umum (fiber / Odoo) ke envelope JSON.
// Error domain spesifik fitur dipetakan di controller masing-masing sebelum ke sini.
func JsonFromError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	if odoo.IsCommunication(err) {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
		return JsonErrorCode(c, fiber.StatusBadGateway, "ODOO_UNAVAILABLE",
			"No se pudo comunicar con Odoo. Inténtalo de nuevo.", nil)
	}

	if oe, ok := odoo.AsOperation(err); ok {
		return JsonErrorCode(c, fiber.StatusInternalServerError, "ODOO_ERROR",
			oe.FriendlyMessage(), fiber.Map{"category": oe.Category()})
	}

	log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Error interno del servidor")
}
