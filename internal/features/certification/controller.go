package certification

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type CertificationController struct {
	Service CertificationService
}

func NewCertificationController(service CertificationService) *CertificationController {
	return &CertificationController{Service: service}
}

func (ctrl *CertificationController) List(c *fiber.Ctx) error {
	certs, err := ctrl.Service.List(c.UserContext(), c.QueryBool("include_inactive"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list certifications",
		})
	}
	return c.JSON(certs)
}

func (ctrl *CertificationController) Get(c *fiber.Ctx) error {
	cert, err := ctrl.Service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return certError(c, err)
	}
	return c.JSON(cert)
}

func (ctrl *CertificationController) Create(c *fiber.Ctx) error {
	var req UpsertCertificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	cert, err := ctrl.Service.Create(c.UserContext(), &req)
	if err != nil {
		return certError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cert)
}

func (ctrl *CertificationController) Update(c *fiber.Ctx) error {
	var req UpsertCertificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	cert, err := ctrl.Service.Update(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return certError(c, err)
	}
	return c.JSON(cert)
}

func (ctrl *CertificationController) Delete(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return certError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Certification deleted successfully"})
}

func certError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrCertificationNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
