package controllers

import (
	"github.com/wahid1099/CourseMaster-Backend/middleware"

	"github.com/gofiber/fiber/v2"
)

// RequestCertificate requests a certificate for a completed course
func (ctrl *Controller) RequestCertificate(c *fiber.Ctx) error {
	userID, ok := ctrl.requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	request, err := ctrl.Certificates.Request(c.Context(), userID, courseID)
	if err != nil {
		return serviceError(c, err, "User not enrolled in this course!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate request submitted successfully!", request)
}

// ApproveCertificate issues a certificate for a pending request
func (ctrl *Controller) ApproveCertificate(c *fiber.Ctx) error {
	adminID, ok := ctrl.requireAdmin(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	requestID := c.Locals("requestID").(uint)

	certificate, err := ctrl.Certificates.Approve(c.Context(), requestID, adminID)
	if err != nil {
		return serviceError(c, err, "Certificate request not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued successfully!", certificate)
}

// GetUserCertificates gets all certificates for the current user
func (ctrl *Controller) GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := ctrl.requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificates, err := ctrl.Certificates.ListForUser(c.Context(), userID)
	if err != nil {
		return serviceError(c, err, "Certificates not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", certificates)
}
