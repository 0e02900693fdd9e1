package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	o    Owner
	auth fiber.Handler
}

func NewAdminHandler(o Owner, auth fiber.Handler) *AdminHandler {
	return &AdminHandler{
		o:    o,
		auth: auth,
	}
}

func (h *AdminHandler) InitRoute(app *fiber.App) {
	router := app.Group("/admin", h.auth)

	router.Post("/pause", h.Pause)
	router.Post("/unpause", h.Unpause)
	router.Post("/reserve-ratio", h.ReserveRatio)
}

func (h *AdminHandler) Pause(c *fiber.Ctx) error {

	err := h.o.Pause()
	if err != nil {
		return fmt.Errorf("pause 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).SendString("거래 중지 성공")
}

func (h *AdminHandler) Unpause(c *fiber.Ctx) error {

	err := h.o.Unpause()
	if err != nil {
		return fmt.Errorf("unpause 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).SendString("거래 재개 성공")
}

func (h *AdminHandler) ReserveRatio(c *fiber.Ctx) error {

	var param ReserveRatioReq
	err := c.BodyParser(&param)
	if err != nil {
		return fmt.Errorf("파라미터 BodyParse 시 오류 발생. %w", err)
	}

	err = validCheck(&param)
	if err != nil {
		return fmt.Errorf("파라미터 유효성 검사 시 오류 발생. %w", err)
	}

	err = h.o.SetReserveRatio(param.RatioPPM)
	if err != nil {
		return fmt.Errorf("SetReserveRatio 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).SendString("reserve ratio 변경 성공")
}
