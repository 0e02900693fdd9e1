package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type CurveHandler struct {
	q Quoter
	t TickRetriever
}

func NewCurveHandler(q Quoter, t TickRetriever) *CurveHandler {
	return &CurveHandler{
		q: q,
		t: t,
	}
}

func (h *CurveHandler) InitRoute(app *fiber.App) {
	router := app.Group("/curve")

	router.Get("/price", h.Price)
	router.Get("/state", h.State)
	router.Get("/valuation", h.Valuation)
	router.Get("/quote/buy", h.QuoteBuy)
	router.Get("/quote/sell", h.QuoteSell)
	router.Get("/history", h.History)
}

// 현재 스팟 가격
func (h *CurveHandler) Price(c *fiber.Ctx) error {

	price, err := h.q.SpotPrice()
	if err != nil {
		return fmt.Errorf("SpotPrice 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(PriceResponse{Price: price})
}

func (h *CurveHandler) State(c *fiber.Ctx) error {

	state, err := h.q.State()
	if err != nil {
		return fmt.Errorf("State 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(StateResponse{
		Supply:  state.Supply,
		Reserve: state.Reserve,
		Paused:  state.Paused,
	})
}

// 시가총액 + 완전 희석 가치
func (h *CurveHandler) Valuation(c *fiber.Ctx) error {

	mc, err := h.q.MarketCap()
	if err != nil {
		return fmt.Errorf("MarketCap 시 오류 발생. %w", err)
	}
	fdv, err := h.q.FullyDilutedValuation()
	if err != nil {
		return fmt.Errorf("FullyDilutedValuation 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(ValuationResponse{MarketCap: mc, Fdv: fdv})
}

func (h *CurveHandler) QuoteBuy(c *fiber.Ctx) error {

	eth := c.QueryFloat("eth")

	tokens, err := h.q.QuoteBuy(eth)
	if err != nil {
		return fmt.Errorf("QuoteBuy 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(QuoteResponse{Amount: tokens})
}

func (h *CurveHandler) QuoteSell(c *fiber.Ctx) error {

	tokens := c.QueryFloat("tokens")

	eth, err := h.q.QuoteSell(tokens)
	if err != nil {
		return fmt.Errorf("QuoteSell 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(QuoteResponse{Amount: eth})
}

// 가격 틱 이력. limit 기본 96개(하루치)
func (h *CurveHandler) History(c *fiber.Ctx) error {

	limit := c.QueryInt("limit", 96)

	ticks, err := h.t.RetrievePriceTicksDesc(limit)
	if err != nil {
		return fmt.Errorf("RetrievePriceTicksDesc 시 오류 발생. %w", err)
	}

	resp := make([]TickResponse, len(ticks))
	for i, tick := range ticks {
		resp[i] = TickResponse{
			Price:     tick.Price,
			Supply:    tick.Supply,
			Reserve:   tick.Reserve,
			CreatedAt: tick.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
