package handler

import (
	"fmt"

	m "bondcurve/internal/model"

	"github.com/gofiber/fiber/v2"
)

type TradeHandler struct {
	t Trader
	r TradeRetriever
	w WalletRetriever
}

func NewTradeHandler(t Trader, r TradeRetriever, w WalletRetriever) *TradeHandler {
	return &TradeHandler{
		t: t,
		r: r,
		w: w,
	}
}

func (h *TradeHandler) InitRoute(app *fiber.App) {
	router := app.Group("/trades")

	router.Post("/", h.Trade)
	router.Get("/", h.Hist)

	app.Get("/wallets/:address", h.Wallet)
}

func (h *TradeHandler) Trade(c *fiber.Ctx) error {

	var param TradeReq
	err := c.BodyParser(&param)
	if err != nil {
		return fmt.Errorf("파라미터 BodyParse 시 오류 발생. %w", err)
	}

	err = validCheck(&param)
	if err != nil {
		return fmt.Errorf("파라미터 유효성 검사 시 오류 발생. %w", err)
	}

	side, err := m.ToSide(param.Side)
	if err != nil {
		return err
	}

	switch side {
	case m.Buy:
		result, err := h.t.Buy(param.Address, param.Amount, param.MinReturn)
		if err != nil {
			return fmt.Errorf("buy 시 오류 발생. %w", err)
		}
		return c.Status(fiber.StatusOK).JSON(TradeResponse{
			Received: result.Received,
			Price:    result.Price,
			Supply:   result.State.Supply,
			Reserve:  result.State.Reserve,
		})
	default:
		result, err := h.t.Sell(param.Address, param.Amount, param.MinReturn)
		if err != nil {
			return fmt.Errorf("sell 시 오류 발생. %w", err)
		}
		return c.Status(fiber.StatusOK).JSON(TradeResponse{
			Received: result.Received,
			Price:    result.Price,
			Supply:   result.State.Supply,
			Reserve:  result.State.Reserve,
		})
	}
}

// 거래 이력 조회. address 미지정 시 전체
func (h *TradeHandler) Hist(c *fiber.Ctx) error {

	address := c.Query("address")
	limit := c.QueryInt("limit", 100)

	trades, err := h.r.RetrieveTrades(address, limit)
	if err != nil {
		return fmt.Errorf("RetrieveTrades 시 오류 발생. %w", err)
	}

	resp := make([]HistResponse, len(trades))
	for i, trade := range trades {
		resp[i] = HistResponse{
			Address:     trade.Address,
			Side:        trade.Side.String(),
			EthAmount:   trade.EthAmount,
			TokenAmount: trade.TokenAmount,
			Price:       trade.Price,
			CreatedAt:   trade.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *TradeHandler) Wallet(c *fiber.Ctx) error {

	address := c.Params("address")
	if address == "" {
		return fmt.Errorf("파라미터 address 누락")
	}

	wallet, err := h.w.GetOrCreateWallet(address)
	if err != nil {
		return fmt.Errorf("GetOrCreateWallet 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(WalletResponse{
		Address:      wallet.Address,
		EthBalance:   wallet.EthBalance,
		TokenBalance: wallet.TokenBalance,
	})
}
