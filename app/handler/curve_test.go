package handler

import (
	"testing"
	"time"

	"bondcurve/app/middleware"
	m "bondcurve/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestCurveHandler(t *testing.T) {

	app := fiber.New()
	middleware.SetupMiddleware(app)

	quoterMock := &QuoterMock{
		price: 0.0000316,
		state: &m.CurveState{ID: 1, Supply: 10_000_000, Reserve: 5},
	}
	tickMock := &TickRetrieverMock{}
	h := NewCurveHandler(quoterMock, tickMock)
	h.InitRoute(app)

	t.Run("현재 가격 조회", func(t *testing.T) {
		var resp PriceResponse
		err := sendReqeust(app, "/curve/price", "GET", nil, &resp)
		assert.NoError(t, err)
		assert.Equal(t, 0.0000316, resp.Price)
	})

	t.Run("커브 상태 조회", func(t *testing.T) {
		var resp StateResponse
		err := sendReqeust(app, "/curve/state", "GET", nil, &resp)
		assert.NoError(t, err)
		assert.Equal(t, 10_000_000.0, resp.Supply)
		assert.Equal(t, 5.0, resp.Reserve)
		assert.False(t, resp.Paused)
	})

	t.Run("시가총액 조회", func(t *testing.T) {
		var resp ValuationResponse
		err := sendReqeust(app, "/curve/valuation", "GET", nil, &resp)
		assert.NoError(t, err)
		assert.Greater(t, resp.Fdv, resp.MarketCap)
	})

	t.Run("매수 견적", func(t *testing.T) {
		var resp QuoteResponse
		err := sendReqeust(app, "/curve/quote/buy?eth=1", "GET", nil, &resp)
		assert.NoError(t, err)
		assert.InDelta(t, 1/0.0000316, resp.Amount, 1e-6)
	})

	t.Run("매수 견적 오류", func(t *testing.T) {
		err := sendReqeust(app, "/curve/quote/buy", "GET", nil, nil)
		assert.Error(t, err)
	})

	t.Run("매도 견적", func(t *testing.T) {
		var resp QuoteResponse
		err := sendReqeust(app, "/curve/quote/sell?tokens=1000", "GET", nil, &resp)
		assert.NoError(t, err)
		assert.InDelta(t, 1000*0.0000316, resp.Amount, 1e-9)
	})

	t.Run("가격 이력 조회", func(t *testing.T) {
		tickMock.ticks = []m.PriceTick{
			{ID: 2, Price: 0.0000317, Supply: 10_031_622, Reserve: 6, CreatedAt: time.Now()},
			{ID: 1, Price: 0.0000316, Supply: 10_000_000, Reserve: 5, CreatedAt: time.Now().Add(-15 * time.Minute)},
		}

		var resp []TickResponse
		err := sendReqeust(app, "/curve/history?limit=1", "GET", nil, &resp)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, 0.0000317, resp[0].Price)
	})
}

func TestAdminHandler(t *testing.T) {

	app := fiber.New()
	middleware.SetupMiddleware(app)

	ownerMock := &OwnerMock{}
	passThrough := func(c *fiber.Ctx) error { return c.Next() }
	NewAdminHandler(ownerMock, passThrough).InitRoute(app)

	t.Run("거래 중지/재개", func(t *testing.T) {
		err := sendReqeust(app, "/admin/pause", "POST", nil, nil)
		assert.NoError(t, err)
		assert.True(t, ownerMock.paused)

		err = sendReqeust(app, "/admin/unpause", "POST", nil, nil)
		assert.NoError(t, err)
		assert.False(t, ownerMock.paused)
	})

	t.Run("reserve ratio 변경", func(t *testing.T) {
		err := sendReqeust(app, "/admin/reserve-ratio", "POST", ReserveRatioReq{RatioPPM: 300_000}, nil)
		assert.NoError(t, err)
		assert.Equal(t, uint32(300_000), ownerMock.ratioPPM)
	})

	t.Run("ratio 범위 검사", func(t *testing.T) {
		err := sendReqeust(app, "/admin/reserve-ratio", "POST", ReserveRatioReq{RatioPPM: 2_000_000}, nil)
		assert.Error(t, err)
	})
}

func TestAdminAuth(t *testing.T) {

	app := fiber.New()
	middleware.SetupMiddleware(app)

	ownerMock := &OwnerMock{}
	auth := NewAuthHandler(UserRetrieverMock{}, "test-key")
	NewAdminHandler(ownerMock, auth.AuthMiddleware).InitRoute(app)

	t.Run("토큰 없이 접근 거부", func(t *testing.T) {
		err := sendReqeust(app, "/admin/pause", "POST", nil, nil)
		assert.Error(t, err)
		assert.False(t, ownerMock.paused)
	})
}
