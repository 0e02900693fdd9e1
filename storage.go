package bondcurve

import (
	"time"

	m "bondcurve/internal/model"

	"github.com/redis/go-redis/v9"
)

// Storage is the ledger contract the engine writes through. The engine is
// the only writer of curve state and wallets; trades are append-only.
type Storage interface {
	RetrieveCurveParams() (*m.CurveParams, error)
	UpdateReserveRatio(ppm uint32) error

	RetrieveCurveState() (*m.CurveState, error)
	UpdateCurvePaused(paused bool) error

	GetOrCreateWallet(address string) (*m.Wallet, error)

	// CommitTrade persists the state row, the wallet row and the trade row
	// in a single transaction.
	CommitTrade(state *m.CurveState, wallet *m.Wallet, trade *m.Trade) error
	RetrieveTrades(address string, limit int) ([]m.Trade, error)

	SavePriceTick(tick *m.PriceTick) error
	RetrievePriceTicksDesc(limit int) ([]m.PriceTick, error)
	SaveDailySnapshot(snap *m.DailySnapshot) error

	RetreiveEventIsActive(eventId uint) bool
	UpdateEventIsActive(eventId uint, isActive bool) error

	SetCache(key string, value interface{}, exp time.Duration)
	GetCache(key string) *redis.StringCmd
}
