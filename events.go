package bondcurve

import (
	"fmt"
	"math/big"
	"time"

	m "bondcurve/internal/model"

	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
)

const (
	spotCacheKey      = "curve:spot"
	auditAlertedKey   = "curve:audit:alerted"
	auditProbeDivisor = 10 // solvency probe sells a tenth of the supply
	parityTolerance   = 0.01
)

func (e *CurveEngine) runPriceTickEvent(isManual WayOfLaunch) {
	e.lg.Info().Msgf("Starting PriceTickEvent. isManual : %t", isManual)

	e.mu.Lock()
	c, _, state, err := e.loadCurve()
	e.mu.Unlock()
	if err != nil {
		e.lg.Error().Err(err).Msg("[PriceTickEvent] loadCurve 시, 에러 발생")
		e.ch <- fmt.Sprintf("[PriceTickEvent] loadCurve 시, 에러 발생. %s", err)
		return
	}

	price := c.Spot(state.Supply)
	err = e.stg.SavePriceTick(&m.PriceTick{
		Supply:  state.Supply,
		Price:   price,
		Reserve: state.Reserve,
	})
	if err != nil {
		e.lg.Error().Err(err).Msg("[PriceTickEvent] SavePriceTick 시, 에러 발생")
		e.ch <- fmt.Sprintf("[PriceTickEvent] SavePriceTick 시, 에러 발생. %s", err)
		return
	}

	e.stg.SetCache(spotCacheKey, price, 15*time.Minute)

	if isManual {
		e.ch <- fmt.Sprintf("[알림] 현재 스팟 가격: %.8f", price)
	}
	e.lg.Info().Msg("PriceTickEvent completed")
}

// runReserveAuditEvent probes solvency: if paying out a sell of a tenth of
// the current supply would drain the reserve, an alert goes out. The cache
// dedupes the alert until it expires, so a persistently thin reserve does
// not spam the channel every hour.
func (e *CurveEngine) runReserveAuditEvent(isManual WayOfLaunch) {
	e.lg.Info().Msgf("Starting ReserveAuditEvent. isManual : %t", isManual)

	e.mu.Lock()
	c, _, state, err := e.loadCurve()
	e.mu.Unlock()
	if err != nil {
		e.lg.Error().Err(err).Msg("[ReserveAuditEvent] loadCurve 시, 에러 발생")
		e.ch <- fmt.Sprintf("[ReserveAuditEvent] loadCurve 시, 에러 발생. %s", err)
		return
	}

	probe := state.Supply / auditProbeDivisor
	if probe <= 0 {
		return
	}
	need, err := c.QuoteSell(probe, state.Supply)
	if err != nil {
		e.lg.Error().Err(err).Msg("[ReserveAuditEvent] QuoteSell 시, 에러 발생")
		return
	}

	if state.Reserve >= need {
		if isManual {
			e.ch <- fmt.Sprintf("[알림] 리저브 정상. 잔고: %.4f, 매도 수요 추정: %.4f", state.Reserve, need)
		}
		e.lg.Info().Msg("ReserveAuditEvent completed")
		return
	}

	if _, err := e.stg.GetCache(auditAlertedKey).Result(); err == redis.Nil {
		e.ch <- fmt.Sprintf("[경고] 리저브 부족. 잔고: %.4f, 공급량 10%% 매도 수요: %.4f", state.Reserve, need)
		e.stg.SetCache(auditAlertedKey, "1", 6*time.Hour)
	}
	e.lg.Info().Msg("ReserveAuditEvent completed")
}

func (e *CurveEngine) runDailySnapshotEvent(isManual WayOfLaunch) {
	e.lg.Info().Msgf("Starting DailySnapshotEvent. isManual : %t", isManual)

	e.mu.Lock()
	c, _, state, err := e.loadCurve()
	e.mu.Unlock()
	if err != nil {
		e.lg.Error().Err(err).Msg("[DailySnapshotEvent] loadCurve 시, 에러 발생")
		e.ch <- fmt.Sprintf("[DailySnapshotEvent] loadCurve 시, 에러 발생. %s", err)
		return
	}

	err = e.stg.SaveDailySnapshot(&m.DailySnapshot{
		Date:      datatypes.Date(time.Now()),
		Supply:    state.Supply,
		Reserve:   state.Reserve,
		MarketCap: c.MarketCap(state.Supply),
		Fdv:       c.FullyDilutedValuation(state.Supply),
	})
	if err != nil {
		e.lg.Error().Err(err).Msg("[DailySnapshotEvent] SaveDailySnapshot 시, 에러 발생")
		e.ch <- fmt.Sprintf("[DailySnapshotEvent] SaveDailySnapshot 시, 에러 발생. %s", err)
		return
	}

	e.lg.Info().Msg("DailySnapshotEvent completed")
}

// weiPerEth converts the mirror's wei-scale figures onto the local
// float64 eth scale before comparison.
var weiPerEth = new(big.Float).SetFloat64(1e18)

func (e *CurveEngine) runMirrorParityEvent(isManual WayOfLaunch) {
	if e.mir == nil {
		return
	}
	e.lg.Info().Msgf("Starting MirrorParityEvent. isManual : %t", isManual)

	e.mu.Lock()
	c, _, state, err := e.loadCurve()
	e.mu.Unlock()
	if err != nil {
		e.lg.Error().Err(err).Msg("[MirrorParityEvent] loadCurve 시, 에러 발생")
		return
	}

	onPrice, err := e.mir.CurrentPrice()
	if err != nil {
		e.lg.Error().Err(err).Msg("[MirrorParityEvent] CurrentPrice 시, 에러 발생")
		e.ch <- fmt.Sprintf("[MirrorParityEvent] CurrentPrice 시, 에러 발생. %s", err)
		return
	}
	onReserve, err := e.mir.ReserveBalance()
	if err != nil {
		e.lg.Error().Err(err).Msg("[MirrorParityEvent] ReserveBalance 시, 에러 발생")
		e.ch <- fmt.Sprintf("[MirrorParityEvent] ReserveBalance 시, 에러 발생. %s", err)
		return
	}

	chainPrice := weiToEth(onPrice)
	chainReserve := weiToEth(onReserve)

	localPrice := c.Spot(state.Supply)
	if gap := relGap(localPrice, chainPrice); gap > parityTolerance {
		e.ch <- fmt.Sprintf("[경고] 온체인 가격 괴리 %.2f%%. 로컬: %.8f, 온체인: %.8f", gap*100, localPrice, chainPrice)
	}
	if gap := relGap(state.Reserve, chainReserve); gap > parityTolerance {
		e.ch <- fmt.Sprintf("[경고] 온체인 리저브 괴리 %.2f%%. 로컬: %.4f, 온체인: %.4f", gap*100, state.Reserve, chainReserve)
	}

	if isManual {
		e.ch <- fmt.Sprintf("[알림] 로컬 %.8f / 온체인 %.8f", localPrice, chainPrice)
	}
	e.lg.Info().Msg("MirrorParityEvent completed")
}

func weiToEth(wei *big.Int) float64 {
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerEth).Float64()
	return f
}

func relGap(local, chain float64) float64 {
	if local == 0 && chain == 0 {
		return 0
	}
	base := local
	if base == 0 {
		base = chain
	}
	gap := (local - chain) / base
	if gap < 0 {
		gap = -gap
	}
	return gap
}
