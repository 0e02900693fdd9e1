package bondcurve

import (
	"time"

	md "bondcurve/internal/model"

	"github.com/redis/go-redis/v9"
)

type StorageMock struct {
	params    *md.CurveParams
	state     *md.CurveState
	wallets   map[string]*md.Wallet
	trades    []md.Trade
	ticks     []md.PriceTick
	snapshots []md.DailySnapshot
	cache     map[string]string
	err       error
}

func NewStorageMock(params *md.CurveParams, state *md.CurveState) *StorageMock {
	return &StorageMock{
		params:  params,
		state:   state,
		wallets: make(map[string]*md.Wallet),
		cache:   make(map[string]string),
	}
}

func (m *StorageMock) RetrieveCurveParams() (*md.CurveParams, error) {
	if m.err != nil {
		return nil, m.err
	}
	cp := *m.params
	return &cp, nil
}

func (m *StorageMock) UpdateReserveRatio(ppm uint32) error {
	if m.err != nil {
		return m.err
	}
	m.params.ReserveRatioPPM = ppm
	return nil
}

func (m *StorageMock) RetrieveCurveState() (*md.CurveState, error) {
	if m.err != nil {
		return nil, m.err
	}
	cs := *m.state
	return &cs, nil
}

func (m *StorageMock) UpdateCurvePaused(paused bool) error {
	if m.err != nil {
		return m.err
	}
	m.state.Paused = paused
	return nil
}

func (m *StorageMock) GetOrCreateWallet(address string) (*md.Wallet, error) {
	if m.err != nil {
		return nil, m.err
	}
	if w, ok := m.wallets[address]; ok {
		cp := *w
		return &cp, nil
	}
	w := &md.Wallet{ID: uint(len(m.wallets) + 1), Address: address, EthBalance: 10}
	m.wallets[address] = w
	cp := *w
	return &cp, nil
}

func (m *StorageMock) CommitTrade(state *md.CurveState, wallet *md.Wallet, trade *md.Trade) error {
	if m.err != nil {
		return m.err
	}
	*m.state = *state
	cp := *wallet
	m.wallets[wallet.Address] = &cp
	trade.ID = uint(len(m.trades) + 1)
	trade.CreatedAt = time.Now()
	m.trades = append(m.trades, *trade)
	return nil
}

func (m *StorageMock) RetrieveTrades(address string, limit int) ([]md.Trade, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []md.Trade
	for i := len(m.trades) - 1; i >= 0; i-- {
		if address != "" && m.trades[i].Address != address {
			continue
		}
		out = append(out, m.trades[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *StorageMock) SavePriceTick(tick *md.PriceTick) error {
	if m.err != nil {
		return m.err
	}
	m.ticks = append(m.ticks, *tick)
	return nil
}

func (m *StorageMock) RetrievePriceTicksDesc(limit int) ([]md.PriceTick, error) {
	var out []md.PriceTick
	for i := len(m.ticks) - 1; i >= 0; i-- {
		out = append(out, m.ticks[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *StorageMock) SaveDailySnapshot(snap *md.DailySnapshot) error {
	if m.err != nil {
		return m.err
	}
	m.snapshots = append(m.snapshots, *snap)
	return nil
}

func (m *StorageMock) RetreiveEventIsActive(eventId uint) bool {
	return true
}

func (m *StorageMock) UpdateEventIsActive(eventId uint, isActive bool) error {
	return nil
}

func (m *StorageMock) SetCache(key string, value interface{}, exp time.Duration) {
	if s, ok := value.(string); ok {
		m.cache[key] = s
	}
}

func (m *StorageMock) GetCache(key string) *redis.StringCmd {
	if v, ok := m.cache[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}
