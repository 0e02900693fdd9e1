package db

import (
	"errors"
	"time"

	m "bondcurve/internal/model"

	"gorm.io/gorm"
)

func (s Storage) initTables() error {

	err := s.db.AutoMigrate(&m.CurveParams{}, &m.CurveState{},
		&m.Wallet{}, &m.Trade{},
		&m.PriceTick{}, &m.DailySnapshot{},
		&m.User{}, &m.Event{})
	if err != nil {
		return err
	}

	// Seed the singleton rows once; a restart keeps the live curve.
	var params m.CurveParams
	result := s.db.First(&params, 1)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		result = s.db.Create(&m.CurveParams{
			ID:              1,
			Exponent:        s.seed.Exponent,
			MaxSupply:       s.seed.MaxSupply,
			MaxPrice:        s.seed.MaxPrice,
			ReserveRatioPPM: s.seed.ReserveRatioPPM,
		})
		if result.Error != nil {
			return result.Error
		}
		s.lg.Info().Msgf("Seeded curve params: exponent %v, max supply %v, max price %v", s.seed.Exponent, s.seed.MaxSupply, s.seed.MaxPrice)
	} else if result.Error != nil {
		return result.Error
	}

	var state m.CurveState
	result = s.db.First(&state, 1)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		result = s.db.Create(&m.CurveState{
			ID:      1,
			Supply:  s.seed.Supply,
			Reserve: s.seed.Reserve,
		})
		if result.Error != nil {
			return result.Error
		}
		s.lg.Info().Msgf("Seeded curve state: supply %v, reserve %v", s.seed.Supply, s.seed.Reserve)
	} else if result.Error != nil {
		return result.Error
	}

	return nil
}

func (s Storage) RetrieveCurveParams() (*m.CurveParams, error) {

	var params m.CurveParams

	result := s.db.First(&params, 1)
	if result.Error != nil {
		return nil, result.Error
	}

	return &params, nil
}

func (s Storage) UpdateReserveRatio(ppm uint32) error {

	result := s.db.Model(&m.CurveParams{ID: 1}).Update("reserve_ratio_ppm", ppm)
	if result.Error != nil {
		return result.Error
	}

	s.lg.Info().Msgf("Updated reserve ratio to %d ppm", ppm)
	return nil
}

func (s Storage) RetrieveCurveState() (*m.CurveState, error) {

	var state m.CurveState

	result := s.db.First(&state, 1)
	if result.Error != nil {
		return nil, result.Error
	}

	return &state, nil
}

func (s Storage) UpdateCurvePaused(paused bool) error {

	result := s.db.Model(&m.CurveState{ID: 1}).Update("paused", paused)
	if result.Error != nil {
		return result.Error
	}

	s.lg.Info().Msgf("Updated curve paused status: %t", paused)
	return nil
}

// GetOrCreateWallet returns the wallet for address, creating it with the
// seed ETH balance on first reference.
func (s Storage) GetOrCreateWallet(address string) (*m.Wallet, error) {

	var wallet m.Wallet

	result := s.db.Where("address = ?", address).First(&wallet)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		wallet = m.Wallet{
			Address:    address,
			EthBalance: s.walletEth,
		}
		if result := s.db.Create(&wallet); result.Error != nil {
			return nil, result.Error
		}
		s.lg.Info().Msgf("Created wallet %s with %v ETH", address, s.walletEth)
		return &wallet, nil
	} else if result.Error != nil {
		return nil, result.Error
	}

	return &wallet, nil
}

// CommitTrade persists the post-trade curve state, the wallet balances and
// the trade record in one transaction. Any failure rolls all three back.
func (s Storage) CommitTrade(state *m.CurveState, wallet *m.Wallet, trade *m.Trade) error {

	err := s.db.Transaction(func(tx *gorm.DB) error {

		result := tx.Model(&m.CurveState{ID: state.ID}).
			Select("supply", "reserve").
			Updates(map[string]interface{}{"supply": state.Supply, "reserve": state.Reserve})
		if result.Error != nil {
			return result.Error
		}

		result = tx.Model(&m.Wallet{ID: wallet.ID}).
			Select("eth_balance", "token_balance").
			Updates(map[string]interface{}{"eth_balance": wallet.EthBalance, "token_balance": wallet.TokenBalance})
		if result.Error != nil {
			return result.Error
		}

		if result := tx.Create(trade); result.Error != nil {
			return result.Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.lg.Info().Msgf("Committed %s trade %d for wallet %s", trade.Side, trade.ID, trade.Address)
	return nil
}

func (s Storage) RetrieveTrades(address string, limit int) ([]m.Trade, error) {

	query := s.db.Model(&m.Trade{})

	if address != "" {
		query = query.Where("address = ?", address)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var trades []m.Trade

	result := query.Order("created_at DESC").Find(&trades)
	if result.Error != nil {
		return nil, result.Error
	}

	s.lg.Info().Msgf("Retrieved %d trades", len(trades))
	return trades, nil
}

func (s Storage) SavePriceTick(tick *m.PriceTick) error {

	tick.CreatedAt = time.Now()

	result := s.db.Create(tick)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

func (s Storage) RetrievePriceTicksDesc(limit int) ([]m.PriceTick, error) {

	var ticks []m.PriceTick

	err := s.db.Order("created_at DESC").
		Limit(limit).
		Find(&ticks).
		Error

	s.lg.Info().Msgf("Retrieved %d price ticks", len(ticks))
	return ticks, err
}

func (s Storage) SaveDailySnapshot(snap *m.DailySnapshot) error {

	result := s.db.Save(snap) // upsert. 같은 날짜로 재실행되면 마지막 값으로 덮어씀
	if result.Error != nil {
		return result.Error
	}

	s.lg.Info().Msgf("Saved daily snapshot: supply %v, reserve %v", snap.Supply, snap.Reserve)
	return nil
}

func (s Storage) User(userName string) (*m.User, error) {

	var user m.User
	result := s.db.Where("username", userName).Last(&user)
	if result.Error != nil {
		return nil, result.Error
	}

	s.lg.Info().Msgf("Retrieved user with username %s", userName)
	return &user, nil
}

func (s Storage) RetreiveEventIsActive(eventId uint) bool {
	var event m.Event
	result := s.db.Where("id", eventId).First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			s.db.Create(&m.Event{ID: eventId, IsActive: true})
			s.lg.Info().Msgf("Created new event with ID %d and set as active", eventId)
			return true
		} else {
			s.lg.Info().Msgf("Failed to retrieve event with ID %d", eventId)
			return false
		}
	}

	return event.IsActive
}

func (s Storage) UpdateEventIsActive(eventId uint, isActive bool) error {

	result := s.db.Select("is_active").Updates(m.Event{ID: eventId, IsActive: isActive})
	if result.Error != nil {
		return result.Error
	}

	s.lg.Info().Msgf("Updated event with ID %d to active status: %t", eventId, isActive)
	return nil
}
