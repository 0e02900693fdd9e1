package handler

/***************************************************************** request ****************************************************************/

type TradeReq struct {
	Address   string  `json:"address" validate:"required"`
	Side      string  `json:"side" validate:"required,side"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	MinReturn float64 `json:"min_return" validate:"gte=0"`
}

type ReserveRatioReq struct {
	RatioPPM uint32 `json:"ratio_ppm" validate:"required,gt=0,lte=1000000"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type EventStatusChangeRequest struct {
	Id     uint `json:"id" validate:"required"`
	Active bool `json:"active"`
}

type EventLaunchRequest struct {
	Id uint `json:"id" validate:"required"`
}

/***************************************************************** response ****************************************************************/

type PriceResponse struct {
	Price float64 `json:"price"`
}

type StateResponse struct {
	Supply  float64 `json:"supply"`
	Reserve float64 `json:"reserve"`
	Paused  bool    `json:"paused"`
}

type ValuationResponse struct {
	MarketCap float64 `json:"market_cap"`
	Fdv       float64 `json:"fdv"`
}

type QuoteResponse struct {
	Amount float64 `json:"amount"`
}

type TradeResponse struct {
	Received float64 `json:"received"`
	Price    float64 `json:"price"`
	Supply   float64 `json:"supply"`
	Reserve  float64 `json:"reserve"`
}

type HistResponse struct {
	Address     string  `json:"address"`
	Side        string  `json:"side"`
	EthAmount   float64 `json:"eth_amount"`
	TokenAmount float64 `json:"token_amount"`
	Price       float64 `json:"price"`
	CreatedAt   string  `json:"created_at"`
}

type TickResponse struct {
	Price     float64 `json:"price"`
	Supply    float64 `json:"supply"`
	Reserve   float64 `json:"reserve"`
	CreatedAt string  `json:"created_at"`
}

type WalletResponse struct {
	Address      string  `json:"address"`
	EthBalance   float64 `json:"eth_balance"`
	TokenBalance float64 `json:"token_balance"`
}

type EventResponse struct {
	Id          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// JWTResponse is the response sent after successful authentication
type JWTResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"`
}
