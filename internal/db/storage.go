package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"bondcurve/internal/curve"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Storage struct {
	db        *gorm.DB
	rds       *redis.Client
	seed      CurveSeed
	walletEth float64
	lg        zerolog.Logger
}

// CurveSeed fills the singleton params/state rows on first start. A ledger
// that already holds them keeps its own values.
type CurveSeed struct {
	Exponent        float64
	MaxSupply       float64
	MaxPrice        float64
	Supply          float64
	Reserve         float64
	ReserveRatioPPM uint32
	WalletEth       float64
}

func NewStorage(sc *SqliteConfig, rc *RedisConfig, seed CurveSeed, opts ...gorm.Option) (*Storage, error) {

	// Use a compatible writer for GORM's logger
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second, // Slow SQL threshold
			LogLevel:      logger.Warn, // Log level
			Colorful:      false,       // Disable color
		},
	)

	db, err := gorm.Open(sqlite.Open(sc.path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	var rds *redis.Client
	if rc != nil {
		rds = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", rc.ip, rc.port),
			Password: rc.password,
			DB:       rc.db,
		})
	}

	stg := &Storage{
		db:        db,
		rds:       rds,
		seed:      seed,
		walletEth: seed.WalletEth,
		lg:        zerolog.New(os.Stdout).With().Str("Module", "Storage").Timestamp().Logger(),
	}
	if err := stg.initTables(); err != nil {
		return nil, err
	}
	return stg, nil
}

type SqliteConfig struct {
	path string
}

func NewSqliteConfig(path string) *SqliteConfig {
	return &SqliteConfig{path: path}
}

type RedisConfig struct {
	password string
	ip       string
	port     string
	db       int
}

func NewRedisConfig(password string, ip string, port string, db int) *RedisConfig {
	return &RedisConfig{
		password: password,
		ip:       ip,
		port:     port,
		db:       db,
	}
}

// DefaultSeed is the launch configuration of the sale: a 1.5-exponent curve
// capped at 100M tokens, 10M pre-minted, with a half-weight contract ratio.
func DefaultSeed() CurveSeed {
	return CurveSeed{
		Exponent:        1.5,
		MaxSupply:       100_000_000,
		MaxPrice:        0.001,
		Supply:          10_000_000,
		Reserve:         0,
		ReserveRatioPPM: curve.PPM / 2,
		WalletEth:       10,
	}
}
