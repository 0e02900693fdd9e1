package config

import (
	_ "embed"

	"bondcurve/internal/db"
	"bondcurve/internal/util"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var configByte []byte

type Config struct {
	Log string `yaml:"log"`
	App struct {
		Port    int    `yaml:"port"`
		JwtKey  string `yaml:"jwtkey"`
		Passkey string `yaml:"passkey"`
	} `yaml:"app"`

	Db struct {
		Path string `yaml:"path"`
	} `yaml:"db"`

	Redis struct {
		IP       string `yaml:"ip"`
		Port     string `yaml:"port"`
		Password string `yaml:"pwd"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Curve struct {
		Exponent        float64 `yaml:"exponent"`
		MaxSupply       float64 `yaml:"max-supply"`
		MaxPrice        float64 `yaml:"max-price"`
		SeedSupply      float64 `yaml:"seed-supply"`
		SeedReserve     float64 `yaml:"seed-reserve"`
		ReserveRatioPPM uint32  `yaml:"reserve-ratio-ppm"`
		WalletEth       float64 `yaml:"wallet-eth"`
	} `yaml:"curve"`

	Chain struct {
		Enabled    bool   `yaml:"enabled"`
		URL        string `yaml:"url"`
		ChainId    int64  `yaml:"chain-id"`
		Contract   string `yaml:"contract"`
		PrivateKey string `yaml:"private-key"`
		GasLimit   uint64 `yaml:"gas-limit"`
	} `yaml:"chain"`
}

func NewConfig() (*Config, error) {

	var ConfigInfo Config = Config{}

	err := yaml.Unmarshal(configByte, &ConfigInfo)
	if err != nil {
		return nil, err
	}

	decode(&ConfigInfo)

	return &ConfigInfo, nil
}

func (c Config) LogLevel() (zerolog.Level, error) {

	level, err := zerolog.ParseLevel(c.Log)
	if err != nil {
		return zerolog.InfoLevel, err // Default로는 Info 레벨 설정
	}

	return level, nil
}

func (c Config) SqliteConfig() *db.SqliteConfig {
	return db.NewSqliteConfig(c.Db.Path)
}

func (c Config) RedisConfig() *db.RedisConfig {
	if c.Redis.IP == "" {
		return nil
	}
	return db.NewRedisConfig(c.Redis.Password, c.Redis.IP, c.Redis.Port, c.Redis.DB)
}

// CurveSeed falls back to the launch defaults for any field the yaml leaves
// zero, so a bare config still boots a sane curve.
func (c Config) CurveSeed() db.CurveSeed {
	seed := db.DefaultSeed()

	if c.Curve.Exponent > 0 {
		seed.Exponent = c.Curve.Exponent
	}
	if c.Curve.MaxSupply > 0 {
		seed.MaxSupply = c.Curve.MaxSupply
	}
	if c.Curve.MaxPrice > 0 {
		seed.MaxPrice = c.Curve.MaxPrice
	}
	if c.Curve.SeedSupply > 0 {
		seed.Supply = c.Curve.SeedSupply
	}
	if c.Curve.SeedReserve > 0 {
		seed.Reserve = c.Curve.SeedReserve
	}
	if c.Curve.ReserveRatioPPM > 0 {
		seed.ReserveRatioPPM = c.Curve.ReserveRatioPPM
	}
	if c.Curve.WalletEth > 0 {
		seed.WalletEth = c.Curve.WalletEth
	}
	return seed
}

// 복호화 키 전달
type KeyPasser interface {
	InitKey(err error) string
}

// ChainKey decrypts the signer key with a passphrase supplied interactively,
// retrying until decryption succeeds.
func (c Config) ChainKey(keyPasser KeyPasser) string {

	var pk string
	var err error

	for pk == "" || err != nil {
		key := keyPasser.InitKey(err)
		pk, err = util.Decrypt([]byte(key), c.Chain.PrivateKey)
	}

	return pk
}

func decode(conf *Config) {
	util.Decode(&conf.App.JwtKey)
	util.Decode(&conf.App.Passkey)
}
