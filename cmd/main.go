package main

import (
	"bufio"
	"fmt"
	"math/big"
	"os"

	"bondcurve"
	"bondcurve/app"
	"bondcurve/blockchain"
	"bondcurve/config"
	"bondcurve/internal/db"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {

	conf, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	level, err := conf.LogLevel()
	if err != nil {
		panic(err)
	}
	zerolog.SetGlobalLevel(level)

	ch := make(chan string)

	seed := conf.CurveSeed()
	stg, err := db.NewStorage(conf.SqliteConfig(), conf.RedisConfig(), seed)
	if err != nil {
		panic(err)
	}

	var backend blockchain.Backend
	if conf.Chain.Enabled {
		backend, err = blockchain.NewCurveContract(blockchain.CurveContractConfig{
			URL:        conf.Chain.URL,
			Contract:   conf.Chain.Contract,
			PrivateKey: conf.ChainKey(consoleKeyPasser{}),
			GasLimit:   conf.Chain.GasLimit,
		})
	} else {
		backend, err = blockchain.NewSimulator(seed.ReserveRatioPPM, toWei(seed.Supply), toWei(seed.Reserve))
	}
	if err != nil {
		panic(err)
	}

	engine := bondcurve.NewCurveEngine(bondcurve.CurveEngineConfig{
		Storage: stg,
		Mirror:  backend,
		Channel: ch,
	})
	engine.Run()

	go func() {
		app.Run(conf.App.Port, conf.App.JwtKey, stg, engine)
	}()

	// Alert sink. 채널 메시지는 로그로만 내보냄
	alertLg := zerolog.New(os.Stdout).With().Str("Module", "Alert").Timestamp().Logger()
	for msg := range ch {
		alertLg.Warn().Msg(msg)
	}
}

type consoleKeyPasser struct{}

func (consoleKeyPasser) InitKey(err error) string {
	if err != nil {
		log.Error().Err(err).Msg("chain key decrypt failed, retry")
	}
	fmt.Print("chain key passphrase: ")
	sc := bufio.NewScanner(os.Stdin)
	sc.Scan()
	return sc.Text()
}

func toWei(eth float64) *big.Int {
	out := new(big.Int)
	new(big.Float).Mul(big.NewFloat(eth), big.NewFloat(1e18)).Int(out)
	return out
}
