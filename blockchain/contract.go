package blockchain

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"bondcurve/blockchain/pkg/contractclient"
	contracttypes "bondcurve/blockchain/pkg/types"
	abiutil "bondcurve/blockchain/pkg/util"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

const curveABI = `[
  {"type":"function","name":"getCurrentPrice","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getReserveBalance","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getMarketCap","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getFullyDilutedValuation","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"calculateBuyReturn","stateMutability":"view","inputs":[{"name":"ethAmount","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"calculateSellReturn","stateMutability":"view","inputs":[{"name":"tokenAmount","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"buy","stateMutability":"payable","inputs":[{"name":"minReturn","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"sell","stateMutability":"nonpayable","inputs":[{"name":"tokenAmount","type":"uint256"},{"name":"minReturn","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"pause","stateMutability":"nonpayable","inputs":[],"outputs":[]},
  {"type":"function","name":"unpause","stateMutability":"nonpayable","inputs":[],"outputs":[]},
  {"type":"function","name":"updateReserveRatio","stateMutability":"nonpayable","inputs":[{"name":"ratioPPM","type":"uint32"}],"outputs":[]},
  {"type":"function","name":"recoverETH","stateMutability":"nonpayable","inputs":[],"outputs":[]},
  {"type":"function","name":"recoverERC20","stateMutability":"nonpayable","inputs":[{"name":"token","type":"address"}],"outputs":[]}
]`

// CurveContract forwards Backend operations to the deployed bonding-curve
// contract. State-changing calls are signed with the owner key; a returned
// amount is not available synchronously, so Buy/Sell report the quoted
// return alongside the submitted transaction.
type CurveContract struct {
	cc         *contractclient.ContractClient
	owner      common.Address
	privateKey *ecdsa.PrivateKey
}

type CurveContractConfig struct {
	URL        string
	Contract   string
	PrivateKey string
	GasLimit   uint64
	// ArtifactPath points at a Hardhat artifact of the deployed contract.
	// Empty means the built-in ABI.
	ArtifactPath string
}

func NewCurveContract(conf CurveContractConfig) (*CurveContract, error) {

	client, err := ethclient.Dial(conf.URL)
	if err != nil {
		return nil, errors.Join(errors.New("ethclient Dial Error"), err)
	}

	var parsed abi.ABI
	if conf.ArtifactPath != "" {
		loaded, err := abiutil.LoadABI(conf.ArtifactPath)
		if err != nil {
			return nil, err
		}
		parsed = *loaded
	} else {
		parsed, err = abi.JSON(strings.NewReader(curveABI))
		if err != nil {
			return nil, err
		}
	}

	pkHex := strings.TrimPrefix(conf.PrivateKey, "0x")
	privateKey, err := crypto.HexToECDSA(pkHex)
	if err != nil {
		return nil, errors.Join(errors.New("HexToECDSA Error"), err)
	}
	owner := crypto.PubkeyToAddress(privateKey.PublicKey)

	cc := contractclient.NewContractClient(client, common.HexToAddress(conf.Contract), &parsed,
		contractclient.WithDefaultGasLimit(new(big.Int).SetUint64(conf.GasLimit)))

	return &CurveContract{
		cc:         cc,
		owner:      owner,
		privateKey: privateKey,
	}, nil
}

func (c *CurveContract) CurrentPrice() (*big.Int, error) {
	return c.callUint("getCurrentPrice")
}

func (c *CurveContract) ReserveBalance() (*big.Int, error) {
	return c.callUint("getReserveBalance")
}

func (c *CurveContract) MarketCap() (*big.Int, error) {
	return c.callUint("getMarketCap")
}

func (c *CurveContract) FullyDilutedValuation() (*big.Int, error) {
	return c.callUint("getFullyDilutedValuation")
}

func (c *CurveContract) TotalSupply() (*big.Int, error) {
	return c.callUint("totalSupply")
}

func (c *CurveContract) CalculateBuyReturn(ethAmount *big.Int) (*big.Int, error) {
	return c.callUint("calculateBuyReturn", ethAmount)
}

func (c *CurveContract) CalculateSellReturn(tokenAmount *big.Int) (*big.Int, error) {
	return c.callUint("calculateSellReturn", tokenAmount)
}

func (c *CurveContract) Buy(ethAmount, minReturn *big.Int) (*big.Int, error) {

	quoted, err := c.CalculateBuyReturn(ethAmount)
	if err != nil {
		return nil, err
	}
	if minReturn == nil {
		minReturn = big.NewInt(0)
	}

	hash, err := c.cc.SendWithValue(contracttypes.Normal, ethAmount, &c.owner, c.privateKey, "buy", minReturn)
	if err != nil {
		return nil, err
	}
	if err = c.waitReceipt(hash); err != nil {
		return nil, err
	}
	return quoted, nil
}

func (c *CurveContract) Sell(tokenAmount, minReturn *big.Int) (*big.Int, error) {

	quoted, err := c.CalculateSellReturn(tokenAmount)
	if err != nil {
		return nil, err
	}
	if minReturn == nil {
		minReturn = big.NewInt(0)
	}

	hash, err := c.cc.Send(contracttypes.Normal, &c.owner, c.privateKey, "sell", tokenAmount, minReturn)
	if err != nil {
		return nil, err
	}
	if err = c.waitReceipt(hash); err != nil {
		return nil, err
	}
	return quoted, nil
}

func (c *CurveContract) Pause() error {
	_, err := c.cc.Send(contracttypes.High, &c.owner, c.privateKey, "pause")
	return err
}

func (c *CurveContract) Unpause() error {
	_, err := c.cc.Send(contracttypes.High, &c.owner, c.privateKey, "unpause")
	return err
}

func (c *CurveContract) UpdateReserveRatio(ppm uint32) error {
	_, err := c.cc.Send(contracttypes.Normal, &c.owner, c.privateKey, "updateReserveRatio", ppm)
	return err
}

// RecoverETH sweeps stray ETH sent outside buy() back to the owner.
func (c *CurveContract) RecoverETH() error {
	_, err := c.cc.Send(contracttypes.Normal, &c.owner, c.privateKey, "recoverETH")
	return err
}

// RecoverERC20 sweeps a foreign token balance back to the owner.
func (c *CurveContract) RecoverERC20(token common.Address) error {
	_, err := c.cc.Send(contracttypes.Normal, &c.owner, c.privateKey, "recoverERC20", token)
	return err
}

const (
	receiptPollLimit    = 10
	receiptPollInterval = 3 * time.Second
)

// waitReceipt blocks until the transaction is mined or the poll limit runs out.
func (c *CurveContract) waitReceipt(hash common.Hash) error {

	for i := 0; i < receiptPollLimit; i++ {
		time.Sleep(receiptPollInterval)

		r, err := c.cc.GetReceipt(hash)
		if errors.Is(err, ethereum.NotFound) {
			continue
		} else if err != nil {
			return err
		}

		if r.Status != "0x1" {
			return fmt.Errorf("트랜잭션 실패. hash : %s, status : %s", hash, r.Status)
		}
		return nil
	}
	return fmt.Errorf("트랜잭션 조회 시간 초과. hash : %s", hash)
}

func (c *CurveContract) callUint(method string, args ...interface{}) (*big.Int, error) {

	rtn, err := c.cc.Call(nil, method, args...)
	if err != nil {
		return nil, err
	}
	if len(rtn) == 0 {
		return nil, fmt.Errorf("%s 조회 시, 빈 응답", method)
	}

	out, ok := rtn[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s 조회 시, 예상 외 타입 %T", method, rtn[0])
	}
	return out, nil
}
