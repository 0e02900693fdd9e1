package contractclient

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	contracttypes "bondcurve/blockchain/pkg/types"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

type ContractClient struct {
	contractAddress common.Address
	abi             *abi.ABI
	client          *ethclient.Client
	chainId         *big.Int
	defaultGasLimit *big.Int
}

func NewContractClient(client *ethclient.Client, contractAddress common.Address, abi *abi.ABI, opts ...Option) *ContractClient {
	chainID := big.NewInt(0)
	if client != nil {
		cid, err := client.ChainID(context.Background())
		if err == nil {
			chainID = cid
		}
	}

	cc := &ContractClient{
		contractAddress: contractAddress,
		abi:             abi,
		client:          client,
		chainId:         chainID,
	}

	for _, opt := range opts {
		opt(cc)
	}

	return cc
}

// Option is a functional option for configuring ContractClient
type Option func(*ContractClient)

func WithDefaultGasLimit(gasLimit *big.Int) Option {
	return func(cc *ContractClient) {
		cc.defaultGasLimit = gasLimit
	}
}

func WithChainId(chainId *big.Int) Option {
	return func(cc *ContractClient) {
		cc.chainId = chainId
	}
}

func (cm *ContractClient) Call(from *common.Address, method string, args ...interface{}) ([]interface{}, error) {

	if from == nil {
		from = &common.Address{}
	}
	packed, err := cm.abi.Pack(method, args...)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%s Call 시, abi Pack Error", method), err)
	}

	raw, err := cm.client.CallContract(context.Background(), ethereum.CallMsg{
		From: *from,
		To:   &cm.contractAddress,
		Data: packed,
	}, nil)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%s Call 시, CallContract Error", method), err)
	}

	rtn, err := cm.abi.Unpack(method, raw)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%s Call 시, abi Unpack Error", method), err)
	}

	return rtn, nil
}

func (cm *ContractClient) Send(priority contracttypes.Priority, from *common.Address, privateKey *ecdsa.PrivateKey, method string, args ...interface{}) (common.Hash, error) {
	return cm.send(priority, nil, from, privateKey, method, args...)
}

func (cm *ContractClient) SendWithValue(priority contracttypes.Priority, value *big.Int, from *common.Address, privateKey *ecdsa.PrivateKey, method string, args ...interface{}) (common.Hash, error) {
	return cm.send(priority, value, from, privateKey, method, args...)
}

func (cm *ContractClient) send(priority contracttypes.Priority, value *big.Int, from *common.Address, privateKey *ecdsa.PrivateKey, method string, args ...interface{}) (common.Hash, error) {
	if from == nil {
		from = &common.Address{}
	}
	packed, err := cm.abi.Pack(method, args...)
	if err != nil {
		return common.Hash{}, errors.Join(fmt.Errorf("%s Send 시, abi Pack Error", method), err)
	}

	nonce, err := cm.client.PendingNonceAt(context.Background(), *from)
	if err != nil {
		return common.Hash{}, errors.Join(fmt.Errorf("%s Send 시, PendingNonceAt Error", method), err)
	}

	gasPrice, err := cm.client.SuggestGasPrice(context.Background())
	if err != nil {
		return common.Hash{}, errors.Join(fmt.Errorf("%s Send 시, SuggestGasPrice Error", method), err)
	}

	gasLimit, err := cm.client.EstimateGas(context.Background(), ethereum.CallMsg{
		From:  *from,
		To:    &cm.contractAddress,
		Data:  packed,
		Value: value,
	})
	if err != nil {
		if cm.defaultGasLimit != nil {
			gasLimit = cm.defaultGasLimit.Uint64()
		} else {
			return common.Hash{}, errors.Join(fmt.Errorf("%s Send 시, EstimateGas Error", method), err)
		}
	}
	if priority == contracttypes.High {
		gasLimit = gasLimit * 2
	}

	// Calculate gas tip cap (priority fee) - typically 1-2 Gwei
	gasTipCap := big.NewInt(1500000000) // 1.5 Gwei

	// Calculate gas fee cap (max fee per gas) - base fee + priority fee
	gasFeeCap := new(big.Int).Add(gasPrice, big.NewInt(2000000000)) // base fee + 2 Gwei
	// EIP-1559에서는 baseFee가 자동으로 소각(burn) => validator에게 별도로 주는 팁이 priorityFee(보통 2Gwei)

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:    cm.chainId,
		Nonce:      nonce,
		GasTipCap:  gasTipCap, // a.k.a. maxPriorityFeePerGas
		GasFeeCap:  gasFeeCap, // a.k.a. maxFeePerGas
		Gas:        gasLimit,
		To:         &cm.contractAddress,
		Value:      value,
		Data:       packed,
		AccessList: nil,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(cm.chainId), privateKey)
	if err != nil {
		return common.Hash{}, errors.Join(fmt.Errorf("%s Send 시, SignTx Error", method), err)
	}

	err = cm.client.SendTransaction(context.Background(), signedTx)
	if err != nil {
		return common.Hash{}, errors.Join(fmt.Errorf("%s Send 시, SendTransaction Error", method), err)
	}

	return signedTx.Hash(), nil
}

func (cm *ContractClient) GetReceipt(txHash common.Hash) (*contracttypes.TxReceipt, error) {

	var r *contracttypes.TxReceipt

	err := cm.client.Client().CallContext(context.Background(), &r, "eth_getTransactionReceipt", txHash)
	if err == nil && r == nil {
		return nil, ethereum.NotFound
	}

	return r, nil
}

func (cm *ContractClient) ContractAddress() *common.Address {
	return &cm.contractAddress
}

func (cm *ContractClient) ChainId() *big.Int {
	return cm.chainId
}

func (cm *ContractClient) Abi() *abi.ABI {
	return cm.abi
}
