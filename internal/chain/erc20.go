package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const erc20ABIJSON = `[
  {"inputs": [], "name": "decimals", "outputs": [{"type": "uint8"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "symbol", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "totalSupply", "outputs": [{"type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"internalType": "address", "name": "account", "type": "address"}], "name": "balanceOf", "outputs": [{"type": "uint256"}], "stateMutability": "view", "type": "function"}
]`

var (
	erc20ABI     abi.ABI
	erc20ABIOnce sync.Once
	erc20ABIErr  error
)

// ERC20ABI returns the parsed subset of the ERC20 ABI used here.
func ERC20ABI() (abi.ABI, error) {
	erc20ABIOnce.Do(func() {
		erc20ABI, erc20ABIErr = abi.JSON(strings.NewReader(erc20ABIJSON))
	})
	return erc20ABI, erc20ABIErr
}

// Token reads an ERC20 token and caches its decimals.
type Token struct {
	caller  ContractCaller
	address common.Address

	mu       sync.Mutex
	decimals *uint8
}

// NewToken returns a reader for the token at address.
func NewToken(caller ContractCaller, address string) (*Token, error) {
	if caller == nil {
		return nil, fmt.Errorf("contract caller is nil")
	}
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid token address: %s", address)
	}
	return &Token{caller: caller, address: common.HexToAddress(address)}, nil
}

// Address returns the token address.
func (t *Token) Address() common.Address {
	return t.address
}

// Decimals returns the token decimals, cached after the first call.
func (t *Token) Decimals(ctx context.Context) (uint8, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.decimals != nil {
		return *t.decimals, nil
	}

	values, err := t.call(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	decimals, ok := values[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("decimals unexpected type %T", values[0])
	}
	t.decimals = &decimals
	return decimals, nil
}

// TotalSupply returns the raw total supply.
func (t *Token) TotalSupply(ctx context.Context) (*big.Int, error) {
	values, err := t.call(ctx, "totalSupply")
	if err != nil {
		return nil, err
	}
	return asBigInt(values[0])
}

// BalanceOf returns the raw balance of owner.
func (t *Token) BalanceOf(ctx context.Context, owner string) (*big.Int, error) {
	if !common.IsHexAddress(owner) {
		return nil, fmt.Errorf("invalid owner address: %s", owner)
	}
	values, err := t.call(ctx, "balanceOf", common.HexToAddress(owner))
	if err != nil {
		return nil, err
	}
	return asBigInt(values[0])
}

// FormattedTotalSupply returns the total supply in token units.
func (t *Token) FormattedTotalSupply(ctx context.Context) (string, error) {
	supply, err := t.TotalSupply(ctx)
	if err != nil {
		return "", err
	}
	decimals, err := t.Decimals(ctx)
	if err != nil {
		return "", err
	}
	return FormatUnits(supply, decimals), nil
}

// FormattedBalanceOf returns the balance of owner in token units.
func (t *Token) FormattedBalanceOf(ctx context.Context, owner string) (string, error) {
	balance, err := t.BalanceOf(ctx, owner)
	if err != nil {
		return "", err
	}
	decimals, err := t.Decimals(ctx)
	if err != nil {
		return "", err
	}
	return FormatUnits(balance, decimals), nil
}

func (t *Token) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	tokenABI, err := ERC20ABI()
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}

	data, err := tokenABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	to := t.address
	resp, err := t.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	values, err := tokenABI.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("%s return size %d", method, len(values))
	}
	return values, nil
}

func asBigInt(value interface{}) (*big.Int, error) {
	v, ok := value.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected type %T", value)
	}
	return v, nil
}
