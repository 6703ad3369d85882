package chain

import (
	"context"
	"fmt"
)

// Wallet reads the HAI and collateral balances of an account.
type Wallet struct {
	hai        *Token
	collateral map[string]*Token
}

// NewWallet builds token readers for HAI and each named collateral token.
func NewWallet(caller ContractCaller, haiToken string, collateralTokens map[string]string) (*Wallet, error) {
	hai, err := NewToken(caller, haiToken)
	if err != nil {
		return nil, fmt.Errorf("hai token: %w", err)
	}
	w := &Wallet{hai: hai, collateral: make(map[string]*Token, len(collateralTokens))}
	for name, address := range collateralTokens {
		token, err := NewToken(caller, address)
		if err != nil {
			return nil, fmt.Errorf("collateral %s: %w", name, err)
		}
		w.collateral[name] = token
	}
	return w, nil
}

// HAI returns the HAI token reader.
func (w *Wallet) HAI() *Token {
	return w.hai
}

// Balances returns the collateral and HAI balances of owner in token units.
// An unknown collateral reads as zero.
func (w *Wallet) Balances(ctx context.Context, collateralName, owner string) (string, string, error) {
	hai, err := w.hai.FormattedBalanceOf(ctx, owner)
	if err != nil {
		return "", "", fmt.Errorf("hai balance: %w", err)
	}
	token, ok := w.collateral[collateralName]
	if !ok {
		return "0", hai, nil
	}
	collateral, err := token.FormattedBalanceOf(ctx, owner)
	if err != nil {
		return "", "", fmt.Errorf("%s balance: %w", collateralName, err)
	}
	return collateral, hai, nil
}
