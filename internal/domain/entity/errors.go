package entity

import "fmt"

// NotFoundError indicates the requested address/wallet does not exist.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string { return e.msg }

// NewAddressNotFoundError builds the error for an unknown address id.
func NewAddressNotFoundError(addressID string) *NotFoundError {
	return &NotFoundError{msg: fmt.Sprintf("Address not found: %s", addressID)}
}

// NewWalletNotFoundError builds the error for an unknown (chain, wallet) pair.
func NewWalletNotFoundError(walletAddress, chainAlias string) *NotFoundError {
	return &NotFoundError{msg: fmt.Sprintf("Address not found: %s on chain %s", walletAddress, chainAlias)}
}

// InternalServerError indicates a provisioning defect, such as no balance
// fetcher being registered for a resolved chain. It is never retried.
type InternalServerError struct {
	msg string
}

func (e *InternalServerError) Error() string { return e.msg }

// NewNoFetcherError builds the error for a chain with no registered fetcher.
func NewNoFetcherError(chainAlias string) *InternalServerError {
	return &InternalServerError{msg: fmt.Sprintf("No balance fetcher for chain: %s", chainAlias)}
}
