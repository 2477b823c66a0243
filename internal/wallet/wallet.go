// Package wallet holds the Solana keypair and the sign-and-submit step of the
// trading pipeline.
package wallet

import (
	"context"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// ErrNoPrivateKey is returned when a signing operation is attempted without a
// configured private key.
var ErrNoPrivateKey = errors.New("wallet private key is not configured")

// Submitter sends a signed transaction to the network. *rpc.Client satisfies
// it; tests substitute a recording fake.
type Submitter interface {
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

var _ Submitter = (*rpc.Client)(nil)

// Wallet pairs the configured keys with a transaction submitter.
type Wallet struct {
	pub       solana.PublicKey
	priv      *solana.PrivateKey
	submitter Submitter
}

// New parses the configured keys. privateKey may be empty, which yields a
// read-only wallet: PublicKey works, SignAndSend fails with ErrNoPrivateKey.
func New(publicKey, privateKey string, submitter Submitter) (*Wallet, error) {
	pub, err := solana.PublicKeyFromBase58(publicKey)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	w := &Wallet{pub: pub, submitter: submitter}
	if privateKey != "" {
		priv, err := solana.PrivateKeyFromBase58(privateKey)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		w.priv = &priv
	}
	return w, nil
}

// PublicKey returns the wallet's public key.
func (w *Wallet) PublicKey() solana.PublicKey { return w.pub }

// Configured reports whether the wallet can sign.
func (w *Wallet) Configured() bool { return w.priv != nil }

// SignAndSend deserializes the raw transaction, signs it with the configured
// private key and submits it. It returns the transaction signature. It does
// not wait for confirmation: a returned signature means sent, not landed.
func (w *Wallet) SignAndSend(ctx context.Context, raw []byte) (string, error) {
	if w.priv == nil {
		return "", ErrNoPrivateKey
	}

	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return "", fmt.Errorf("deserialize transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(w.priv.PublicKey()) {
			return w.priv
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}

	sig, err := w.submitter.SendTransaction(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("send transaction: %w", err)
	}
	return sig.String(), nil
}
