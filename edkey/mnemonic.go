package edkey

import (
	"crypto/ed25519"

	"github.com/tyler-smith/go-bip39"
)

// ToMnemonic encodes a key pair's seed as a BIP-39 mnemonic, for offline
// backup. This is a plain entropy<->mnemonic round trip — Aletheia has no
// notion of a password-wrapped or BIP-32-derived key, so
// bip39.EntropyFromMnemonic is used on restore rather than the lossy KDF
// behind bip39.NewSeed.
func (k KeyPair) ToMnemonic() (string, error) {
	return bip39.NewMnemonic(k.Seed())
}

// FromMnemonic restores the exact key pair ToMnemonic backed up.
func FromMnemonic(mnemonic string) (KeyPair, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return KeyPair{}, errInvalidMnemonic
	}
	seed, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return KeyPair{}, err
	}
	if len(seed) != ed25519.SeedSize {
		return KeyPair{}, errInvalidMnemonic
	}
	return FromSeed(seed)
}

var errInvalidMnemonic = mnemonicError("edkey: mnemonic does not encode a 32-byte seed")

type mnemonicError string

func (e mnemonicError) Error() string { return string(e) }
