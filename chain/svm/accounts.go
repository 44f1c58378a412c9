package svm

import (
	sollib "github.com/gagliardetto/solana-go"

	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
)

// ResolvedAccount is one entry of a message's fully-ordered account list:
// static keys first (writable-signer, readonly-signer, writable-nonsigner,
// readonly-nonsigner), then address-table-resolved writable keys, then
// address-table-resolved readonly keys.
type ResolvedAccount struct {
	Key      sollib.PublicKey
	Signer   bool
	Writable bool
}

// LookupTableContent is the caller-supplied, previously-fetched content of
// one address lookup table: the full ordered address list it holds.
// Decoding never performs network I/O to fetch this itself.
type LookupTableContent struct {
	Addresses []sollib.PublicKey
}

// ResolveAccounts builds the message's full account-index space. tables
// maps an address-table-lookup account key (base58) to its fetched
// content. A v0 message referencing a table absent from tables makes
// ResolveAccounts return an AltUnresolved ResolutionError and no accounts
// at all; no placeholder keys are produced for the missing table's entries,
// so every instruction of the message is left without resolved accounts.
func (m *Message) ResolveAccounts(tables map[string]LookupTableContent) ([]ResolvedAccount, error) {
	accounts := make([]ResolvedAccount, 0, len(m.StaticAccountKeys))
	numSigners := int(m.Header.NumRequiredSignatures)
	numReadonlySigners := int(m.Header.NumReadonlySignedAccounts)
	numReadonlyNonsigners := int(m.Header.NumReadonlyUnsignedAccounts)

	for i, key := range m.StaticAccountKeys {
		signer := i < numSigners
		var writable bool
		switch {
		case signer:
			writable = i < numSigners-numReadonlySigners
		default:
			nonsignerIdx := i - numSigners
			numNonsigners := len(m.StaticAccountKeys) - numSigners
			writable = nonsignerIdx < numNonsigners-numReadonlyNonsigners
		}
		accounts = append(accounts, ResolvedAccount{Key: key, Signer: signer, Writable: writable})
	}

	if len(m.AddressTableLookups) == 0 {
		return accounts, nil
	}

	var writableALT, readonlyALT []ResolvedAccount
	for _, lookup := range m.AddressTableLookups {
		content, ok := tables[lookup.AccountKey.String()]
		if !ok {
			return nil, chainerr.NewResolutionError(chainerr.AltUnresolved,
				"address lookup table %s not supplied", lookup.AccountKey.String())
		}
		for _, idx := range lookup.WritableIndexes {
			if idx >= len(content.Addresses) {
				return nil, chainerr.NewResolutionError(chainerr.AccountIndexOutOfRange,
					"writable index %d out of range for lookup table %s", idx, lookup.AccountKey.String())
			}
			writableALT = append(writableALT, ResolvedAccount{Key: content.Addresses[idx], Writable: true})
		}
		for _, idx := range lookup.ReadonlyIndexes {
			if idx >= len(content.Addresses) {
				return nil, chainerr.NewResolutionError(chainerr.AccountIndexOutOfRange,
					"readonly index %d out of range for lookup table %s", idx, lookup.AccountKey.String())
			}
			readonlyALT = append(readonlyALT, ResolvedAccount{Key: content.Addresses[idx]})
		}
	}

	accounts = append(accounts, writableALT...)
	accounts = append(accounts, readonlyALT...)
	return accounts, nil
}

// Account resolves a single instruction's account reference by index,
// returning an AccountIndexOutOfRange ResolutionError if the index falls
// outside the resolved account list.
func Account(resolved []ResolvedAccount, index int) (ResolvedAccount, error) {
	if index < 0 || index >= len(resolved) {
		return ResolvedAccount{}, chainerr.NewResolutionError(chainerr.AccountIndexOutOfRange,
			"account index %d out of range (have %d accounts)", index, len(resolved))
	}
	return resolved[index], nil
}
