package sui

import (
	"encoding/hex"

	"github.com/block-vision/sui-go-sdk/models"
)

// String renders an ObjectID as a models.SuiAddress, the same typed wire
// representation the node-operator tooling's argument pretty-printer
// (experimental/analyzer's getArgument) carries Sui addresses in, rather
// than a bare Go string: lowercase hex with a 0x prefix, matching
// chain/sui's own AddressToBytes convention.
func (id ObjectID) String() string {
	return string(models.SuiAddress("0x" + hex.EncodeToString(id[:])))
}

// AddressToBytes converts a Sui address string to bytes. Sui addresses
// are hex strings, typically 0x-prefixed, encoding 32 bytes.
func AddressToBytes(address string) ([32]byte, error) {
	var out [32]byte
	addr := string(models.SuiAddress(address))
	if len(addr) >= 2 && addr[:2] == "0x" {
		addr = addr[2:]
	}
	b, err := hex.DecodeString(addr)
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, hex.ErrLength
	}
	copy(out[:], b)
	return out, nil
}
