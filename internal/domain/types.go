package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// AssetKey identifies an asset within the marketplace. Token IDs are scoped
// per contract, so neither field is unique on its own.
type AssetKey struct {
	TokenID         string
	ContractAddress string
}

// Valid reports whether both components of the key are present.
func (k AssetKey) Valid() bool {
	return strings.TrimSpace(k.TokenID) != "" && strings.TrimSpace(k.ContractAddress) != ""
}

// String returns the canonical "contract/tokenID" form used in logs.
func (k AssetKey) String() string {
	return fmt.Sprintf("%s/%s", k.ContractAddress, k.TokenID)
}

var ethAddressRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsWalletAddress reports whether s looks like an EVM wallet address.
func IsWalletAddress(s string) bool {
	return ethAddressRegex.MatchString(s)
}

// IsTransactionHash reports whether s looks like an EVM transaction hash.
func IsTransactionHash(s string) bool {
	return len(s) == 66 && strings.HasPrefix(s, "0x")
}
