package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog/log"

	"etherpets/internal/domain/pet"
)

var ErrInvalidOwner = errors.New("owner is not a hex address")

// StubMinter derives a deterministic token id from the pet's identity instead
// of sending a transaction. It stands in for a contract client.
type StubMinter struct {
	Contract common.Address
}

func NewStubMinter(contract string) (StubMinter, error) {
	if contract != "" && !common.IsHexAddress(contract) {
		return StubMinter{}, fmt.Errorf("invalid contract address %q", contract)
	}
	return StubMinter{Contract: common.HexToAddress(contract)}, nil
}

func (m StubMinter) Mint(ctx context.Context, p pet.Pet) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !common.IsHexAddress(p.Owner) {
		return "", ErrInvalidOwner
	}
	hash := TraitHash(p)
	token := crypto.Keccak256Hash(m.Contract.Bytes(), common.HexToAddress(p.Owner).Bytes(), hash.Bytes())

	log.Info().
		Str("pet_id", p.ID).
		Str("owner", p.Owner).
		Str("contract", m.Contract.Hex()).
		Str("trait_hash", hash.Hex()).
		Str("token_id", token.Hex()).
		Msg("pet minted")
	return token.Hex(), nil
}

func TraitHash(p pet.Pet) common.Hash {
	canonical := strings.Join([]string{p.ID, string(p.Species), p.Color, p.Pattern}, "|")
	return crypto.Keccak256Hash([]byte(canonical))
}
