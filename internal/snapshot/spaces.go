package snapshot

import "github.com/bilgisen/daoexplorer/internal/models"

var popularSpaces = []models.Space{
	{ID: "ens.eth", Display: "ENS"},
	{ID: "gitcoindao.eth", Display: "Gitcoin"},
	{ID: "balancer.eth", Display: "Balancer"},
	{ID: "arbitrumfoundation.eth", Display: "Arbitrum"},
	{ID: "aave.eth", Display: "Aave"},
	{ID: "uniswapgovernance.eth", Display: "Uniswap"},
	{ID: "makerdao.eth", Display: "MakerDAO"},
	{ID: "compound-community.eth", Display: "Compound"},
	{ID: "sushigov.eth", Display: "SushiSwap"},
	{ID: "curve.eth", Display: "Curve"},
	{ID: "olympusdao.eth", Display: "OlympusDAO"},
	{ID: "banklessvault.eth", Display: "BanklessDAO"},
	{ID: "nouns.eth", Display: "Nouns"},
}

// PopularSpaces returns well-known Snapshot space ids with display names.
func PopularSpaces() []models.Space {
	out := make([]models.Space, len(popularSpaces))
	copy(out, popularSpaces)
	return out
}
