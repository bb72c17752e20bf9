package main

import (
	"encoding/json"
	"os"

	skinmarket "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
)

type genesisRole struct {
	Address skinmarket.Address `json:"address"`
	Roles   []string           `json:"roles"`
}

type genesisCatalogEntry struct {
	SkinId   uint64 `json:"skin_id"`
	Name     string `json:"name"`
	Rarity   string `json:"rarity"`
	GameUnit string `json:"game_unit"`
	ImageUri string `json:"image_uri"`
}

type genesisBalance struct {
	Address  skinmarket.Address `json:"address"`
	SkinId   uint64             `json:"skin_id"`
	Quantity int64              `json:"quantity"`
}

type genesisAccount struct {
	Address skinmarket.Address `json:"address"`
	Coins   []genesisCoin      `json:"coins"`
}

type genesisCoin struct {
	Amount int64  `json:"amount"`
	Ticker string `json:"ticker"`
}

// defaultGenesis builds the built-in genesis: the deployer holds every
// role, the initial skin catalog is written and the initial inventory is
// minted to the deployer.
func defaultGenesis(conf Config, deployer skinmarket.Address) (skinmarket.Options, error) {
	catalog := []genesisCatalogEntry{
		{SkinId: 1, Name: "Golden Marine", Rarity: "Rare", GameUnit: "Marine", ImageUri: "ipfs://skins/golden-marine"},
		{SkinId: 2, Name: "Infernal Zergling", Rarity: "Epic", GameUnit: "Zergling", ImageUri: "ipfs://skins/infernal-zergling"},
		{SkinId: 3, Name: "Protoss Zealot Armor", Rarity: "Legendary", GameUnit: "Zealot", ImageUri: "ipfs://skins/protoss-zealot-armor"},
		{SkinId: 4, Name: "Standard Marine", Rarity: "Common", GameUnit: "Marine", ImageUri: "ipfs://skins/standard-marine"},
	}
	balances := []genesisBalance{
		{Address: deployer, SkinId: 1, Quantity: 10},
		{Address: deployer, SkinId: 2, Quantity: 5},
		{Address: deployer, SkinId: 3, Quantity: 2},
		{Address: deployer, SkinId: 4, Quantity: 20},
	}

	opts := skinmarket.Options{}
	sections := map[string]interface{}{
		"roles": []genesisRole{
			{Address: deployer, Roles: []string{"admin", "minter", "burner"}},
		},
		"skins": map[string]interface{}{
			"catalog":  catalog,
			"balances": balances,
		},
		"cash": []genesisAccount{
			{Address: deployer, Coins: []genesisCoin{{Amount: conf.DeployerFunds, Ticker: conf.Ticker}}},
		},
	}
	for key, section := range sections {
		raw, err := json.Marshal(section)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot serialize %q genesis", key)
		}
		opts[key] = raw
	}
	return opts, nil
}

// loadGenesis reads a genesis options file, used instead of the built-in
// genesis when configured.
func loadGenesis(path string) (skinmarket.Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read genesis file")
	}
	var opts skinmarket.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, errors.Wrap(err, "cannot parse genesis file")
	}
	return opts, nil
}
