package main

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/sc2skins/skinmarket/errors"
)

// Config is the daemon configuration, read from SKINSD_* environment
// variables. A .env file in the working directory is loaded first if
// present.
type Config struct {
	// ListenAddr is the address the HTTP gateway binds to.
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8654"`

	// Deployer is the hex address granted the admin, minter and burner
	// roles in the genesis. It receives the initial skin mints.
	Deployer string `envconfig:"DEPLOYER" required:"true"`

	// Ticker is the currency all listings are priced in.
	Ticker string `envconfig:"TICKER" default:"CRD"`

	// DeployerFunds is the initial cash balance of the deployer.
	DeployerFunds int64 `envconfig:"DEPLOYER_FUNDS" default:"1000000"`

	// GenesisPath optionally points to a genesis JSON file, replacing the
	// built-in genesis entirely.
	GenesisPath string `envconfig:"GENESIS_PATH"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func loadConfig() (Config, error) {
	// A missing .env file is fine, the environment may be set directly.
	_ = godotenv.Load()

	var conf Config
	if err := envconfig.Process("skinsd", &conf); err != nil {
		return conf, errors.Wrap(err, "cannot process configuration")
	}
	return conf, nil
}
