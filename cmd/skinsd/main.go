package main

import (
	"net/http"

	"github.com/sirupsen/logrus"

	skinmarket "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/app"
	"github.com/sc2skins/skinmarket/errors"
	"github.com/sc2skins/skinmarket/store"
	"github.com/sc2skins/skinmarket/x/auth"
	"github.com/sc2skins/skinmarket/x/cash"
	"github.com/sc2skins/skinmarket/x/market"
	"github.com/sc2skins/skinmarket/x/roles"
	"github.com/sc2skins/skinmarket/x/skins"
)

func main() {
	log := logrus.New()
	if err := run(log); err != nil {
		log.WithError(err).Fatal("skinsd failed")
	}
}

func run(log *logrus.Logger) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	level, err := logrus.ParseLevel(conf.LogLevel)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "log level: %s", conf.LogLevel)
	}
	log.SetLevel(level)

	deployer, err := skinmarket.ParseAddress(conf.Deployer)
	if err != nil {
		return errors.Wrap(err, "deployer address")
	}

	ex, err := buildExecutor(conf, deployer)
	if err != nil {
		return err
	}
	ex.Subscribe(func(res skinmarket.DeliverResult) {
		for _, ev := range res.Events {
			fields := logrus.Fields{}
			for _, attr := range ev.Attributes {
				fields[attr.Key] = attr.Value
			}
			log.WithFields(fields).Info(ev.Type)
		}
	})

	g := newGateway(ex, log)
	log.WithFields(logrus.Fields{
		"addr":     conf.ListenAddr,
		"deployer": deployer,
		"ticker":   conf.Ticker,
	}).Info("serving marketplace gateway")
	return http.ListenAndServe(conf.ListenAddr, g.router())
}

// buildExecutor wires every extension into a fresh in-memory ledger and
// applies the genesis.
func buildExecutor(conf Config, deployer skinmarket.Address) (*app.TxExecutor, error) {
	r := app.NewRouter()
	authn := auth.Authenticate{}
	roles.RegisterRoutes(r, authn)
	skins.RegisterRoutes(r, authn)
	cash.RegisterRoutes(r, authn)
	market.RegisterRoutes(r, authn)

	ex := app.NewTxExecutor(store.MemStore(), app.NewHandler(r))

	var (
		opts skinmarket.Options
		err  error
	)
	if conf.GenesisPath != "" {
		opts, err = loadGenesis(conf.GenesisPath)
	} else {
		opts, err = defaultGenesis(conf, deployer)
	}
	if err != nil {
		return nil, err
	}

	inits := []skinmarket.Initializer{
		roles.Initializer{},
		skins.Initializer{},
		cash.Initializer{},
	}
	if err := ex.InitGenesis(opts, inits...); err != nil {
		return nil, err
	}
	return ex, nil
}
