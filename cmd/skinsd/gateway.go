package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	skinmarket "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/app"
	"github.com/sc2skins/skinmarket/coin"
	"github.com/sc2skins/skinmarket/errors"
	"github.com/sc2skins/skinmarket/x/auth"
	"github.com/sc2skins/skinmarket/x/cash"
	"github.com/sc2skins/skinmarket/x/market"
	"github.com/sc2skins/skinmarket/x/roles"
	"github.com/sc2skins/skinmarket/x/skins"
)

// gateway exposes the ledger operations as a JSON API. It is the
// authentication boundary of this deployment: the declared sender of a
// transaction is trusted the way a wallet signature would be in the
// original environment.
type gateway struct {
	ex       *app.TxExecutor
	log      *logrus.Logger
	listings market.Bucket
	skins    skins.Controller
	cash     cash.Controller
}

func newGateway(ex *app.TxExecutor, log *logrus.Logger) *gateway {
	return &gateway{
		ex:       ex,
		log:      log,
		listings: market.NewBucket(),
		skins:    skins.NewController(),
		cash:     cash.NewController(),
	}
}

func (g *gateway) router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Post("/tx", g.handleTx)
	r.Get("/skins/{skinID}/metadata", g.handleMetadata)
	r.Get("/accounts/{address}/skins/{skinID}", g.handleSkinBalance)
	r.Get("/accounts/{address}/cash", g.handleCashBalance)
	r.Get("/listings", g.handleListings)
	r.Get("/listings/{listingID}", g.handleListing)
	return r
}

// msgTx is the transaction envelope used by the gateway: a bare message,
// as the caller identity travels in the context.
type msgTx struct {
	msg skinmarket.Msg
}

func (tx msgTx) GetMsg() (skinmarket.Msg, error) {
	return tx.msg, nil
}

type txRequest struct {
	Path   string          `json:"path"`
	Sender string          `json:"sender"`
	Msg    json.RawMessage `json:"msg"`
}

type txResponse struct {
	Data   []byte             `json:"data,omitempty"`
	Log    string             `json:"log,omitempty"`
	Events []skinmarket.Event `json:"events,omitempty"`
}

func (g *gateway) handleTx(w http.ResponseWriter, r *http.Request) {
	var req txRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		g.respondErr(w, errors.Wrap(errors.ErrInput, "malformed request body"))
		return
	}
	sender, err := skinmarket.ParseAddress(req.Sender)
	if err != nil {
		g.respondErr(w, errors.Wrap(err, "sender"))
		return
	}
	msg, err := decodeMsg(req.Path, req.Msg)
	if err != nil {
		g.respondErr(w, err)
		return
	}

	ctx := auth.SetCallers(r.Context(), sender)
	res, err := g.ex.Deliver(ctx, msgTx{msg: msg})
	if err != nil {
		g.log.WithFields(logrus.Fields{
			"path":   req.Path,
			"sender": sender,
			"code":   errors.Code(err),
		}).WithError(err).Info("transaction rejected")
		g.respondErr(w, err)
		return
	}

	g.log.WithFields(logrus.Fields{
		"path":   req.Path,
		"sender": sender,
	}).Info("transaction delivered")
	g.respond(w, http.StatusOK, txResponse{
		Data:   res.Data,
		Log:    res.Log,
		Events: res.Events,
	})
}

// decodeMsg converts the JSON payload into the message matching the path.
func decodeMsg(path string, raw json.RawMessage) (skinmarket.Msg, error) {
	parse := func(dest interface{}) error {
		if err := json.Unmarshal(raw, dest); err != nil {
			return errors.Wrap(errors.ErrInput, "malformed message")
		}
		return nil
	}

	switch path {
	case "roles/grant", "roles/revoke":
		var payload struct {
			Address skinmarket.Address `json:"address"`
			Role    string             `json:"role"`
		}
		if err := parse(&payload); err != nil {
			return nil, err
		}
		role, err := roles.ParseRole(payload.Role)
		if err != nil {
			return nil, err
		}
		if path == "roles/grant" {
			return &roles.GrantRoleMsg{Address: payload.Address, Role: role}, nil
		}
		return &roles.RevokeRoleMsg{Address: payload.Address, Role: role}, nil

	case "skins/mint":
		var payload struct {
			To     skinmarket.Address `json:"to"`
			SkinId uint64             `json:"skin_id"`
			Amount int64              `json:"amount"`
		}
		if err := parse(&payload); err != nil {
			return nil, err
		}
		return &skins.MintMsg{To: payload.To, SkinId: payload.SkinId, Amount: payload.Amount}, nil

	case "skins/burn":
		var payload struct {
			From   skinmarket.Address `json:"from"`
			SkinId uint64             `json:"skin_id"`
			Amount int64              `json:"amount"`
		}
		if err := parse(&payload); err != nil {
			return nil, err
		}
		return &skins.BurnMsg{From: payload.From, SkinId: payload.SkinId, Amount: payload.Amount}, nil

	case "skins/set_metadata":
		var payload struct {
			SkinId   uint64 `json:"skin_id"`
			Name     string `json:"name"`
			Rarity   string `json:"rarity"`
			GameUnit string `json:"game_unit"`
			ImageUri string `json:"image_uri"`
		}
		if err := parse(&payload); err != nil {
			return nil, err
		}
		return &skins.SetMetadataMsg{
			SkinId:   payload.SkinId,
			Name:     payload.Name,
			Rarity:   payload.Rarity,
			GameUnit: payload.GameUnit,
			ImageUri: payload.ImageUri,
		}, nil

	case "cash/send":
		var payload struct {
			Src    skinmarket.Address `json:"src"`
			Dest   skinmarket.Address `json:"dest"`
			Amount coinPayload        `json:"amount"`
		}
		if err := parse(&payload); err != nil {
			return nil, err
		}
		return &cash.SendMsg{Src: payload.Src, Dest: payload.Dest, Amount: payload.Amount.coin()}, nil

	case "market/list":
		var payload struct {
			SkinId uint64      `json:"skin_id"`
			Amount int64       `json:"amount"`
			Price  coinPayload `json:"price"`
		}
		if err := parse(&payload); err != nil {
			return nil, err
		}
		return &market.ListSkinMsg{SkinId: payload.SkinId, Amount: payload.Amount, Price: payload.Price.coin()}, nil

	case "market/purchase":
		var payload struct {
			ListingId uint64      `json:"listing_id"`
			Payment   coinPayload `json:"payment"`
		}
		if err := parse(&payload); err != nil {
			return nil, err
		}
		return &market.PurchaseSkinMsg{ListingId: payload.ListingId, Payment: payload.Payment.coin()}, nil

	case "market/delist":
		var payload struct {
			ListingId uint64 `json:"listing_id"`
		}
		if err := parse(&payload); err != nil {
			return nil, err
		}
		return &market.DelistSkinMsg{ListingId: payload.ListingId}, nil
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "unknown path %q", path)
}

type coinPayload struct {
	Amount int64  `json:"amount"`
	Ticker string `json:"ticker"`
}

func (c coinPayload) coin() coin.Coin {
	return coin.NewCoin(c.Amount, c.Ticker)
}

func (g *gateway) handleMetadata(w http.ResponseWriter, r *http.Request) {
	skinID, err := strconv.ParseUint(chi.URLParam(r, "skinID"), 10, 64)
	if err != nil {
		g.respondErr(w, errors.Wrap(errors.ErrInput, "malformed skin id"))
		return
	}

	var info *skins.TokenInfo
	err = g.ex.View(func(db skinmarket.KVStore) error {
		info, err = g.skins.Metadata(db, skinID)
		return err
	})
	if err != nil {
		g.respondErr(w, err)
		return
	}
	g.respond(w, http.StatusOK, map[string]string{
		"name":      info.Name,
		"rarity":    info.Rarity,
		"game_unit": info.GameUnit,
		"image_uri": info.ImageUri,
	})
}

func (g *gateway) handleSkinBalance(w http.ResponseWriter, r *http.Request) {
	addr, err := skinmarket.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		g.respondErr(w, errors.Wrap(err, "address"))
		return
	}
	skinID, err := strconv.ParseUint(chi.URLParam(r, "skinID"), 10, 64)
	if err != nil {
		g.respondErr(w, errors.Wrap(errors.ErrInput, "malformed skin id"))
		return
	}

	var balance int64
	err = g.ex.View(func(db skinmarket.KVStore) error {
		balance, err = g.skins.Balance(db, addr, skinID)
		return err
	})
	if err != nil {
		g.respondErr(w, err)
		return
	}
	g.respond(w, http.StatusOK, map[string]int64{"balance": balance})
}

func (g *gateway) handleCashBalance(w http.ResponseWriter, r *http.Request) {
	addr, err := skinmarket.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		g.respondErr(w, errors.Wrap(err, "address"))
		return
	}

	var coins coin.Coins
	err = g.ex.View(func(db skinmarket.KVStore) error {
		coins, err = g.cash.Balance(db, addr)
		return err
	})
	if err != nil {
		g.respondErr(w, err)
		return
	}
	g.respond(w, http.StatusOK, map[string]interface{}{"coins": coins})
}

type listingPayload struct {
	ListingId uint64             `json:"listing_id"`
	Seller    skinmarket.Address `json:"seller"`
	SkinId    uint64             `json:"skin_id"`
	Amount    int64              `json:"amount"`
	Price     coinPayload        `json:"price"`
	Active    bool               `json:"active"`
}

func asListingPayload(id uint64, l *market.Listing) listingPayload {
	return listingPayload{
		ListingId: id,
		Seller:    l.Seller,
		SkinId:    l.SkinId,
		Amount:    l.Amount,
		Price:     coinPayload{Amount: l.Price.Amount, Ticker: l.Price.Ticker},
		Active:    l.Active,
	}
}

func (g *gateway) handleListing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "listingID"), 10, 64)
	if err != nil {
		g.respondErr(w, errors.Wrap(errors.ErrInput, "malformed listing id"))
		return
	}

	var listing *market.Listing
	err = g.ex.View(func(db skinmarket.KVStore) error {
		listing, err = g.listings.GetListing(db, id)
		return err
	})
	if err != nil {
		g.respondErr(w, err)
		return
	}
	g.respond(w, http.StatusOK, asListingPayload(id, listing))
}

// handleListings returns every listing ever created, oldest first. With
// ?active=true only the open ones are included. Ids are dense, so a plain
// scan to the counter visits them all.
func (g *gateway) handleListings(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	var (
		payload []listingPayload
		counter uint64
	)
	err := g.ex.View(func(db skinmarket.KVStore) error {
		counter = g.listings.Counter(db)
		for id := uint64(1); id <= counter; id++ {
			listing, err := g.listings.GetListing(db, id)
			if err != nil {
				return err
			}
			if activeOnly && !listing.Active {
				continue
			}
			payload = append(payload, asListingPayload(id, listing))
		}
		return nil
	})
	if err != nil {
		g.respondErr(w, err)
		return
	}
	g.respond(w, http.StatusOK, map[string]interface{}{
		"counter":  counter,
		"listings": payload,
	})
}

func (g *gateway) respond(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		g.log.WithError(err).Error("cannot write response")
	}
}

func (g *gateway) respondErr(w http.ResponseWriter, err error) {
	g.respond(w, httpStatus(err), map[string]interface{}{
		"code":  errors.Code(err),
		"error": err.Error(),
	})
}

// httpStatus maps ledger error codes to HTTP response codes.
func httpStatus(err error) int {
	switch {
	case errors.ErrNotFound.Is(err):
		return http.StatusNotFound
	case errors.ErrUnauthorized.Is(err), errors.ErrImmutable.Is(err):
		return http.StatusForbidden
	case market.ErrListingInactive.Is(err), market.ErrAlreadyClosed.Is(err), errors.ErrState.Is(err):
		return http.StatusConflict
	case errors.ErrPanic.Is(err):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
