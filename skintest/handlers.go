package skintest

import (
	market "github.com/sc2skins/skinmarket"
)

// Handler is a mock implementation of the market.Handler interface,
// counting calls and returning declared results.
type Handler struct {
	checkCall   int
	CheckResult market.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult market.DeliverResult
	DeliverErr    error
}

var _ market.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx market.Context, db market.KVStore, tx market.Tx) (*market.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx market.Context, db market.KVStore, tx market.Tx) (*market.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
