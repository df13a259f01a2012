package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cloverpass/internal/model"
	"cloverpass/internal/repository"
	"cloverpass/pkg/util"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// RedemptionEvent is pushed to validation-area panels when a code is used.
type RedemptionEvent struct {
	PromotionID string    `json:"promotionId"`
	BusinessID  string    `json:"businessId"`
	Code        string    `json:"code"`
	RedeemedBy  string    `json:"redeemedBy"`
	RedeemedAt  time.Time `json:"redeemedAt"`
}

// feedSubscriber pairs a connection with the mutex that serializes writes
// to it. gorilla/websocket allows at most one concurrent writer per
// connection, and broadcast runs on every redeeming request's goroutine.
type feedSubscriber struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// RedemptionService redeems promotion QR codes and fans events out to
// subscribed websocket connections.
type RedemptionService struct {
	promotions repository.IPromotionRepository
	log        *zap.SugaredLogger

	subMu       sync.RWMutex
	subscribers map[*websocket.Conn]*feedSubscriber
}

func NewRedemptionService(promotions repository.IPromotionRepository, log *zap.SugaredLogger) *RedemptionService {
	return &RedemptionService{
		promotions:  promotions,
		log:         log,
		subscribers: make(map[*websocket.Conn]*feedSubscriber),
	}
}

// Redeem marks a code used exactly once. Already-used and unknown codes are
// indistinguishable to the caller.
func (s *RedemptionService) Redeem(ctx context.Context, redeemer *model.Profile, promotionIDHex, code string) (*RedemptionEvent, error) {
	promotionID, err := util.ParseObjectID(promotionIDHex)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid promotionId", ErrValidation)
	}
	if !util.IsRedemptionCode(code) {
		return nil, fmt.Errorf("%w: not a recognized code", ErrValidation)
	}

	promo, err := s.promotions.RedeemCode(ctx, promotionID, code, redeemer.UID)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotRedeemable) {
			return nil, fmt.Errorf("%w: code not found or already redeemed", ErrNotFound)
		}
		return nil, err
	}

	event := &RedemptionEvent{
		PromotionID: promo.ID.Hex(),
		BusinessID:  promo.BusinessID.Hex(),
		Code:        code,
		RedeemedBy:  redeemer.UID,
		RedeemedAt:  time.Now(),
	}
	s.broadcast(event)
	s.log.Infow("code redeemed", "promotionId", event.PromotionID, "redeemedBy", redeemer.UID)
	return event, nil
}

// Subscribe registers a websocket connection for redemption events.
func (s *RedemptionService) Subscribe(conn *websocket.Conn) {
	s.subMu.Lock()
	s.subscribers[conn] = &feedSubscriber{conn: conn}
	s.subMu.Unlock()
}

// Unsubscribe removes a connection; safe to call twice.
func (s *RedemptionService) Unsubscribe(conn *websocket.Conn) {
	s.subMu.Lock()
	delete(s.subscribers, conn)
	s.subMu.Unlock()
}

func (s *RedemptionService) broadcast(event *RedemptionEvent) {
	s.subMu.RLock()
	subs := make([]*feedSubscriber, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.subMu.RUnlock()

	for _, sub := range subs {
		sub.writeMu.Lock()
		err := sub.conn.WriteJSON(event)
		sub.writeMu.Unlock()
		if err != nil {
			s.log.Debugw("dropping dead feed subscriber", "error", err)
			s.Unsubscribe(sub.conn)
			_ = sub.conn.Close()
		}
	}
}
