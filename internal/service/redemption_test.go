package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"cloverpass/internal/model"
	"cloverpass/internal/repository"
	"cloverpass/pkg/util"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type stubRedeemRepo struct {
	memPromotionRepo
	redeemErr error
}

func (s *stubRedeemRepo) RedeemCode(ctx context.Context, id primitive.ObjectID, code, redeemedBy string) (*model.Promotion, error) {
	if s.redeemErr != nil {
		return nil, s.redeemErr
	}
	return s.memPromotionRepo.RedeemCode(ctx, id, code, redeemedBy)
}

func validatorCaller() *model.Profile {
	return &model.Profile{UID: "lector-1", Roles: model.RoleList{model.RoleLectorQR}}
}

func TestRedeemMarksCodeUsedOnce(t *testing.T) {
	repo := &stubRedeemRepo{memPromotionRepo: memPromotionRepo{byID: map[primitive.ObjectID]*model.Promotion{}}}
	code := util.GenerateRedemptionCode()
	promo := &model.Promotion{
		ID:         primitive.NewObjectID(),
		BusinessID: primitive.NewObjectID(),
		Codes:      []model.PromotionCode{{Code: code, Status: model.CodeStatusUnused}},
	}
	repo.byID[promo.ID] = promo
	svc := NewRedemptionService(repo, zap.NewNop().Sugar())

	event, err := svc.Redeem(context.Background(), validatorCaller(), promo.ID.Hex(), code)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if event.Code != code || event.RedeemedBy != "lector-1" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if promo.Codes[0].Status != model.CodeStatusUsed {
		t.Fatalf("code not marked used")
	}

	// Second scan of the same code must fail.
	if _, err := svc.Redeem(context.Background(), validatorCaller(), promo.ID.Hex(), code); err == nil {
		t.Fatalf("double redemption accepted")
	}
}

func TestRedeemRejectsForeignPayload(t *testing.T) {
	repo := &stubRedeemRepo{memPromotionRepo: memPromotionRepo{byID: map[primitive.ObjectID]*model.Promotion{}}}
	svc := NewRedemptionService(repo, zap.NewNop().Sugar())

	_, err := svc.Redeem(context.Background(), validatorCaller(), primitive.NewObjectID().Hex(), "https://evil.example/qr")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestRedeemInvalidPromotionID(t *testing.T) {
	repo := &stubRedeemRepo{memPromotionRepo: memPromotionRepo{byID: map[primitive.ObjectID]*model.Promotion{}}}
	svc := NewRedemptionService(repo, zap.NewNop().Sugar())

	_, err := svc.Redeem(context.Background(), validatorCaller(), "not-an-oid", util.GenerateRedemptionCode())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

// lockedRedeemRepo makes the in-memory promotion fake safe for the
// concurrent redemptions below.
type lockedRedeemRepo struct {
	stubRedeemRepo
	mu sync.Mutex
}

func (l *lockedRedeemRepo) RedeemCode(ctx context.Context, id primitive.ObjectID, code, redeemedBy string) (*model.Promotion, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stubRedeemRepo.RedeemCode(ctx, id, code, redeemedBy)
}

func TestConcurrentRedemptionsReachFeedSubscriber(t *testing.T) {
	repo := &lockedRedeemRepo{stubRedeemRepo: stubRedeemRepo{
		memPromotionRepo: memPromotionRepo{byID: map[primitive.ObjectID]*model.Promotion{}},
	}}
	const n = 32
	codes := make([]string, n)
	promoCodes := make([]model.PromotionCode, n)
	for i := range codes {
		codes[i] = util.GenerateRedemptionCode()
		promoCodes[i] = model.PromotionCode{Code: codes[i], Status: model.CodeStatusUnused}
	}
	promo := &model.Promotion{
		ID:         primitive.NewObjectID(),
		BusinessID: primitive.NewObjectID(),
		Codes:      promoCodes,
	}
	repo.byID[promo.ID] = promo
	svc := NewRedemptionService(repo, zap.NewNop().Sugar())

	// A real websocket pair: the server side subscribes, the client counts
	// the events it receives.
	done := make(chan struct{})
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		svc.Subscribe(conn)
		<-done
		svc.Unsubscribe(conn)
		conn.Close()
	}))
	defer srv.Close()
	defer close(done)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			if _, err := svc.Redeem(context.Background(), validatorCaller(), promo.ID.Hex(), code); err != nil {
				t.Errorf("redeem %s: %v", code, err)
			}
		}(codes[i])
	}
	wg.Wait()

	client.SetReadDeadline(time.Now().Add(5 * time.Second))
	seen := map[string]bool{}
	for len(seen) < n {
		var event RedemptionEvent
		if err := client.ReadJSON(&event); err != nil {
			t.Fatalf("after %d events, read: %v", len(seen), err)
		}
		if seen[event.Code] {
			t.Fatalf("event for %s delivered twice", event.Code)
		}
		seen[event.Code] = true
	}
}

func TestRedeemUnknownAndUsedCodesIndistinguishable(t *testing.T) {
	repo := &stubRedeemRepo{
		memPromotionRepo: memPromotionRepo{byID: map[primitive.ObjectID]*model.Promotion{}},
		redeemErr:        repository.ErrCodeNotRedeemable,
	}
	svc := NewRedemptionService(repo, zap.NewNop().Sugar())

	_, err := svc.Redeem(context.Background(), validatorCaller(), primitive.NewObjectID().Hex(), util.GenerateRedemptionCode())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
