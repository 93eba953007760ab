package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"go-splendor/entities"
)

func newTestSessionStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisSessionStore(rdb), mr
}

func TestGameRoundTrip(t *testing.T) {
	store, mr := newTestSessionStore(t)
	ctx := context.Background()

	state := &entities.GameState{
		RoomID: "r1",
		Board: entities.Board{
			BankTokens: map[entities.Gem]int{entities.GemRuby: 4, entities.GemGold: 5},
		},
		Players: []entities.PlayerState{
			{ID: "p1", Tokens: map[entities.Gem]int{entities.GemRuby: 1}, TurnOrder: 0},
			{ID: "p2", TurnOrder: 1},
		},
		CurrentPlayerID:  "p1",
		StartingPlayerID: "p1",
	}
	if err := store.SaveGame(ctx, state); err != nil {
		t.Fatalf("save game: %v", err)
	}
	if !mr.Exists("room:r1:game") {
		t.Fatal("expected key room:r1:game")
	}
	if ttl := mr.TTL("room:r1:game"); ttl != 0 {
		t.Fatalf("expected no ttl, got %v", ttl)
	}

	got, err := store.LoadGame(ctx, "r1")
	if err != nil {
		t.Fatalf("load game: %v", err)
	}
	if got == nil || got.CurrentPlayerID != "p1" || got.Board.BankTokens[entities.GemGold] != 5 {
		t.Fatalf("unexpected state: %+v", got)
	}
	if got.Player("p1").Tokens[entities.GemRuby] != 1 {
		t.Fatalf("expected player tokens to survive round trip, got %+v", got.Player("p1"))
	}

	if err := store.DeleteGame(ctx, "r1"); err != nil {
		t.Fatalf("delete game: %v", err)
	}
	got, err = store.LoadGame(ctx, "r1")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil after delete, got %+v, %v", got, err)
	}
}

func TestLoadMissingReturnsNil(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	if sel, err := store.LoadTokenSelection(ctx, "none"); sel != nil || err != nil {
		t.Fatalf("expected nil, nil, got %+v, %v", sel, err)
	}
	if sel, err := store.LoadCardSelection(ctx, "none"); sel != nil || err != nil {
		t.Fatalf("expected nil, nil, got %+v, %v", sel, err)
	}
	if err := store.DeleteCardSelection(ctx, "none"); err != nil {
		t.Fatalf("deleting a missing key should succeed: %v", err)
	}
}

func TestSelectionRoundTrip(t *testing.T) {
	store, mr := newTestSessionStore(t)
	ctx := context.Background()

	tokens := &entities.PendingTokenSelection{RoomID: "r1", PlayerID: "p1", Picks: map[entities.Gem]int{entities.GemDiamond: 1}}
	if err := store.SaveTokenSelection(ctx, tokens); err != nil {
		t.Fatalf("save tokens: %v", err)
	}
	cardID := 7
	card := &entities.PendingCardSelection{RoomID: "r1", PlayerID: "p1", CardID: &cardID}
	if err := store.SaveCardSelection(ctx, card); err != nil {
		t.Fatalf("save card: %v", err)
	}
	if !mr.Exists("room:r1:select_token") || !mr.Exists("room:r1:select_card") {
		t.Fatalf("expected both selection keys, got %v", mr.Keys())
	}

	gotTokens, err := store.LoadTokenSelection(ctx, "r1")
	if err != nil {
		t.Fatalf("load tokens: %v", err)
	}
	if gotTokens.Picks[entities.GemDiamond] != 1 || gotTokens.PlayerID != "p1" {
		t.Fatalf("unexpected token selection: %+v", gotTokens)
	}
	gotCard, err := store.LoadCardSelection(ctx, "r1")
	if err != nil {
		t.Fatalf("load card: %v", err)
	}
	if !gotCard.HasCard() || *gotCard.CardID != 7 {
		t.Fatalf("unexpected card selection: %+v", gotCard)
	}

	if err := store.DeleteTokenSelection(ctx, "r1"); err != nil {
		t.Fatalf("delete tokens: %v", err)
	}
	if mr.Exists("room:r1:select_token") {
		t.Fatal("expected token selection to be deleted")
	}
}

func TestLoadCorruptValue(t *testing.T) {
	store, mr := newTestSessionStore(t)
	if err := mr.Set("room:bad:game", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := store.LoadGame(context.Background(), "bad"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRedisUnavailable(t *testing.T) {
	store, mr := newTestSessionStore(t)
	mr.Close()
	if _, err := store.LoadGame(context.Background(), "r1"); err == nil {
		t.Fatal("expected error when redis is down")
	}
}

func seedSession(t *testing.T, store *RedisSessionStore) {
	t.Helper()
	ctx := context.Background()
	cardID := 7
	if err := store.SaveGame(ctx, &entities.GameState{RoomID: "r1", CurrentPlayerID: "p1"}); err != nil {
		t.Fatalf("save game: %v", err)
	}
	if err := store.SaveTokenSelection(ctx, &entities.PendingTokenSelection{RoomID: "r1", PlayerID: "p1", Picks: map[entities.Gem]int{entities.GemRuby: 1}}); err != nil {
		t.Fatalf("save tokens: %v", err)
	}
	if err := store.SaveCardSelection(ctx, &entities.PendingCardSelection{RoomID: "r1", PlayerID: "p1", CardID: &cardID}); err != nil {
		t.Fatalf("save card: %v", err)
	}
}

func TestCommitTurnClearsSelections(t *testing.T) {
	store, mr := newTestSessionStore(t)
	ctx := context.Background()
	seedSession(t, store)

	if err := store.CommitTurn(ctx, &entities.GameState{RoomID: "r1", CurrentPlayerID: "p2"}); err != nil {
		t.Fatalf("commit turn: %v", err)
	}
	if mr.Exists("room:r1:select_token") || mr.Exists("room:r1:select_card") {
		t.Fatalf("expected selections to be cleared, got %v", mr.Keys())
	}
	got, err := store.LoadGame(ctx, "r1")
	if err != nil {
		t.Fatalf("load game: %v", err)
	}
	if got.CurrentPlayerID != "p2" {
		t.Fatalf("expected committed state, got %+v", got)
	}
}

func TestCommitTurnRedisUnavailable(t *testing.T) {
	store, mr := newTestSessionStore(t)
	mr.Close()
	if err := store.CommitTurn(context.Background(), &entities.GameState{RoomID: "r1"}); err == nil {
		t.Fatal("expected error when redis is down")
	}
}

func TestDeleteSession(t *testing.T) {
	store, mr := newTestSessionStore(t)
	seedSession(t, store)

	if err := store.DeleteSession(context.Background(), "r1"); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("expected no keys left, got %v", keys)
	}
}
