package redis

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"aitekka-quiz/internal/domain"
	"aitekka-quiz/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func TestBankRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{BankLoader: memory.NewStaticBankLoader(sampleBank())}
	repo := NewBankRepository(client, loader, time.Minute, quietLogger())

	bank, err := repo.GetBank(context.Background(), "bank-1")
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("quiz:bank:bank-1") {
		t.Fatalf("expected bank cached in redis")
	}
	if ttl := mr.TTL("quiz:bank:bank-1"); ttl < time.Minute || ttl > time.Minute+6*time.Second {
		t.Fatalf("unexpected ttl %s", ttl)
	}

	// Second call should hit cache, loader not incremented.
	cached, err := repo.GetBank(context.Background(), "bank-1")
	if err != nil {
		t.Fatalf("get cached bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached.Questions[0].CorrectAnswerID != bank.Questions[0].CorrectAnswerID || cached.MaxScore() != bank.MaxScore() {
		t.Fatalf("cached bank differs: %+v", cached)
	}
}

func TestBankRepositoryIgnoresCorruptCache(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	if err := mr.Set("quiz:bank:bank-1", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	loader := &countingLoader{BankLoader: memory.NewStaticBankLoader(sampleBank())}
	repo := NewBankRepository(newClient(mr), loader, time.Minute, quietLogger())

	if _, err := repo.GetBank(context.Background(), "bank-1"); err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected fallback to loader, calls=%d", loader.calls)
	}
}

func TestBankRepositoryDoesNotCacheInvalidBank(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	bad := sampleBank()
	bad.Questions[0].Points = 0
	repo := NewBankRepository(newClient(mr), memory.NewStaticBankLoader(bad), time.Minute, quietLogger())

	if _, err := repo.GetBank(context.Background(), "bank-1"); !errors.Is(err, domain.ErrInvalidBank) {
		t.Fatalf("expected ErrInvalidBank, got %v", err)
	}
	if mr.Exists("quiz:bank:bank-1") {
		t.Fatalf("invalid bank must not be cached")
	}
}

type countingLoader struct {
	memory.BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx, bankID)
}

func sampleBank() domain.Bank {
	return domain.Bank{
		ID: "bank-1",
		Questions: []domain.Question{
			{
				ID:   1,
				Text: "What is 2 + 2?",
				Options: []domain.Option{
					{ID: "o1", Text: "3"},
					{ID: "o2", Text: "4"},
				},
				CorrectAnswerID: "o2",
				Points:          2,
			},
		},
		Tiers: []domain.ResultTier{
			{MinScore: 0, MaxScore: 1, Title: "Keep going", Level: domain.LevelBeginner},
			{MinScore: 2, MaxScore: 2, Title: "Perfect", Level: domain.LevelStrategist},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
