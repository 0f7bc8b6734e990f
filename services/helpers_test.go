package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"psytest/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Test{},
		&models.Question{},
		&models.Option{},
		&models.ScoringRule{},
		&models.Session{},
		&models.UserAnswer{},
		&models.SessionDimension{},
	))
	return db
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// pointTest builds a test whose question i (1-based) offers one option per score.
func pointTest(testType string, questions int, scores []int, rules ...CreateRuleRequest) *CreateTestRequest {
	req := &CreateTestRequest{
		TestType: testType,
		Title:    "Test " + testType,
		Results:  rules,
	}
	for i := 1; i <= questions; i++ {
		q := CreateQuestionRequest{
			Text:       fmt.Sprintf("Question %d", i),
			OrderIndex: i,
		}
		for _, s := range scores {
			q.Options = append(q.Options, CreateOptionRequest{Text: fmt.Sprintf("Option %d", s), Score: s})
		}
		req.Questions = append(req.Questions, q)
	}
	return req
}

// pick returns the answer selecting the option with the given score on the question at orderIndex.
func pick(t *testing.T, test *models.Test, orderIndex, score int) AnswerInput {
	t.Helper()
	for _, q := range test.Questions {
		if q.OrderIndex != orderIndex {
			continue
		}
		for _, o := range q.Options {
			if o.Score == score {
				return AnswerInput{QuestionID: q.ID, SelectedOptionID: o.ID}
			}
		}
	}
	t.Fatalf("no option with score %d on question %d", score, orderIndex)
	return AnswerInput{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []SessionEvent
}

func (n *recordingNotifier) SessionCompleted(event SessionEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []SessionEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]SessionEvent(nil), n.events...)
}

const testCacheTTL = time.Minute
