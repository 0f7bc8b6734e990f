package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"psytest/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrTestNotFound      = errors.New("test not found")
	ErrTestTypeExists    = errors.New("a test with this test_type already exists")
	ErrInvalidDefinition = errors.New("invalid test definition")
)

const DefaultPopularLimit = 6

type TestService struct {
	db       *gorm.DB
	redis    *redis.Client
	cacheTTL time.Duration
}

func NewTestService(db *gorm.DB, redis *redis.Client, cacheTTL time.Duration) *TestService {
	return &TestService{
		db:       db,
		redis:    redis,
		cacheTTL: cacheTTL,
	}
}

type CreateTestRequest struct {
	TestType    string                  `json:"test_type" yaml:"test_type" binding:"required,max=100"`
	Title       string                  `json:"title" yaml:"title" binding:"required"`
	Description *string                 `json:"description" yaml:"description"`
	Questions   []CreateQuestionRequest `json:"questions" yaml:"questions" binding:"required,min=1,dive"`
	Results     []CreateRuleRequest     `json:"results" yaml:"results" binding:"dive"`
}

type CreateQuestionRequest struct {
	Text       string                `json:"text" yaml:"text" binding:"required"`
	OrderIndex int                   `json:"order_index" yaml:"order_index" binding:"required,min=1"`
	Options    []CreateOptionRequest `json:"options" yaml:"options" binding:"required,min=1,dive"`
}

type CreateOptionRequest struct {
	Text  string `json:"text" yaml:"text" binding:"required"`
	Score int    `json:"score" yaml:"score"`
}

type CreateRuleRequest struct {
	MinScore      int     `json:"min_score" yaml:"min_score"`
	MaxScore      *int    `json:"max_score" yaml:"max_score"`
	ResultRange   string  `json:"result_range" yaml:"result_range" binding:"required"`
	Description   *string `json:"description" yaml:"description"`
	DimensionCode *string `json:"dimension_code" yaml:"dimension_code"`
}

// scope is the dimension the rule applies to, "" for the total score.
func (r CreateRuleRequest) scope() string {
	if r.DimensionCode == nil {
		return ""
	}
	return strings.TrimSpace(*r.DimensionCode)
}

// TestForTaking is a test as shown to a respondent: option scores are left out.
type TestForTaking struct {
	ID          uint                `json:"id"`
	TestType    string              `json:"test_type"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Questions   []QuestionForTaking `json:"questions"`
}

type QuestionForTaking struct {
	ID         uint              `json:"id"`
	Text       string            `json:"text"`
	OrderIndex int               `json:"order_index"`
	Options    []OptionForTaking `json:"options"`
}

type OptionForTaking struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type PopularTest struct {
	ID           uint    `json:"id"`
	TestType     string  `json:"test_type"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	SessionCount int64   `json:"session_count"`
}

func (req *CreateTestRequest) validate() error {
	if strings.TrimSpace(req.TestType) == "" {
		return fmt.Errorf("%w: test_type is required", ErrInvalidDefinition)
	}
	if len(req.Questions) == 0 {
		return fmt.Errorf("%w: at least one question is required", ErrInvalidDefinition)
	}

	seen := make(map[int]bool, len(req.Questions))
	for _, q := range req.Questions {
		if q.OrderIndex < 1 {
			return fmt.Errorf("%w: order_index must be positive", ErrInvalidDefinition)
		}
		if seen[q.OrderIndex] {
			return fmt.Errorf("%w: duplicate order_index %d", ErrInvalidDefinition, q.OrderIndex)
		}
		seen[q.OrderIndex] = true
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: question %d has no options", ErrInvalidDefinition, q.OrderIndex)
		}
	}

	for _, r := range req.Results {
		if r.MaxScore != nil && *r.MaxScore < r.MinScore {
			return fmt.Errorf("%w: rule %q has max_score below min_score", ErrInvalidDefinition, r.ResultRange)
		}
	}
	return nil
}

// CreateTest stores a test with its questions, options and scoring rules in one transaction.
func (s *TestService) CreateTest(req *CreateTestRequest) (*models.Test, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	rules := withNorms(req.TestType, req.Results)

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var existing int64
	if err := tx.Unscoped().Model(&models.Test{}).Where("test_type = ?", req.TestType).Count(&existing).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if existing > 0 {
		tx.Rollback()
		return nil, ErrTestTypeExists
	}

	test := models.Test{
		TestType:    req.TestType,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := tx.Create(&test).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, qReq := range req.Questions {
		question := models.Question{
			TestID:     test.ID,
			Text:       qReq.Text,
			OrderIndex: qReq.OrderIndex,
		}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		for _, optReq := range qReq.Options {
			option := models.Option{
				QuestionID: question.ID,
				Text:       optReq.Text,
				Score:      optReq.Score,
			}
			if err := tx.Create(&option).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	for _, rReq := range rules {
		rule := models.ScoringRule{
			TestID:      test.ID,
			MinScore:    rReq.MinScore,
			MaxScore:    rReq.MaxScore,
			ResultRange: rReq.ResultRange,
			Description: rReq.Description,
		}
		if code := rReq.scope(); code != "" {
			rule.DimensionCode = &code
		}
		if err := tx.Create(&rule).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	log.Printf("Created test %s (%d questions, %d rules)", test.TestType, len(req.Questions), len(rules))
	return s.GetTestByType(test.TestType)
}

// GetTestByType returns the full definition, option scores and rules included.
func (s *TestService) GetTestByType(testType string) (*models.Test, error) {
	var test models.Test
	err := s.db.Where("test_type = ?", testType).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_index, questions.id")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.id")
		}).
		Preload("Results", func(db *gorm.DB) *gorm.DB {
			return db.Order("test_results.min_score, test_results.id")
		}).
		First(&test).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &test, nil
}

// GetTestForTaking returns the test with option scores stripped.
func (s *TestService) GetTestForTaking(testType string) (*TestForTaking, error) {
	test, err := s.GetTestByType(testType)
	if err != nil {
		return nil, err
	}

	out := &TestForTaking{
		ID:          test.ID,
		TestType:    test.TestType,
		Title:       test.Title,
		Description: test.Description,
		Questions:   make([]QuestionForTaking, 0, len(test.Questions)),
	}
	for _, q := range test.Questions {
		options := make([]OptionForTaking, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, OptionForTaking{ID: o.ID, Text: o.Text})
		}
		out.Questions = append(out.Questions, QuestionForTaking{
			ID:         q.ID,
			Text:       q.Text,
			OrderIndex: q.OrderIndex,
			Options:    options,
		})
	}
	return out, nil
}

// GetPopularTests ranks tests by the number of completed sessions. Tests nobody took are left out.
func (s *TestService) GetPopularTests(ctx context.Context, limit int) ([]PopularTest, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}

	key := fmt.Sprintf("popular:%d", limit)
	if cached, ok := s.cachedPopular(ctx, key); ok {
		return cached, nil
	}

	var popular []PopularTest
	err := s.db.WithContext(ctx).Table("tests").
		Select("tests.id, tests.test_type, tests.title, tests.description, COUNT(test_sessions.id) AS session_count").
		Joins("JOIN test_sessions ON test_sessions.test_id = tests.id").
		Where("tests.deleted_at IS NULL").
		Group("tests.id, tests.test_type, tests.title, tests.description").
		Order("session_count DESC, tests.id").
		Limit(limit).
		Scan(&popular).Error
	if err != nil {
		return nil, err
	}
	if popular == nil {
		popular = []PopularTest{}
	}

	s.storePopular(ctx, key, popular)
	return popular, nil
}

func (s *TestService) cachedPopular(ctx context.Context, key string) ([]PopularTest, bool) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return nil, false
	}

	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis error reading %s: %v", key, err)
		}
		return nil, false
	}

	var popular []PopularTest
	if err := json.Unmarshal(data, &popular); err != nil {
		log.Printf("Failed to unmarshal %s: %v", key, err)
		return nil, false
	}
	return popular, true
}

func (s *TestService) storePopular(ctx context.Context, key string, popular []PopularTest) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(popular)
	if err != nil {
		log.Printf("Failed to marshal %s: %v", key, err)
		return
	}
	if err := s.redis.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		log.Printf("Failed to cache %s: %v", key, err)
	}
}
