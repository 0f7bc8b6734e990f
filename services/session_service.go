package services

import (
	"context"
	"errors"
	"log"
	"time"

	"psytest/models"
	"psytest/scoring"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionEvent announces a stored submission to live feed subscribers.
type SessionEvent struct {
	TestType  string    `json:"test_type"`
	TestID    uint      `json:"test_id"`
	SessionID uint      `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionNotifier interface {
	SessionCompleted(event SessionEvent)
}

type SessionService struct {
	db       *gorm.DB
	engine   *scoring.Engine
	notifier SessionNotifier
}

func NewSessionService(db *gorm.DB, engine *scoring.Engine, notifier SessionNotifier) *SessionService {
	return &SessionService{
		db:       db,
		engine:   engine,
		notifier: notifier,
	}
}

type SubmitRequest struct {
	UserID  string        `json:"user_id" binding:"required,max=255"`
	Answers []AnswerInput `json:"answers" binding:"dive"`
}

type AnswerInput struct {
	QuestionID       uint `json:"question_id" binding:"required"`
	SelectedOptionID uint `json:"selected_option_id" binding:"required"`
}

// Submit scores a submission and stores the session, the answers as submitted and the
// dimension results in one transaction.
func (s *SessionService) Submit(ctx context.Context, testID uint, req *SubmitRequest) (*models.Session, error) {
	db := s.db.WithContext(ctx)

	var test models.Test
	if err := db.First(&test, testID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, err
	}

	if len(req.Answers) == 0 {
		return nil, scoring.ErrNoAnswers
	}

	answers, err := s.loadAnswers(db, test.ID, req.Answers)
	if err != nil {
		return nil, err
	}

	rules, err := s.loadRules(db, test.ID)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.Score(test.TestType, answers, rules)
	if err != nil {
		return nil, err
	}

	session := models.Session{
		UserID:     req.UserID,
		TestID:     test.ID,
		Result:     result.Result,
		TotalScore: result.TotalScore,
	}
	for _, a := range req.Answers {
		session.Answers = append(session.Answers, models.UserAnswer{
			QuestionID:       a.QuestionID,
			SelectedOptionID: a.SelectedOptionID,
		})
	}
	for _, d := range result.Dimensions {
		session.Dimensions = append(session.Dimensions, models.SessionDimension{
			DimensionCode: d.Code,
			Score:         d.Score,
			ResultRange:   d.ResultRange,
		})
	}

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&session).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	log.Printf("Stored session %d for test %s: total=%d result=%q", session.ID, test.TestType, session.TotalScore, session.Result)

	if s.notifier != nil {
		s.notifier.SessionCompleted(SessionEvent{
			TestType:  test.TestType,
			TestID:    test.ID,
			SessionID: session.ID,
			CreatedAt: session.CreatedAt,
		})
	}
	return &session, nil
}

// loadAnswers resolves the selected options. Each distinct option is scored once; every one of
// them must exist and belong to the test.
func (s *SessionService) loadAnswers(db *gorm.DB, testID uint, inputs []AnswerInput) ([]scoring.Answer, error) {
	ids := make([]uint, 0, len(inputs))
	seen := make(map[uint]bool, len(inputs))
	for _, in := range inputs {
		if !seen[in.SelectedOptionID] {
			seen[in.SelectedOptionID] = true
			ids = append(ids, in.SelectedOptionID)
		}
	}

	var options []models.Option
	if err := db.Preload("Question").Where("id IN ?", ids).Order("id").Find(&options).Error; err != nil {
		return nil, err
	}
	if len(options) != len(ids) {
		return nil, scoring.ErrInvalidOption
	}

	answers := make([]scoring.Answer, 0, len(options))
	for _, opt := range options {
		answer := scoring.Answer{Score: opt.Score}
		if opt.Question != nil {
			if opt.Question.TestID != testID {
				return nil, scoring.ErrInvalidOption
			}
			answer.OrderIndex = opt.Question.OrderIndex
		} else {
			log.Printf("Option %d has no resolvable question", opt.ID)
		}
		answers = append(answers, answer)
	}
	return answers, nil
}

func (s *SessionService) loadRules(db *gorm.DB, testID uint) ([]scoring.Rule, error) {
	var rows []models.ScoringRule
	if err := db.Where("test_id = ?", testID).Order("min_score, id").Find(&rows).Error; err != nil {
		return nil, err
	}

	rules := make([]scoring.Rule, 0, len(rows))
	for _, r := range rows {
		rules = append(rules, scoring.Rule{
			MinScore:      r.MinScore,
			MaxScore:      r.MaxScore,
			ResultRange:   r.ResultRange,
			Description:   r.Description,
			DimensionCode: r.DimensionCode,
		})
	}
	return rules, nil
}

func (s *SessionService) GetSession(sessionID uint) (*models.Session, error) {
	var session models.Session
	err := s.db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("user_answers.id")
		}).
		Preload("Dimensions", func(db *gorm.DB) *gorm.DB {
			return db.Order("test_session_dimensions.id")
		}).
		First(&session, sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetUserSessions returns a user's sessions, newest first.
func (s *SessionService) GetUserSessions(userID string) ([]models.Session, error) {
	sessions := []models.Session{}
	err := s.db.Where("user_id = ?", userID).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("user_answers.id")
		}).
		Preload("Dimensions", func(db *gorm.DB) *gorm.DB {
			return db.Order("test_session_dimensions.id")
		}).
		Order("created_at DESC, id DESC").
		Find(&sessions).Error
	return sessions, err
}
