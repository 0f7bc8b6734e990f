package services

import (
	"context"
	"testing"

	"psytest/models"
	"psytest/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sessionFixture struct {
	db       *gorm.DB
	tests    *TestService
	sessions *SessionService
	notifier *recordingNotifier
}

func newSessionFixture(t *testing.T) *sessionFixture {
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	return &sessionFixture{
		db:       db,
		tests:    NewTestService(db, nil, 0),
		sessions: NewSessionService(db, scoring.NewEngine(), notifier),
		notifier: notifier,
	}
}

func (f *sessionFixture) create(t *testing.T, req *CreateTestRequest) *models.Test {
	t.Helper()
	test, err := f.tests.CreateTest(req)
	require.NoError(t, err)
	return test
}

func TestSubmitAdditive(t *testing.T) {
	f := newSessionFixture(t)
	test := f.create(t, pointTest("stress", 3, []int{1, 3, 4},
		CreateRuleRequest{MinScore: 0, MaxScore: intPtr(5), ResultRange: "Low"},
		CreateRuleRequest{MinScore: 6, MaxScore: intPtr(10), ResultRange: "Moderate"},
	))

	req := &SubmitRequest{
		UserID: "user-1",
		Answers: []AnswerInput{
			pick(t, test, 1, 3),
			pick(t, test, 2, 1),
			pick(t, test, 3, 4),
		},
	}
	session, err := f.sessions.Submit(context.Background(), test.ID, req)
	require.NoError(t, err)

	assert.Equal(t, 8, session.TotalScore)
	assert.Equal(t, "Moderate", session.Result)
	assert.Empty(t, session.Dimensions)

	stored, err := f.sessions.GetSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", stored.UserID)
	require.Len(t, stored.Answers, 3)
	assert.Equal(t, req.Answers[0].SelectedOptionID, stored.Answers[0].SelectedOptionID)
	assert.Equal(t, req.Answers[0].QuestionID, stored.Answers[0].QuestionID)

	events := f.notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, SessionEvent{
		TestType:  "stress",
		TestID:    test.ID,
		SessionID: session.ID,
		CreatedAt: session.CreatedAt,
	}, events[0])
}

func TestSubmitFallsBackToUndefinedResult(t *testing.T) {
	f := newSessionFixture(t)
	test := f.create(t, pointTest("stress", 1, []int{9}, CreateRuleRequest{MinScore: 0, MaxScore: intPtr(5), ResultRange: "Low"}))

	session, err := f.sessions.Submit(context.Background(), test.ID, &SubmitRequest{
		UserID:  "u",
		Answers: []AnswerInput{pick(t, test, 1, 9)},
	})
	require.NoError(t, err)
	assert.Equal(t, scoring.UndefinedResult, session.Result)
}

func TestSubmitRejections(t *testing.T) {
	f := newSessionFixture(t)
	test := f.create(t, pointTest("stress", 2, []int{1, 2}))
	other := f.create(t, pointTest("other", 1, []int{1}))
	ctx := context.Background()

	_, err := f.sessions.Submit(ctx, 9999, &SubmitRequest{UserID: "u", Answers: []AnswerInput{pick(t, test, 1, 1)}})
	assert.ErrorIs(t, err, ErrTestNotFound)

	_, err = f.sessions.Submit(ctx, test.ID, &SubmitRequest{UserID: "u"})
	assert.ErrorIs(t, err, scoring.ErrNoAnswers)
	assert.True(t, scoring.IsValidation(err))

	_, err = f.sessions.Submit(ctx, test.ID, &SubmitRequest{UserID: "u", Answers: []AnswerInput{
		pick(t, test, 1, 1),
		{QuestionID: test.Questions[1].ID, SelectedOptionID: 424242},
	}})
	assert.ErrorIs(t, err, scoring.ErrInvalidOption)

	_, err = f.sessions.Submit(ctx, test.ID, &SubmitRequest{UserID: "u", Answers: []AnswerInput{
		pick(t, test, 1, 1),
		pick(t, other, 1, 1),
	}})
	assert.ErrorIs(t, err, scoring.ErrInvalidOption)

	var count int64
	require.NoError(t, f.db.Model(&models.Session{}).Count(&count).Error)
	assert.Zero(t, count, "rejected submissions store nothing")
	assert.Empty(t, f.notifier.Events())
}

func TestSubmitScoresRepeatedOptionOnce(t *testing.T) {
	f := newSessionFixture(t)
	test := f.create(t, pointTest("stress", 2, []int{5}))

	answer := pick(t, test, 1, 5)
	session, err := f.sessions.Submit(context.Background(), test.ID, &SubmitRequest{
		UserID:  "u",
		Answers: []AnswerInput{answer, answer},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, session.TotalScore)
	assert.Len(t, session.Answers, 2, "answers are stored as submitted")
}

func TestSubmitMBTI(t *testing.T) {
	f := newSessionFixture(t)

	req := &CreateTestRequest{
		TestType: "mbti",
		Title:    "Type indicator",
		Results: []CreateRuleRequest{
			{MinScore: 2211, ResultRange: "Architect", Description: strPtr("Strategic thinker")},
		},
	}
	pairs := [][2]int{{1, 2}, {4, 3}, {5, 6}, {7, 8}}
	for i := 1; i <= 28; i++ {
		pair := pairs[(i-1)/7]
		req.Questions = append(req.Questions, CreateQuestionRequest{
			Text:       "Q",
			OrderIndex: i,
			Options: []CreateOptionRequest{
				{Text: "A", Score: pair[0]},
				{Text: "B", Score: pair[1]},
			},
		})
	}
	test := f.create(t, req)

	// one I, one N, one T, one J
	session, err := f.sessions.Submit(context.Background(), test.ID, &SubmitRequest{
		UserID: "u",
		Answers: []AnswerInput{
			pick(t, test, 1, 2),
			pick(t, test, 8, 3),
			pick(t, test, 15, 6),
			pick(t, test, 22, 7),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2211, session.TotalScore)
	assert.Equal(t, "Architect<SEP>Strategic thinker", session.Result)
	assert.Empty(t, session.Dimensions)
}

func TestSubmitHPLPStoresDimensions(t *testing.T) {
	f := newSessionFixture(t)
	test := f.create(t, pointTest("hpls", 40, []int{1, 2, 3, 4}))

	var answers []AnswerInput
	for i := 1; i <= 40; i++ {
		answers = append(answers, pick(t, test, i, 2))
	}
	session, err := f.sessions.Submit(context.Background(), test.ID, &SubmitRequest{UserID: "u", Answers: answers})
	require.NoError(t, err)

	assert.Equal(t, 80, session.TotalScore)
	assert.Equal(t, "Fair", session.Result)

	stored, err := f.sessions.GetSession(session.ID)
	require.NoError(t, err)
	require.Len(t, stored.Dimensions, 6)
	got := map[string]models.SessionDimension{}
	for _, d := range stored.Dimensions {
		got[d.DimensionCode] = d
	}
	assert.Equal(t, 22, got["HR"].Score)
	assert.Equal(t, "Fair", got["HR"].ResultRange)
	assert.Equal(t, 16, got["PA"].Score)
	assert.Equal(t, "Fair", got["PA"].ResultRange)
	assert.Equal(t, "HR", stored.Dimensions[0].DimensionCode)
}

func TestSubmitMPSUsesHighStandardsNorm(t *testing.T) {
	f := newSessionFixture(t)
	test := f.create(t, pointTest("mps", 29, []int{1, 2, 3, 4, 5}))

	var answers []AnswerInput
	for i := 1; i <= 29; i++ {
		answers = append(answers, pick(t, test, i, 3))
	}
	session, err := f.sessions.Submit(context.Background(), test.ID, &SubmitRequest{UserID: "u", Answers: answers})
	require.NoError(t, err)

	// 15 high standards items and 14 adaptation items, all scored 3
	assert.Equal(t, 87, session.TotalScore)
	assert.Equal(t, "Within norm", session.Result)
	require.Len(t, session.Dimensions, 7)
}

func TestGetSessionNotFound(t *testing.T) {
	f := newSessionFixture(t)
	_, err := f.sessions.GetSession(12345)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetUserSessionsNewestFirst(t *testing.T) {
	f := newSessionFixture(t)
	test := f.create(t, pointTest("stress", 1, []int{1, 2, 3}))
	ctx := context.Background()

	var ids []uint
	for _, score := range []int{1, 2, 3} {
		s, err := f.sessions.Submit(ctx, test.ID, &SubmitRequest{UserID: "alice", Answers: []AnswerInput{pick(t, test, 1, score)}})
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}
	_, err := f.sessions.Submit(ctx, test.ID, &SubmitRequest{UserID: "bob", Answers: []AnswerInput{pick(t, test, 1, 1)}})
	require.NoError(t, err)

	history, err := f.sessions.GetUserSessions("alice")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, ids[2], history[0].ID)
	assert.Equal(t, ids[0], history[2].ID)

	none, err := f.sessions.GetUserSessions("nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
