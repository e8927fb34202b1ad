package tasting

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/tastevin-app/tastevin/internal/common/clock/mocks"
	uuidMocks "github.com/tastevin-app/tastevin/internal/common/uuid/mocks"
	"github.com/tastevin-app/tastevin/internal/models"
	participantRepo "github.com/tastevin-app/tastevin/internal/repositories/participant"
	participantMocks "github.com/tastevin-app/tastevin/internal/repositories/participant/mocks"
	sessionMocks "github.com/tastevin-app/tastevin/internal/repositories/session/mocks"
	tastingRepo "github.com/tastevin-app/tastevin/internal/repositories/tasting"
	tastingMocks "github.com/tastevin-app/tastevin/internal/repositories/tasting/mocks"
)

// recordingPublisher collects published events for assertions
type recordingPublisher struct {
	mu     sync.Mutex
	events []*models.Event
}

func (p *recordingPublisher) Publish(event *models.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) byType(t models.EventType) []*models.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*models.Event
	for _, e := range p.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type TastingServiceTestSuite struct {
	suite.Suite
	mockCtrl            *gomock.Controller
	mockSessionRepo     *sessionMocks.MockRepository
	mockParticipantRepo *participantMocks.MockRepository
	mockTastingRepo     *tastingMocks.MockRepository
	mockClock           *clockMocks.MockClock
	mockUUID            *uuidMocks.MockUUID
	publisher           *recordingPublisher
	tastingService      Service
	ctx                 context.Context

	// Test data
	testTime         time.Time
	testSessionID    string
	testHostID       string
	testUserID       string
	testSuggestionID string

	// Reusable fixtures
	activeSession     *models.Session
	pendingSession    *models.Session
	hostMember        *models.Participant
	participantMember *models.Participant
	pendingSuggestion *models.Suggestion
}

func (s *TastingServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockParticipantRepo = participantMocks.NewMockRepository(s.mockCtrl)
	s.mockTastingRepo = tastingMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.publisher = &recordingPublisher{}

	s.ctx = context.Background()

	s.testTime = time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)
	s.testSessionID = "test-session-id"
	s.testHostID = "test-host-id"
	s.testUserID = "test-user-id"
	s.testSuggestionID = "test-suggestion-id"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	s.activeSession = &models.Session{
		ID:         s.testSessionID,
		HostUserID: s.testHostID,
		Approach:   models.ApproachCollaborative,
		State:      models.SessionStateActive,
	}

	s.pendingSession = &models.Session{
		ID:         s.testSessionID,
		HostUserID: s.testHostID,
		Approach:   models.ApproachCollaborative,
		State:      models.SessionStateModerationPending,
	}

	s.hostMember = &models.Participant{
		ID:        "test-host-participant-id",
		SessionID: s.testSessionID,
		UserID:    s.testHostID,
		Role:      models.RoleBoth,
	}

	s.participantMember = &models.Participant{
		ID:        "test-participant-id",
		SessionID: s.testSessionID,
		UserID:    s.testUserID,
		Role:      models.RoleParticipant,
	}

	s.pendingSuggestion = &models.Suggestion{
		ID:            s.testSuggestionID,
		SessionID:     s.testSessionID,
		ParticipantID: s.participantMember.ID,
		ItemName:      "Chinon 2019",
		Status:        models.SuggestionStatusPending,
		Seq:           1,
		CreatedAt:     s.testTime,
	}

	cfg := &Config{
		SessionRepo:     s.mockSessionRepo,
		ParticipantRepo: s.mockParticipantRepo,
		TastingRepo:     s.mockTastingRepo,
		Clock:           s.mockClock,
		UUIDGenerator:   s.mockUUID,
		EventPublisher:  s.publisher,
	}

	svc, err := New(cfg)
	s.Require().NoError(err)
	s.tastingService = svc
}

func (s *TastingServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *TastingServiceTestSuite) expectSession(session *models.Session) {
	s.mockSessionRepo.EXPECT().
		GetSession(gomock.Any(), gomock.Any()).
		Return(session, nil)
}

func (s *TastingServiceTestSuite) expectParticipant(p *models.Participant) {
	s.mockParticipantRepo.EXPECT().
		GetParticipantByUser(gomock.Any(), &participantRepo.GetParticipantByUserInput{
			SessionID: s.testSessionID,
			UserID:    p.UserID,
		}).
		Return(p, nil)
}

func (s *TastingServiceTestSuite) TestSubmitSuggestion_HappyPath() {
	s.expectSession(s.activeSession)
	s.expectParticipant(s.participantMember)

	s.mockUUID.EXPECT().NewUUID().Return(s.testSuggestionID)

	s.mockTastingRepo.EXPECT().
		SaveSuggestion(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *tastingRepo.SaveSuggestionInput) (*models.Suggestion, error) {
			s.Equal(models.SuggestionStatusPending, input.Suggestion.Status)
			s.False(input.Suggestion.QueuedDuringAbsence)
			saved := *input.Suggestion
			saved.Seq = 1
			return &saved, nil
		})

	output, err := s.tastingService.SubmitSuggestion(s.ctx, &SubmitSuggestionInput{
		SessionID: s.testSessionID,
		UserID:    s.testUserID,
		ItemName:  "Chinon 2019",
	})

	s.Require().NoError(err)
	s.False(output.Queued)
	s.Equal(int64(1), output.Suggestion.Seq)
	s.Len(s.publisher.byType(models.EventSuggestionCreated), 1)
}

func (s *TastingServiceTestSuite) TestSubmitSuggestion_QueuedWhileHostAway() {
	s.expectSession(s.pendingSession)
	s.expectParticipant(s.participantMember)

	s.mockUUID.EXPECT().NewUUID().Return(s.testSuggestionID)

	s.mockTastingRepo.EXPECT().
		SaveSuggestion(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *tastingRepo.SaveSuggestionInput) (*models.Suggestion, error) {
			s.True(input.Suggestion.QueuedDuringAbsence)
			return input.Suggestion, nil
		})

	output, err := s.tastingService.SubmitSuggestion(s.ctx, &SubmitSuggestionInput{
		SessionID: s.testSessionID,
		UserID:    s.testUserID,
		ItemName:  "Chinon 2019",
	})

	s.Require().NoError(err)
	s.True(output.Queued)
}

func (s *TastingServiceTestSuite) TestSubmitSuggestion_PredefinedSession() {
	predefined := &models.Session{
		ID:         s.testSessionID,
		HostUserID: s.testHostID,
		Approach:   models.ApproachPredefined,
		State:      models.SessionStateActive,
	}
	s.expectSession(predefined)

	output, err := s.tastingService.SubmitSuggestion(s.ctx, &SubmitSuggestionInput{
		SessionID: s.testSessionID,
		UserID:    s.testUserID,
		ItemName:  "Chinon 2019",
	})

	s.Require().ErrorIs(err, ErrSuggestionsDisabled)
	s.Nil(output)
}

func (s *TastingServiceTestSuite) TestSubmitSuggestion_DraftSession() {
	draft := &models.Session{
		ID:         s.testSessionID,
		HostUserID: s.testHostID,
		Approach:   models.ApproachCollaborative,
		State:      models.SessionStateDraft,
	}
	s.expectSession(draft)

	output, err := s.tastingService.SubmitSuggestion(s.ctx, &SubmitSuggestionInput{
		SessionID: s.testSessionID,
		UserID:    s.testUserID,
		ItemName:  "Chinon 2019",
	})

	s.Require().ErrorIs(err, ErrInvalidSessionState)
	s.Nil(output)
}

func (s *TastingServiceTestSuite) TestSubmitSuggestion_NotParticipant() {
	s.expectSession(s.activeSession)

	s.mockParticipantRepo.EXPECT().
		GetParticipantByUser(gomock.Any(), gomock.Any()).
		Return(nil, participantRepo.ErrParticipantNotFound)

	output, err := s.tastingService.SubmitSuggestion(s.ctx, &SubmitSuggestionInput{
		SessionID: s.testSessionID,
		UserID:    "test-stranger-id",
		ItemName:  "Chinon 2019",
	})

	s.Require().ErrorIs(err, ErrNotParticipant)
	s.Nil(output)
}

func (s *TastingServiceTestSuite) TestSubmitSuggestion_HostOnlyRoleCannotSuggest() {
	s.expectSession(s.activeSession)

	hostOnly := &models.Participant{
		ID:        "test-host-participant-id",
		SessionID: s.testSessionID,
		UserID:    s.testHostID,
		Role:      models.RoleHost,
	}
	s.expectParticipant(hostOnly)

	output, err := s.tastingService.SubmitSuggestion(s.ctx, &SubmitSuggestionInput{
		SessionID: s.testSessionID,
		UserID:    s.testHostID,
		ItemName:  "Chinon 2019",
	})

	s.Require().ErrorIs(err, ErrCannotSuggest)
	s.Nil(output)
}

func (s *TastingServiceTestSuite) TestModerateSuggestion_ApproveCreatesItem() {
	s.expectSession(s.activeSession)
	s.expectParticipant(s.hostMember)

	s.mockTastingRepo.EXPECT().
		GetSuggestion(gomock.Any(), &tastingRepo.GetSuggestionInput{
			SuggestionID: s.testSuggestionID,
		}).
		Return(s.pendingSuggestion, nil)

	s.mockUUID.EXPECT().NewUUID().Return("test-item-id")

	s.mockTastingRepo.EXPECT().
		DecideSuggestion(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *tastingRepo.DecideSuggestionInput) error {
			s.Equal(models.SuggestionStatusApproved, input.Suggestion.Status)
			s.Equal(s.hostMember.ID, input.Suggestion.ModeratorID)
			s.Require().NotNil(input.Item)
			s.Equal(s.pendingSuggestion.ItemName, input.Item.ItemName)
			s.Equal(s.testSuggestionID, input.Item.SourceSuggestionID)
			return nil
		})

	output, err := s.tastingService.ModerateSuggestion(s.ctx, &ModerateSuggestionInput{
		SessionID:    s.testSessionID,
		SuggestionID: s.testSuggestionID,
		UserID:       s.testHostID,
		Action:       ActionApprove,
	})

	s.Require().NoError(err)
	s.Require().NotNil(output.Item)
	s.Equal(models.SuggestionStatusApproved, output.Suggestion.Status)
	s.Len(s.publisher.byType(models.EventSuggestionModerated), 1)
	s.Len(s.publisher.byType(models.EventItemCreated), 1)
}

func (s *TastingServiceTestSuite) TestModerateSuggestion_RejectCreatesNoItem() {
	s.expectSession(s.activeSession)
	s.expectParticipant(s.hostMember)

	s.mockTastingRepo.EXPECT().
		GetSuggestion(gomock.Any(), gomock.Any()).
		Return(s.pendingSuggestion, nil)

	s.mockTastingRepo.EXPECT().
		DecideSuggestion(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *tastingRepo.DecideSuggestionInput) error {
			s.Equal(models.SuggestionStatusRejected, input.Suggestion.Status)
			s.Nil(input.Item)
			return nil
		})

	output, err := s.tastingService.ModerateSuggestion(s.ctx, &ModerateSuggestionInput{
		SessionID:    s.testSessionID,
		SuggestionID: s.testSuggestionID,
		UserID:       s.testHostID,
		Action:       ActionReject,
	})

	s.Require().NoError(err)
	s.Nil(output.Item)
	s.Empty(s.publisher.byType(models.EventItemCreated))
}

func (s *TastingServiceTestSuite) TestModerateSuggestion_AlreadyDecided() {
	s.expectSession(s.activeSession)
	s.expectParticipant(s.hostMember)

	approved := *s.pendingSuggestion
	approved.Status = models.SuggestionStatusApproved

	s.mockTastingRepo.EXPECT().
		GetSuggestion(gomock.Any(), gomock.Any()).
		Return(&approved, nil)

	output, err := s.tastingService.ModerateSuggestion(s.ctx, &ModerateSuggestionInput{
		SessionID:    s.testSessionID,
		SuggestionID: s.testSuggestionID,
		UserID:       s.testHostID,
		Action:       ActionReject,
	})

	s.Require().ErrorIs(err, ErrAlreadyModerated)
	s.Nil(output)
	s.Empty(s.publisher.events)
}

func (s *TastingServiceTestSuite) TestModerateSuggestion_LostRace() {
	s.expectSession(s.activeSession)
	s.expectParticipant(s.hostMember)

	s.mockTastingRepo.EXPECT().
		GetSuggestion(gomock.Any(), gomock.Any()).
		Return(s.pendingSuggestion, nil)

	s.mockUUID.EXPECT().NewUUID().Return("test-item-id")

	// The pre-check saw pending but another decision landed first
	s.mockTastingRepo.EXPECT().
		DecideSuggestion(gomock.Any(), gomock.Any()).
		Return(tastingRepo.ErrAlreadyDecided)

	output, err := s.tastingService.ModerateSuggestion(s.ctx, &ModerateSuggestionInput{
		SessionID:    s.testSessionID,
		SuggestionID: s.testSuggestionID,
		UserID:       s.testHostID,
		Action:       ActionApprove,
	})

	s.Require().ErrorIs(err, ErrAlreadyModerated)
	s.Nil(output)
	s.Empty(s.publisher.events)
}

func (s *TastingServiceTestSuite) TestModerateSuggestion_WhileHostAway() {
	s.expectSession(s.pendingSession)

	output, err := s.tastingService.ModerateSuggestion(s.ctx, &ModerateSuggestionInput{
		SessionID:    s.testSessionID,
		SuggestionID: s.testSuggestionID,
		UserID:       s.testHostID,
		Action:       ActionApprove,
	})

	s.Require().ErrorIs(err, ErrInvalidSessionState)
	s.Nil(output)
}

func (s *TastingServiceTestSuite) TestModerateSuggestion_NotModerator() {
	s.expectSession(s.activeSession)
	s.expectParticipant(s.participantMember)

	output, err := s.tastingService.ModerateSuggestion(s.ctx, &ModerateSuggestionInput{
		SessionID:    s.testSessionID,
		SuggestionID: s.testSuggestionID,
		UserID:       s.testUserID,
		Action:       ActionApprove,
	})

	s.Require().ErrorIs(err, ErrNotModerator)
	s.Nil(output)
}

func (s *TastingServiceTestSuite) TestModerateSuggestion_WrongSession() {
	s.expectSession(s.activeSession)
	s.expectParticipant(s.hostMember)

	foreign := *s.pendingSuggestion
	foreign.SessionID = "another-session-id"

	s.mockTastingRepo.EXPECT().
		GetSuggestion(gomock.Any(), gomock.Any()).
		Return(&foreign, nil)

	output, err := s.tastingService.ModerateSuggestion(s.ctx, &ModerateSuggestionInput{
		SessionID:    s.testSessionID,
		SuggestionID: s.testSuggestionID,
		UserID:       s.testHostID,
		Action:       ActionApprove,
	})

	s.Require().ErrorIs(err, ErrSuggestionNotFound)
	s.Nil(output)
}

func (s *TastingServiceTestSuite) TestModerateSuggestion_UnknownAction() {
	output, err := s.tastingService.ModerateSuggestion(s.ctx, &ModerateSuggestionInput{
		SessionID:    s.testSessionID,
		SuggestionID: s.testSuggestionID,
		UserID:       s.testHostID,
		Action:       ModerationAction("defer"),
	})

	s.Require().ErrorIs(err, ErrInvalidAction)
	s.Nil(output)
}

func (s *TastingServiceTestSuite) TestAddItemDirectly_DraftSession() {
	draft := &models.Session{
		ID:         s.testSessionID,
		HostUserID: s.testHostID,
		Approach:   models.ApproachPredefined,
		State:      models.SessionStateDraft,
	}
	s.expectSession(draft)
	s.expectParticipant(s.hostMember)

	s.mockUUID.EXPECT().NewUUID().Return("test-item-id")

	s.mockTastingRepo.EXPECT().
		SaveItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *tastingRepo.SaveItemInput) error {
			s.Equal("Sancerre 2022", input.Item.ItemName)
			s.Empty(input.Item.SourceSuggestionID)
			return nil
		})

	output, err := s.tastingService.AddItemDirectly(s.ctx, &AddItemDirectlyInput{
		SessionID: s.testSessionID,
		UserID:    s.testHostID,
		ItemName:  "Sancerre 2022",
	})

	s.Require().NoError(err)
	s.Equal("test-item-id", output.Item.ID)
	s.Len(s.publisher.byType(models.EventItemCreated), 1)
}

func (s *TastingServiceTestSuite) TestAddItemDirectly_RequiresModerator() {
	s.expectSession(s.activeSession)
	s.expectParticipant(s.participantMember)

	output, err := s.tastingService.AddItemDirectly(s.ctx, &AddItemDirectlyInput{
		SessionID: s.testSessionID,
		UserID:    s.testUserID,
		ItemName:  "Sancerre 2022",
	})

	s.Require().ErrorIs(err, ErrNotModerator)
	s.Nil(output)
}

func (s *TastingServiceTestSuite) TestAddItemDirectly_WhileHostAway() {
	s.expectSession(s.pendingSession)

	output, err := s.tastingService.AddItemDirectly(s.ctx, &AddItemDirectlyInput{
		SessionID: s.testSessionID,
		UserID:    s.testHostID,
		ItemName:  "Sancerre 2022",
	})

	s.Require().ErrorIs(err, ErrInvalidSessionState)
	s.Nil(output)
}

func (s *TastingServiceTestSuite) TestListSuggestions_FiltersByStatus() {
	s.expectSession(s.activeSession)

	expected := []*models.Suggestion{s.pendingSuggestion}

	s.mockTastingRepo.EXPECT().
		ListSuggestions(gomock.Any(), &tastingRepo.ListSuggestionsInput{
			SessionID: s.testSessionID,
			Status:    models.SuggestionStatusPending,
		}).
		Return(expected, nil)

	out, err := s.tastingService.ListSuggestions(s.ctx, &ListSuggestionsInput{
		SessionID: s.testSessionID,
		Status:    models.SuggestionStatusPending,
	})

	s.Require().NoError(err)
	s.Equal(expected, out)
}

func (s *TastingServiceTestSuite) TestListItems() {
	s.expectSession(s.activeSession)

	expected := []*models.TastingItem{{
		ID:        "test-item-id",
		SessionID: s.testSessionID,
		ItemName:  "Chinon 2019",
	}}

	s.mockTastingRepo.EXPECT().
		ListItems(gomock.Any(), &tastingRepo.ListItemsInput{
			SessionID: s.testSessionID,
		}).
		Return(expected, nil)

	out, err := s.tastingService.ListItems(s.ctx, &ListItemsInput{
		SessionID: s.testSessionID,
	})

	s.Require().NoError(err)
	s.Equal(expected, out)
}

func TestTastingServiceSuite(t *testing.T) {
	suite.Run(t, new(TastingServiceTestSuite))
}
