package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/tastevin-app/tastevin/internal/common/uuid"
	"github.com/tastevin-app/tastevin/internal/models"
	heartbeatRepo "github.com/tastevin-app/tastevin/internal/repositories/heartbeat"
	participantRepo "github.com/tastevin-app/tastevin/internal/repositories/participant"
	sessionRepo "github.com/tastevin-app/tastevin/internal/repositories/session"
	tastingRepo "github.com/tastevin-app/tastevin/internal/repositories/tasting"
	"github.com/tastevin-app/tastevin/internal/services/broadcast"
	livenessService "github.com/tastevin-app/tastevin/internal/services/liveness"
	tastingService "github.com/tastevin-app/tastevin/internal/services/tasting"
)

// steppingClock is a manually advanced clock for liveness timing
type steppingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *steppingClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// releaseHookRepo runs a callback right before the moderator slot frees
type releaseHookRepo struct {
	participantRepo.Repository
	onRelease func()
}

func (r *releaseHookRepo) ReleaseModerator(ctx context.Context, input *participantRepo.ReleaseModeratorInput) error {
	if r.onRelease != nil {
		r.onRelease()
	}
	return r.Repository.ReleaseModerator(ctx, input)
}

// FlowTestSuite exercises the full stack: real services over real
// repositories backed by miniredis, with the broadcast coordinator as the
// event publisher.
type FlowTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	clock  *steppingClock
	coord  *broadcast.Coordinator

	sessRepo sessionRepo.Repository
	partRepo participantRepo.Repository
	tastRepo tastingRepo.Repository

	sessions Service
	tastings tastingService.Service
	liveness livenessService.Service

	ctx    context.Context
	hostID string
	userID string
}

func (s *FlowTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	sessRepo, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	partRepo, err := participantRepo.NewRedis(&participantRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	tastRepo, err := tastingRepo.NewRedis(&tastingRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	hbRepo, err := heartbeatRepo.NewRedis(&heartbeatRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.sessRepo = sessRepo
	s.partRepo = partRepo
	s.tastRepo = tastRepo

	s.clock = &steppingClock{t: time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)}
	uuidGen := uuid.New()

	s.coord, err = broadcast.New(&broadcast.Config{})
	s.Require().NoError(err)

	s.liveness, err = livenessService.New(&livenessService.Config{
		SessionRepo:     sessRepo,
		ParticipantRepo: partRepo,
		HeartbeatRepo:   hbRepo,
		Clock:           s.clock,
		EventPublisher:  s.coord,
	})
	s.Require().NoError(err)

	s.sessions, err = New(&Config{
		SessionRepo:     sessRepo,
		ParticipantRepo: partRepo,
		TastingRepo:     tastRepo,
		Clock:           s.clock,
		UUIDGenerator:   uuidGen,
		EventPublisher:  s.coord,
		Liveness:        s.liveness,
	})
	s.Require().NoError(err)

	s.tastings, err = tastingService.New(&tastingService.Config{
		SessionRepo:     sessRepo,
		ParticipantRepo: partRepo,
		TastingRepo:     tastRepo,
		Clock:           s.clock,
		UUIDGenerator:   uuidGen,
		EventPublisher:  s.coord,
	})
	s.Require().NoError(err)

	s.ctx = context.Background()
	s.hostID = "host-user"
	s.userID = "guest-user"
}

func (s *FlowTestSuite) TearDownTest() {
	s.coord.Close()
	s.client.Close()
	s.mr.Close()
}

// newActiveCollaborative creates a collaborative session and joins the guest,
// which activates it
func (s *FlowTestSuite) newActiveCollaborative() string {
	created, err := s.sessions.CreateSession(s.ctx, &CreateSessionInput{
		HostUserID: s.hostID,
		Approach:   models.ApproachCollaborative,
	})
	s.Require().NoError(err)

	_, err = s.sessions.JoinSession(s.ctx, &JoinSessionInput{
		SessionID: created.Session.ID,
		UserID:    s.userID,
	})
	s.Require().NoError(err)

	return created.Session.ID
}

func (s *FlowTestSuite) submit(sessionID, itemName string) *tastingService.SubmitSuggestionOutput {
	out, err := s.tastings.SubmitSuggestion(s.ctx, &tastingService.SubmitSuggestionInput{
		SessionID: sessionID,
		UserID:    s.userID,
		ItemName:  itemName,
	})
	s.Require().NoError(err)
	return out
}

func (s *FlowTestSuite) TestCollaborativeSuggestionApproval() {
	sessionID := s.newActiveCollaborative()

	sub, err := s.coord.Subscribe(sessionID)
	s.Require().NoError(err)
	defer sub.Close()

	suggestion := s.submit(sessionID, "Chinon 2019").Suggestion

	moderated, err := s.tastings.ModerateSuggestion(s.ctx, &tastingService.ModerateSuggestionInput{
		SessionID:    sessionID,
		SuggestionID: suggestion.ID,
		UserID:       s.hostID,
		Action:       tastingService.ActionApprove,
	})
	s.Require().NoError(err)
	s.Require().NotNil(moderated.Item)
	s.Equal(suggestion.ID, moderated.Item.SourceSuggestionID)

	items, err := s.tastings.ListItems(s.ctx, &tastingService.ListItemsInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal("Chinon 2019", items[0].ItemName)

	// Subscribers see creation before the decision
	first := s.receive(sub)
	second := s.receive(sub)
	s.Equal(models.EventSuggestionCreated, first.Type)
	s.Equal(models.EventSuggestionModerated, second.Type)
	s.Equal(suggestion.ID, first.SuggestionID)
	s.Equal(suggestion.ID, second.SuggestionID)
}

func (s *FlowTestSuite) TestRejectionLeavesNoItem() {
	sessionID := s.newActiveCollaborative()
	suggestion := s.submit(sessionID, "Retsina").Suggestion

	moderated, err := s.tastings.ModerateSuggestion(s.ctx, &tastingService.ModerateSuggestionInput{
		SessionID:    sessionID,
		SuggestionID: suggestion.ID,
		UserID:       s.hostID,
		Action:       tastingService.ActionReject,
	})
	s.Require().NoError(err)
	s.Nil(moderated.Item)

	items, err := s.tastings.ListItems(s.ctx, &tastingService.ListItemsInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *FlowTestSuite) TestSecondDecisionIsRejected() {
	sessionID := s.newActiveCollaborative()
	suggestion := s.submit(sessionID, "Chinon 2019").Suggestion

	_, err := s.tastings.ModerateSuggestion(s.ctx, &tastingService.ModerateSuggestionInput{
		SessionID:    sessionID,
		SuggestionID: suggestion.ID,
		UserID:       s.hostID,
		Action:       tastingService.ActionApprove,
	})
	s.Require().NoError(err)

	_, err = s.tastings.ModerateSuggestion(s.ctx, &tastingService.ModerateSuggestionInput{
		SessionID:    sessionID,
		SuggestionID: suggestion.ID,
		UserID:       s.hostID,
		Action:       tastingService.ActionReject,
	})
	s.Require().ErrorIs(err, tastingService.ErrAlreadyModerated)

	// Exactly one item for the one approval
	items, err := s.tastings.ListItems(s.ctx, &tastingService.ListItemsInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Len(items, 1)
}

func (s *FlowTestSuite) TestPredefinedSessionHasNoSuggestions() {
	created, err := s.sessions.CreateSession(s.ctx, &CreateSessionInput{
		HostUserID:   s.hostID,
		Approach:     models.ApproachPredefined,
		InitialItems: []string{"Margaux 2015", "Pomerol 2018"},
	})
	s.Require().NoError(err)

	_, err = s.sessions.JoinSession(s.ctx, &JoinSessionInput{
		SessionID: created.Session.ID,
		UserID:    s.userID,
	})
	s.Require().NoError(err)

	items, err := s.tastings.ListItems(s.ctx, &tastingService.ListItemsInput{
		SessionID: created.Session.ID,
	})
	s.Require().NoError(err)
	s.Len(items, 2)

	_, err = s.tastings.SubmitSuggestion(s.ctx, &tastingService.SubmitSuggestionInput{
		SessionID: created.Session.ID,
		UserID:    s.userID,
		ItemName:  "Chinon 2019",
	})
	s.Require().ErrorIs(err, tastingService.ErrSuggestionsDisabled)
}

func (s *FlowTestSuite) TestHostSilenceQueuesAndRecovers() {
	sessionID := s.newActiveCollaborative()

	_, err := s.liveness.RecordHeartbeat(s.ctx, &livenessService.RecordHeartbeatInput{
		SessionID: sessionID,
		UserID:    s.hostID,
	})
	s.Require().NoError(err)

	// One missed evaluation window past the timeout
	s.clock.Advance(livenessService.DefaultUnresponsivenessTimeout + time.Second)

	verdict, err := s.liveness.Evaluate(s.ctx, &livenessService.EvaluateInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.False(verdict.Responsive)
	s.Equal(models.SessionStateModerationPending, verdict.State)

	// Submissions keep flowing but are flagged as queued
	queued := s.submit(sessionID, "Chinon 2019")
	s.True(queued.Queued)
	s.True(queued.Suggestion.QueuedDuringAbsence)

	// Moderation is suspended while the host is away
	_, err = s.tastings.ModerateSuggestion(s.ctx, &tastingService.ModerateSuggestionInput{
		SessionID:    sessionID,
		SuggestionID: queued.Suggestion.ID,
		UserID:       s.hostID,
		Action:       tastingService.ActionApprove,
	})
	s.Require().ErrorIs(err, tastingService.ErrInvalidSessionState)

	// The host returning flips the session back and unblocks the queue
	_, err = s.liveness.RecordHeartbeat(s.ctx, &livenessService.RecordHeartbeatInput{
		SessionID: sessionID,
		UserID:    s.hostID,
	})
	s.Require().NoError(err)

	status, err := s.sessions.GetSessionStatus(s.ctx, &GetSessionStatusInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.True(status.HostResponsive)
	s.Equal(models.SessionStateActive, status.State)

	moderated, err := s.tastings.ModerateSuggestion(s.ctx, &tastingService.ModerateSuggestionInput{
		SessionID:    sessionID,
		SuggestionID: queued.Suggestion.ID,
		UserID:       s.hostID,
		Action:       tastingService.ActionApprove,
	})
	s.Require().NoError(err)
	s.NotNil(moderated.Item)
}

func (s *FlowTestSuite) TestStatusReadDetectsSilenceWithoutSweep() {
	sessionID := s.newActiveCollaborative()

	_, err := s.liveness.RecordHeartbeat(s.ctx, &livenessService.RecordHeartbeatInput{
		SessionID: sessionID,
		UserID:    s.hostID,
	})
	s.Require().NoError(err)

	s.clock.Advance(livenessService.DefaultUnresponsivenessTimeout + time.Second)

	// No sweep ran; the status read evaluates lazily
	status, err := s.sessions.GetSessionStatus(s.ctx, &GetSessionStatusInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.False(status.HostResponsive)
	s.Equal(models.SessionStateModerationPending, status.State)
}

func (s *FlowTestSuite) TestSilentHostStaysSuspended() {
	sessionID := s.newActiveCollaborative()

	// The host never checks in after activation
	s.clock.Advance(livenessService.DefaultUnresponsivenessTimeout + time.Second)

	verdict, err := s.liveness.Evaluate(s.ctx, &livenessService.EvaluateInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.False(verdict.Responsive)
	s.Equal(models.SessionStateModerationPending, verdict.State)

	// The suspension itself must not count as the host having been seen:
	// later evaluations keep the session suspended instead of flipping it back
	s.clock.Advance(15 * time.Second)

	verdict, err = s.liveness.Evaluate(s.ctx, &livenessService.EvaluateInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.False(verdict.Responsive)
	s.Equal(models.SessionStateModerationPending, verdict.State)

	// And the silence keeps accruing toward forced completion
	s.clock.Advance(livenessService.DefaultProlongedAbsenceTimeout)

	forced, err := s.liveness.RequestCompletion(s.ctx, &livenessService.RequestCompletionInput{
		SessionID: sessionID,
		UserID:    s.userID,
	})
	s.Require().NoError(err)
	s.Equal(models.SessionStateCompleted, forced.Session.State)
	s.Equal(models.CompletionReasonHostUnresponsive, forced.Session.CompletionReason)
}

func (s *FlowTestSuite) TestForcedCompletionAfterProlongedAbsence() {
	sessionID := s.newActiveCollaborative()

	_, err := s.liveness.RecordHeartbeat(s.ctx, &livenessService.RecordHeartbeatInput{
		SessionID: sessionID,
		UserID:    s.hostID,
	})
	s.Require().NoError(err)

	s.clock.Advance(livenessService.DefaultUnresponsivenessTimeout + time.Second)
	_, err = s.liveness.Evaluate(s.ctx, &livenessService.EvaluateInput{SessionID: sessionID})
	s.Require().NoError(err)

	// Too early to force completion
	_, err = s.liveness.RequestCompletion(s.ctx, &livenessService.RequestCompletionInput{
		SessionID: sessionID,
		UserID:    s.userID,
	})
	s.Require().ErrorIs(err, livenessService.ErrForcedCompletionDenied)

	s.clock.Advance(livenessService.DefaultProlongedAbsenceTimeout)

	forced, err := s.liveness.RequestCompletion(s.ctx, &livenessService.RequestCompletionInput{
		SessionID: sessionID,
		UserID:    s.userID,
	})
	s.Require().NoError(err)
	s.Equal(models.SessionStateCompleted, forced.Session.State)
	s.Equal(models.CompletionReasonHostUnresponsive, forced.Session.CompletionReason)

	status, err := s.sessions.GetSessionStatus(s.ctx, &GetSessionStatusInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Equal(models.SessionStateCompleted, status.State)
	s.False(status.HostResponsive)
}

func (s *FlowTestSuite) TestModeratorHandoff() {
	sessionID := s.newActiveCollaborative()

	// The slot is taken while the host holds it
	_, err := s.sessions.AssignRole(s.ctx, &AssignRoleInput{
		SessionID: sessionID,
		UserID:    s.userID,
		Role:      models.RoleHost,
	})
	s.Require().ErrorIs(err, ErrHostAlreadyAssigned)

	// The host steps down, releasing the slot
	participants, err := s.sessions.ListParticipants(s.ctx, &ListParticipantsInput{SessionID: sessionID})
	s.Require().NoError(err)

	var hostParticipantID string
	for _, p := range participants {
		if p.UserID == s.hostID {
			hostParticipantID = p.ID
		}
	}
	s.Require().NotEmpty(hostParticipantID)

	_, err = s.sessions.TransitionRole(s.ctx, &TransitionRoleInput{
		SessionID:     sessionID,
		ParticipantID: hostParticipantID,
		NewRole:       models.RoleParticipant,
	})
	s.Require().NoError(err)

	// Now the guest can take it
	assigned, err := s.sessions.AssignRole(s.ctx, &AssignRoleInput{
		SessionID: sessionID,
		UserID:    s.userID,
		Role:      models.RoleBoth,
	})
	s.Require().NoError(err)
	s.Equal(models.RoleBoth, assigned.Participant.Role)
}

func (s *FlowTestSuite) TestDemotionRaceKeepsSingleModerator() {
	sessionID := s.newActiveCollaborative()

	participants, err := s.sessions.ListParticipants(s.ctx, &ListParticipantsInput{SessionID: sessionID})
	s.Require().NoError(err)

	var hostParticipantID string
	for _, p := range participants {
		if p.UserID == s.hostID {
			hostParticipantID = p.ID
		}
	}
	s.Require().NotEmpty(hostParticipantID)

	hooked := &releaseHookRepo{Repository: s.partRepo}

	demoting, err := New(&Config{
		SessionRepo:     s.sessRepo,
		ParticipantRepo: hooked,
		TastingRepo:     s.tastRepo,
		Clock:           s.clock,
		UUIDGenerator:   uuid.New(),
		EventPublisher:  s.coord,
		Liveness:        s.liveness,
	})
	s.Require().NoError(err)

	// At the instant the slot is about to free, the demoted record must
	// already be persisted and the slot still held, so a concurrent grab
	// fails and no reader counts two moderating roles
	hooked.onRelease = func() {
		_, err := s.sessions.AssignRole(s.ctx, &AssignRoleInput{
			SessionID: sessionID,
			UserID:    s.userID,
			Role:      models.RoleBoth,
		})
		s.Require().ErrorIs(err, ErrHostAlreadyAssigned)

		mid, err := s.sessions.ListParticipants(s.ctx, &ListParticipantsInput{SessionID: sessionID})
		s.Require().NoError(err)

		moderating := 0
		for _, p := range mid {
			if p.Role.Moderates() {
				moderating++
			}
		}
		s.LessOrEqual(moderating, 1)
	}

	_, err = demoting.TransitionRole(s.ctx, &TransitionRoleInput{
		SessionID:     sessionID,
		ParticipantID: hostParticipantID,
		NewRole:       models.RoleParticipant,
	})
	s.Require().NoError(err)

	// Once the demotion finishes, the slot is free for the guest
	assigned, err := s.sessions.AssignRole(s.ctx, &AssignRoleInput{
		SessionID: sessionID,
		UserID:    s.userID,
		Role:      models.RoleBoth,
	})
	s.Require().NoError(err)
	s.Equal(models.RoleBoth, assigned.Participant.Role)
}

func (s *FlowTestSuite) receive(sub *broadcast.Subscription) *models.Event {
	select {
	case event := <-sub.C:
		return event
	case <-time.After(2 * time.Second):
		s.FailNow("timed out waiting for event")
		return nil
	}
}

func TestFlowSuite(t *testing.T) {
	suite.Run(t, new(FlowTestSuite))
}
