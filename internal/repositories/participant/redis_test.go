package participant

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/tastevin-app/tastevin/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetParticipant() {
	p := &models.Participant{
		ID:        "test-participant-id",
		SessionID: "test-session-id",
		UserID:    "test-user-id",
		Role:      models.RoleBoth,
		JoinedAt:  s.testNow,
	}

	err := s.repo.SaveParticipant(context.Background(), &SaveParticipantInput{
		Participant: p,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetParticipant(context.Background(), &GetParticipantInput{
		ParticipantID: "test-participant-id",
	})
	s.Require().NoError(err)
	s.Equal(models.RoleBoth, retrieved.Role)
	s.Equal("test-user-id", retrieved.UserID)

	// The same membership is reachable by user ID
	byUser, err := s.repo.GetParticipantByUser(context.Background(), &GetParticipantByUserInput{
		SessionID: "test-session-id",
		UserID:    "test-user-id",
	})
	s.Require().NoError(err)
	s.Equal("test-participant-id", byUser.ID)
}

func (s *RedisRepositoryTestSuite) TestGetParticipantNotFound() {
	_, err := s.repo.GetParticipant(context.Background(), &GetParticipantInput{
		ParticipantID: "missing-id",
	})
	s.Require().ErrorIs(err, ErrParticipantNotFound)

	_, err = s.repo.GetParticipantByUser(context.Background(), &GetParticipantByUserInput{
		SessionID: "test-session-id",
		UserID:    "missing-user",
	})
	s.Require().ErrorIs(err, ErrParticipantNotFound)
}

func (s *RedisRepositoryTestSuite) TestListParticipantsOrderedByJoinTime() {
	later := &models.Participant{
		ID:        "participant-b",
		SessionID: "test-session-id",
		UserID:    "user-b",
		Role:      models.RoleParticipant,
		JoinedAt:  s.testNow.Add(time.Minute),
	}
	earlier := &models.Participant{
		ID:        "participant-a",
		SessionID: "test-session-id",
		UserID:    "user-a",
		Role:      models.RoleBoth,
		JoinedAt:  s.testNow,
	}

	// Save out of order; listing must sort by join time
	for _, p := range []*models.Participant{later, earlier} {
		err := s.repo.SaveParticipant(context.Background(), &SaveParticipantInput{
			Participant: p,
		})
		s.Require().NoError(err)
	}

	participants, err := s.repo.ListParticipants(context.Background(), &ListParticipantsInput{
		SessionID: "test-session-id",
	})
	s.Require().NoError(err)
	s.Require().Len(participants, 2)
	s.Equal("participant-a", participants[0].ID)
	s.Equal("participant-b", participants[1].ID)
}

func (s *RedisRepositoryTestSuite) TestClaimModeratorSingleHolder() {
	ctx := context.Background()

	err := s.repo.ClaimModerator(ctx, &ClaimModeratorInput{
		SessionID: "test-session-id",
		UserID:    "user-a",
	})
	s.Require().NoError(err)

	// Re-claiming by the same user is idempotent
	err = s.repo.ClaimModerator(ctx, &ClaimModeratorInput{
		SessionID: "test-session-id",
		UserID:    "user-a",
	})
	s.Require().NoError(err)

	// A different user cannot take the slot
	err = s.repo.ClaimModerator(ctx, &ClaimModeratorInput{
		SessionID: "test-session-id",
		UserID:    "user-b",
	})
	s.Require().ErrorIs(err, ErrModeratorTaken)
}

func (s *RedisRepositoryTestSuite) TestReleaseModeratorFreesSlot() {
	ctx := context.Background()

	err := s.repo.ClaimModerator(ctx, &ClaimModeratorInput{
		SessionID: "test-session-id",
		UserID:    "user-a",
	})
	s.Require().NoError(err)

	// Release by a non-holder is a no-op
	err = s.repo.ReleaseModerator(ctx, &ReleaseModeratorInput{
		SessionID: "test-session-id",
		UserID:    "user-b",
	})
	s.Require().NoError(err)

	err = s.repo.ClaimModerator(ctx, &ClaimModeratorInput{
		SessionID: "test-session-id",
		UserID:    "user-b",
	})
	s.Require().ErrorIs(err, ErrModeratorTaken)

	// Release by the holder frees the slot for someone else
	err = s.repo.ReleaseModerator(ctx, &ReleaseModeratorInput{
		SessionID: "test-session-id",
		UserID:    "user-a",
	})
	s.Require().NoError(err)

	err = s.repo.ClaimModerator(ctx, &ClaimModeratorInput{
		SessionID: "test-session-id",
		UserID:    "user-b",
	})
	s.Require().NoError(err)
}
