package services

import (
	"context"
	"sync"
	"testing"
	"time"

	appauth "github.com/edupulse/edupulse/internal/app/auth"
	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/edupulse/edupulse/internal/app/repositories"
	"github.com/edupulse/edupulse/internal/pkg/auth"
	"github.com/edupulse/edupulse/internal/pkg/docstore"
	"github.com/edupulse/edupulse/internal/pkg/metrics"
	"github.com/edupulse/edupulse/internal/pkg/websocket"
	"github.com/edupulse/edupulse/internal/seed"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.Local)

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []websocket.Message
}

func (b *recordingBroadcaster) Broadcast(_ context.Context, message *websocket.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, *message)
	return nil
}

func (b *recordingBroadcaster) all() []websocket.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]websocket.Message(nil), b.messages...)
}

type testEnv struct {
	repos *repositories.Repositories
	svc   *Services
	jwt   *auth.JWTService
	bus   *recordingBroadcaster
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithHasher(t, auth.NewPasswordHasher(false))
}

func newTestEnvWithHasher(t *testing.T, hasher *auth.PasswordHasher) *testEnv {
	t.Helper()
	backend, err := docstore.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	clock := func() time.Time { return testNow }
	repos := repositories.NewRepositories(backend, zerolog.Nop(), clock)
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "edupulse-test",
	})
	bus := &recordingBroadcaster{}

	svc := NewServices(repos, Options{
		JWT:         jwtService,
		Passwords:   hasher,
		Broadcaster: bus,
		Metrics:     metrics.NewMetrics(),
		Mentorship: MentorshipSettings{
			MeetingBaseURL:    "https://meet.test",
			DefaultHourlyRate: 50,
		},
		Now:    clock,
		Logger: zerolog.Nop(),
	})
	return &testEnv{repos: repos, svc: svc, jwt: jwtService, bus: bus}
}

func studentIdentity() appauth.Identity {
	return appauth.Identity{Username: seed.StudentUsername, Name: "John Student", Role: models.RoleStudent, StudentID: seed.StudentID}
}

func mentorIdentity() appauth.Identity {
	return appauth.Identity{Username: seed.MentorUsername, Name: "Dr. Jane Mentor", Role: models.RoleMentor, MentorID: seed.MentorID}
}

func adminIdentity() appauth.Identity {
	return appauth.Identity{Username: seed.AdminUsername, Name: "Admin User", Role: models.RoleAdmin}
}

func otherStudentIdentity() appauth.Identity {
	return appauth.Identity{Username: "other", Name: "Other Student", Role: models.RoleStudent, StudentID: "S99999"}
}

func otherMentorIdentity() appauth.Identity {
	return appauth.Identity{Username: "other-mentor", Name: "Other Mentor", Role: models.RoleMentor, MentorID: "M99999"}
}

// putSession stores a session directly, bypassing the workflow
func (e *testEnv) putSession(t *testing.T, session models.MentorshipSession) {
	t.Helper()
	if session.ChatRoom == "" {
		session.ChatRoom = models.ChatRoomFor(session.SessionID)
	}
	require.NoError(t, e.repos.SessionRepository.Create(context.Background(), &session))
}
