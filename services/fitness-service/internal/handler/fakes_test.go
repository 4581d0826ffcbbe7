package handler

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/model"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/repository"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/usecase"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/provider"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[bson.ObjectID]model.User
	reads int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[bson.ObjectID]model.User{}}
}

func (m *memUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
		}
	}

	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now()
	m.users[user.ID] = *user

	return user, nil
}

func (m *memUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++

	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	user, ok := m.users[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return &user, nil
}

func (m *memUserRepo) GetUserWithoutCredentials(ctx context.Context, id string) (*model.User, error) {
	user, err := m.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (m *memUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			return &user, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (m *memUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	user, ok := m.users[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.DisplayName != nil {
		user.DisplayName = *params.DisplayName
	}
	if params.Email != nil {
		for otherID, other := range m.users {
			if otherID != objectID && other.Email == *params.Email {
				return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
			}
		}
		user.Email = *params.Email
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	if params.Profile != nil {
		user.Profile = params.Profile
	}
	if params.LastLoginAt != nil {
		user.LastLoginAt = params.LastLoginAt
	}
	m.users[objectID] = user

	return &user, nil
}

func (m *memUserRepo) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	objectID, _ := bson.ObjectIDFromHex(id)
	delete(m.users, objectID)
}

type memTokenRepo struct {
	mu     sync.Mutex
	tokens []model.PasswordResetToken
}

func (m *memTokenRepo) UpsertByUser(
	_ context.Context,
	userID, token string,
	expiresAt time.Time,
) (*model.PasswordResetToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ownerID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	for i := range m.tokens {
		if m.tokens[i].UserID == ownerID {
			m.tokens[i].Token = token
			m.tokens[i].ExpiresAt = expiresAt
			t := m.tokens[i]
			return &t, nil
		}
	}

	t := model.PasswordResetToken{
		ID:        bson.NewObjectID(),
		UserID:    ownerID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	m.tokens = append(m.tokens, t)

	return &t, nil
}

func (m *memTokenRepo) GetActiveByToken(_ context.Context, token string) (*model.PasswordResetToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.tokens {
		if t.Token == token && t.Active(time.Now()) {
			return &t, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (m *memTokenRepo) ListActive(_ context.Context) ([]*model.PasswordResetToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var active []*model.PasswordResetToken
	for _, t := range m.tokens {
		if t.Active(time.Now()) {
			active = append(active, &t)
		}
	}

	return active, nil
}

func (m *memTokenRepo) DeleteToken(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, t := range m.tokens {
		if t.ID.Hex() == id {
			m.tokens = append(m.tokens[:i], m.tokens[i+1:]...)
			return nil
		}
	}

	return nil
}

type recordingMailer struct {
	mu     sync.Mutex
	bodies []string
}

func (m *recordingMailer) SendHTML(_ []string, _ string, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bodies = append(m.bodies, htmlBody)
	return nil
}

type disabledGoogle struct{}

func (disabledGoogle) Enabled() bool { return false }

func (disabledGoogle) VerifyIDToken(context.Context, string) (*provider.GoogleProfile, error) {
	return nil, provider.ErrGoogleNotConfigured
}

// stubNutritionGoalUsecase answers every call with err, or with goal.
type stubNutritionGoalUsecase struct {
	goal *model.NutritionGoal
	err  error
}

func (s *stubNutritionGoalUsecase) CreateNutritionGoal(
	context.Context,
	string,
	usecase.CreateNutritionGoalParams,
) (*model.NutritionGoal, error) {
	return s.goal, s.err
}

func (s *stubNutritionGoalUsecase) ListNutritionGoals(context.Context, string) ([]*model.NutritionGoal, error) {
	if s.err != nil {
		return nil, s.err
	}
	return nil, nil
}

func (s *stubNutritionGoalUsecase) GetNutritionGoal(context.Context, string, string) (*model.NutritionGoal, error) {
	return s.goal, s.err
}

func (s *stubNutritionGoalUsecase) UpdateNutritionGoal(
	context.Context,
	string, string,
	usecase.UpdateNutritionGoalParams,
) (*model.NutritionGoal, error) {
	return s.goal, s.err
}

func (s *stubNutritionGoalUsecase) DeleteNutritionGoal(context.Context, string, string) error {
	return s.err
}
