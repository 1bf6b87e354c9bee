package mocks

import (
	"context"

	"nutridiary/internal/models"

	"github.com/stretchr/testify/mock"
)

// Shared MockDiaryStore implementing diary.Store
type MockDiaryStore struct {
	mock.Mock
}

func (m *MockDiaryStore) LoadDiaryDay(ctx context.Context, userID uint, date string) (*models.FoodDiaryDay, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodDiaryDay), args.Error(1)
}

func (m *MockDiaryStore) CreateDiaryDay(ctx context.Context, userID uint, date string, seed models.DailyGoals) (*models.FoodDiaryDay, error) {
	args := m.Called(ctx, userID, date, seed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodDiaryDay), args.Error(1)
}

func (m *MockDiaryStore) SaveDiaryDay(ctx context.Context, userID uint, day *models.FoodDiaryDay) (*models.SaveResult, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SaveResult), args.Error(1)
}

// Shared MockFoodRepository
type MockFoodRepository struct {
	mock.Mock
}

func (m *MockFoodRepository) LoadReferenceFoods() ([]models.Food, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Food), args.Error(1)
}

func (m *MockFoodRepository) FindByID(id uint) (*models.Food, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Food), args.Error(1)
}

func (m *MockFoodRepository) FindCustomByUserID(userID uint) ([]models.Food, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Food), args.Error(1)
}

func (m *MockFoodRepository) CreateCustomFood(food *models.Food) error {
	args := m.Called(food)
	return args.Error(0)
}

func (m *MockFoodRepository) Search(userID uint, query string) ([]models.Food, error) {
	args := m.Called(userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Food), args.Error(1)
}

func (m *MockFoodRepository) ExistingIDs(ids []uint) (map[uint]bool, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]bool), args.Error(1)
}

// Shared MockGoalsRepository
type MockGoalsRepository struct {
	mock.Mock
}

func (m *MockGoalsRepository) LoadGoals(ctx context.Context, userID uint) (models.DailyGoals, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.DailyGoals), args.Error(1)
}

func (m *MockGoalsRepository) SaveGoals(ctx context.Context, userID uint, goals models.DailyGoals) error {
	args := m.Called(ctx, userID, goals)
	return args.Error(0)
}
