// Package repository provides testify mocks of the domain repository interfaces.
package repository

import (
	"context"

	"cinegraph/internal/domain/entity"
	domainrepo "cinegraph/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockFilmRepository is a mock type for the FilmRepository type
type MockFilmRepository struct {
	mock.Mock
}

var _ domainrepo.FilmRepository = (*MockFilmRepository)(nil)

// NewMockFilmRepository creates a new instance of MockFilmRepository. It also registers a cleanup function to assert the mocks expectations.
func NewMockFilmRepository(t testingT) *MockFilmRepository {
	m := &MockFilmRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockFilmRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockFilmRepository) EXPECT() *MockFilmRepository_Expecter {
	return &MockFilmRepository_Expecter{mock: &_m.Mock}
}

func (_m *MockFilmRepository) Create(ctx context.Context, film *entity.Film) error {
	return _m.Called(ctx, film).Error(0)
}

func (_e *MockFilmRepository_Expecter) Create(ctx, film any) *mock.Call {
	return _e.mock.On("Create", ctx, film)
}

func (_m *MockFilmRepository) Update(ctx context.Context, film *entity.Film) error {
	return _m.Called(ctx, film).Error(0)
}

func (_e *MockFilmRepository_Expecter) Update(ctx, film any) *mock.Call {
	return _e.mock.On("Update", ctx, film)
}

func (_m *MockFilmRepository) FindByID(ctx context.Context, id int64) (*entity.Film, error) {
	ret := _m.Called(ctx, id)
	film, _ := ret.Get(0).(*entity.Film)

	return film, ret.Error(1)
}

func (_e *MockFilmRepository_Expecter) FindByID(ctx, id any) *mock.Call {
	return _e.mock.On("FindByID", ctx, id)
}

func (_m *MockFilmRepository) FindAll(ctx context.Context) ([]*entity.Film, error) {
	ret := _m.Called(ctx)
	films, _ := ret.Get(0).([]*entity.Film)

	return films, ret.Error(1)
}

func (_e *MockFilmRepository_Expecter) FindAll(ctx any) *mock.Call {
	return _e.mock.On("FindAll", ctx)
}

func (_m *MockFilmRepository) Delete(ctx context.Context, id int64) error {
	return _m.Called(ctx, id).Error(0)
}

func (_e *MockFilmRepository_Expecter) Delete(ctx, id any) *mock.Call {
	return _e.mock.On("Delete", ctx, id)
}

func (_m *MockFilmRepository) AddLike(ctx context.Context, filmID, userID int64) error {
	return _m.Called(ctx, filmID, userID).Error(0)
}

func (_e *MockFilmRepository_Expecter) AddLike(ctx, filmID, userID any) *mock.Call {
	return _e.mock.On("AddLike", ctx, filmID, userID)
}

func (_m *MockFilmRepository) RemoveLike(ctx context.Context, filmID, userID int64) error {
	return _m.Called(ctx, filmID, userID).Error(0)
}

func (_e *MockFilmRepository_Expecter) RemoveLike(ctx, filmID, userID any) *mock.Call {
	return _e.mock.On("RemoveLike", ctx, filmID, userID)
}

func (_m *MockFilmRepository) FindLikes(ctx context.Context, filmID int64) ([]int64, error) {
	ret := _m.Called(ctx, filmID)
	userIDs, _ := ret.Get(0).([]int64)

	return userIDs, ret.Error(1)
}

func (_e *MockFilmRepository_Expecter) FindLikes(ctx, filmID any) *mock.Call {
	return _e.mock.On("FindLikes", ctx, filmID)
}

func (_m *MockFilmRepository) CountLikes(ctx context.Context, filmIDs []int64) (map[int64]int, error) {
	ret := _m.Called(ctx, filmIDs)
	counts, _ := ret.Get(0).(map[int64]int)

	return counts, ret.Error(1)
}

func (_e *MockFilmRepository_Expecter) CountLikes(ctx, filmIDs any) *mock.Call {
	return _e.mock.On("CountLikes", ctx, filmIDs)
}

func (_m *MockFilmRepository) FindPopular(ctx context.Context, count int) ([]*entity.Film, error) {
	ret := _m.Called(ctx, count)
	films, _ := ret.Get(0).([]*entity.Film)

	return films, ret.Error(1)
}

func (_e *MockFilmRepository_Expecter) FindPopular(ctx, count any) *mock.Call {
	return _e.mock.On("FindPopular", ctx, count)
}
