package repository

import (
	"context"

	"cinegraph/internal/domain/entity"
	domainrepo "cinegraph/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockGenreRepository is a mock type for the GenreRepository type
type MockGenreRepository struct {
	mock.Mock
}

var _ domainrepo.GenreRepository = (*MockGenreRepository)(nil)

// NewMockGenreRepository creates a new instance of MockGenreRepository. It also registers a cleanup function to assert the mocks expectations.
func NewMockGenreRepository(t testingT) *MockGenreRepository {
	m := &MockGenreRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockGenreRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockGenreRepository) EXPECT() *MockGenreRepository_Expecter {
	return &MockGenreRepository_Expecter{mock: &_m.Mock}
}

func (_m *MockGenreRepository) FindByID(ctx context.Context, id int64) (*entity.Genre, error) {
	ret := _m.Called(ctx, id)
	genre, _ := ret.Get(0).(*entity.Genre)

	return genre, ret.Error(1)
}

func (_e *MockGenreRepository_Expecter) FindByID(ctx, id any) *mock.Call {
	return _e.mock.On("FindByID", ctx, id)
}

func (_m *MockGenreRepository) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	ret := _m.Called(ctx)
	genres, _ := ret.Get(0).([]*entity.Genre)

	return genres, ret.Error(1)
}

func (_e *MockGenreRepository_Expecter) FindAll(ctx any) *mock.Call {
	return _e.mock.On("FindAll", ctx)
}

// MockMpaRepository is a mock type for the MpaRepository type
type MockMpaRepository struct {
	mock.Mock
}

var _ domainrepo.MpaRepository = (*MockMpaRepository)(nil)

// NewMockMpaRepository creates a new instance of MockMpaRepository. It also registers a cleanup function to assert the mocks expectations.
func NewMockMpaRepository(t testingT) *MockMpaRepository {
	m := &MockMpaRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockMpaRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockMpaRepository) EXPECT() *MockMpaRepository_Expecter {
	return &MockMpaRepository_Expecter{mock: &_m.Mock}
}

func (_m *MockMpaRepository) FindByID(ctx context.Context, id int64) (*entity.MpaRating, error) {
	ret := _m.Called(ctx, id)
	rating, _ := ret.Get(0).(*entity.MpaRating)

	return rating, ret.Error(1)
}

func (_e *MockMpaRepository_Expecter) FindByID(ctx, id any) *mock.Call {
	return _e.mock.On("FindByID", ctx, id)
}

func (_m *MockMpaRepository) FindAll(ctx context.Context) ([]*entity.MpaRating, error) {
	ret := _m.Called(ctx)
	ratings, _ := ret.Get(0).([]*entity.MpaRating)

	return ratings, ret.Error(1)
}

func (_e *MockMpaRepository_Expecter) FindAll(ctx any) *mock.Call {
	return _e.mock.On("FindAll", ctx)
}
