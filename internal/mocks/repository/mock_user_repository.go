package repository

import (
	"context"

	"cinegraph/internal/domain/entity"
	domainrepo "cinegraph/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock type for the UserRepository type
type MockUserRepository struct {
	mock.Mock
}

var _ domainrepo.UserRepository = (*MockUserRepository)(nil)

// NewMockUserRepository creates a new instance of MockUserRepository. It also registers a cleanup function to assert the mocks expectations.
func NewMockUserRepository(t testingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockUserRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockUserRepository) EXPECT() *MockUserRepository_Expecter {
	return &MockUserRepository_Expecter{mock: &_m.Mock}
}

func (_m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return _m.Called(ctx, user).Error(0)
}

func (_e *MockUserRepository_Expecter) Create(ctx, user any) *mock.Call {
	return _e.mock.On("Create", ctx, user)
}

func (_m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return _m.Called(ctx, user).Error(0)
}

func (_e *MockUserRepository_Expecter) Update(ctx, user any) *mock.Call {
	return _e.mock.On("Update", ctx, user)
}

func (_m *MockUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	ret := _m.Called(ctx, id)
	user, _ := ret.Get(0).(*entity.User)

	return user, ret.Error(1)
}

func (_e *MockUserRepository_Expecter) FindByID(ctx, id any) *mock.Call {
	return _e.mock.On("FindByID", ctx, id)
}

func (_m *MockUserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	ret := _m.Called(ctx)
	users, _ := ret.Get(0).([]*entity.User)

	return users, ret.Error(1)
}

func (_e *MockUserRepository_Expecter) FindAll(ctx any) *mock.Call {
	return _e.mock.On("FindAll", ctx)
}

func (_m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	return _m.Called(ctx, id).Error(0)
}

func (_e *MockUserRepository_Expecter) Delete(ctx, id any) *mock.Call {
	return _e.mock.On("Delete", ctx, id)
}

// MockFriendshipRepository is a mock type for the FriendshipRepository type
type MockFriendshipRepository struct {
	mock.Mock
}

var _ domainrepo.FriendshipRepository = (*MockFriendshipRepository)(nil)

// NewMockFriendshipRepository creates a new instance of MockFriendshipRepository. It also registers a cleanup function to assert the mocks expectations.
func NewMockFriendshipRepository(t testingT) *MockFriendshipRepository {
	m := &MockFriendshipRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockFriendshipRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockFriendshipRepository) EXPECT() *MockFriendshipRepository_Expecter {
	return &MockFriendshipRepository_Expecter{mock: &_m.Mock}
}

func (_m *MockFriendshipRepository) AddFriend(ctx context.Context, userID, friendID int64) error {
	return _m.Called(ctx, userID, friendID).Error(0)
}

func (_e *MockFriendshipRepository_Expecter) AddFriend(ctx, userID, friendID any) *mock.Call {
	return _e.mock.On("AddFriend", ctx, userID, friendID)
}

func (_m *MockFriendshipRepository) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	return _m.Called(ctx, userID, friendID).Error(0)
}

func (_e *MockFriendshipRepository_Expecter) RemoveFriend(ctx, userID, friendID any) *mock.Call {
	return _e.mock.On("RemoveFriend", ctx, userID, friendID)
}

func (_m *MockFriendshipRepository) FindFriends(ctx context.Context, userID int64) ([]*entity.User, error) {
	ret := _m.Called(ctx, userID)
	users, _ := ret.Get(0).([]*entity.User)

	return users, ret.Error(1)
}

func (_e *MockFriendshipRepository_Expecter) FindFriends(ctx, userID any) *mock.Call {
	return _e.mock.On("FindFriends", ctx, userID)
}

func (_m *MockFriendshipRepository) FindCommonFriends(ctx context.Context, userID, otherID int64) ([]*entity.User, error) {
	ret := _m.Called(ctx, userID, otherID)
	users, _ := ret.Get(0).([]*entity.User)

	return users, ret.Error(1)
}

func (_e *MockFriendshipRepository_Expecter) FindCommonFriends(ctx, userID, otherID any) *mock.Call {
	return _e.mock.On("FindCommonFriends", ctx, userID, otherID)
}
