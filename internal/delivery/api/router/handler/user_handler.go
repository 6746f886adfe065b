package handler

import (
	"log/slog"
	"net/http"

	"cinegraph/internal/delivery/api/response"
	"cinegraph/internal/domain/entity"
	"cinegraph/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves users and the friend graph.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// UserRequest is the body of POST and PUT /users. ID is ignored on create.
type UserRequest struct {
	ID       int64  `json:"id" validate:"gte=0"`
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"login"`
	Name     string `json:"name"`
	Birthday string `json:"birthday" validate:"required,notfuture"`
}

// UserResponse is the wire form of a user.
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
}

func (req *UserRequest) toEntity() (*entity.User, error) {
	birthday, err := parseDate(req.Birthday)
	if err != nil {
		return nil, err
	}

	return &entity.User{
		ID:       req.ID,
		Email:    req.Email,
		Login:    req.Login,
		Name:     req.Name,
		Birthday: birthday,
	}, nil
}

func newUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: formatDate(u.Birthday),
	}
}

func newUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}

	return out
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req UserRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	user, err := req.toEntity()
	if err != nil {
		return response.BadRequest(c, "INVALID_DATE", "birthday must use YYYY-MM-DD")
	}

	created, err := h.userUC.CreateUser(c.Request().Context(), user)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newUserResponse(created))
}

// UpdateUser handles PUT /users
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req UserRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	if req.ID == 0 {
		return response.BadRequest(c, "INVALID_ID", "id is required for update")
	}

	user, err := req.toEntity()
	if err != nil {
		return response.BadRequest(c, "INVALID_DATE", "birthday must use YYYY-MM-DD")
	}

	updated, err := h.userUC.UpdateUser(c.Request().Context(), user)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(updated))
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userUC.ListUsers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponses(users))
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", err.Error())
	}

	user, err := h.userUC.GetUser(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user))
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", err.Error())
	}

	if err := h.userUC.DeleteUser(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return messageOK(c, "User deleted successfully")
}

// AddFriend handles PUT /users/:id/friends/:friendId
func (h *UserHandler) AddFriend(c echo.Context) error {
	userID, friendID, err := friendPair(c, "friendId")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", err.Error())
	}

	if err := h.userUC.AddFriend(c.Request().Context(), userID, friendID); err != nil {
		return response.HandleAppError(c, err)
	}

	return messageOK(c, "Friend added successfully")
}

// RemoveFriend handles DELETE /users/:id/friends/:friendId
func (h *UserHandler) RemoveFriend(c echo.Context) error {
	userID, friendID, err := friendPair(c, "friendId")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", err.Error())
	}

	if err := h.userUC.RemoveFriend(c.Request().Context(), userID, friendID); err != nil {
		return response.HandleAppError(c, err)
	}

	return messageOK(c, "Friend removed successfully")
}

// ListFriends handles GET /users/:id/friends
func (h *UserHandler) ListFriends(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", err.Error())
	}

	friends, err := h.userUC.ListFriends(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponses(friends))
}

// ListCommonFriends handles GET /users/:id/friends/common/:otherId
func (h *UserHandler) ListCommonFriends(c echo.Context) error {
	userID, otherID, err := friendPair(c, "otherId")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", err.Error())
	}

	common, err := h.userUC.ListCommonFriends(c.Request().Context(), userID, otherID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponses(common))
}

func friendPair(c echo.Context, other string) (int64, int64, error) {
	userID, err := pathID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	otherID, err := pathID(c, other)
	if err != nil {
		return 0, 0, err
	}

	return userID, otherID, nil
}
