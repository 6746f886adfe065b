package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cinegraph/config"
	"cinegraph/internal/delivery/api/response"
	"cinegraph/internal/delivery/api/router"
	"cinegraph/internal/delivery/api/router/handler"
	deliverycontext "cinegraph/internal/delivery/context"
	"cinegraph/internal/infra/persistence/memory"
	"cinegraph/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Data  json.RawMessage     `json:"data"`
	Error *response.ErrorInfo `json:"error"`
	Meta  *response.MetaInfo  `json:"meta"`
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.Catalog.DefaultPopularCount = 10

	logger := slog.New(slog.DiscardHandler)
	repos := memory.NewStore().Repositories()

	userUC := impl.NewUserService(impl.UserServiceParams{
		UserRepo:       repos.Users,
		FriendshipRepo: repos.Friendships,
		Logger:         logger,
	})
	filmUC := impl.NewFilmService(impl.FilmServiceParams{
		FilmRepo:  repos.Films,
		GenreRepo: repos.Genres,
		MpaRepo:   repos.Mpa,
		Config:    cfg,
		Logger:    logger,
	})

	return NewEcho(cfg, logger, router.RouterParams{
		UserHandler:    handler.NewUserHandler(handler.UserHandlerParams{UserUC: userUC, Logger: logger}),
		FilmHandler:    handler.NewFilmHandler(handler.FilmHandlerParams{FilmUC: filmUC, Config: cfg, Logger: logger}),
		CatalogHandler: handler.NewCatalogHandler(impl.NewCatalogService(repos.Genres, repos.Mpa)),
	})
}

func do(t *testing.T, e *echo.Echo, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return rec.Code, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))

	return v
}

func userBody(n string) map[string]any {
	return map[string]any{
		"email":    n + "@example.com",
		"login":    n,
		"birthday": "1990-05-17",
	}
}

func filmBody(name string, mpa int64, genres ...int64) map[string]any {
	refs := make([]map[string]any, 0, len(genres))
	for _, g := range genres {
		refs = append(refs, map[string]any{"id": g})
	}

	return map[string]any{
		"name":        name,
		"description": "a film",
		"releaseDate": "1999-03-31",
		"duration":    136,
		"mpa":         map[string]any{"id": mpa},
		"genres":      refs,
	}
}

func TestHealth(t *testing.T) {
	e := newTestServer(t)

	code, env := do(t, e, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, env.Meta.RequestID)
}

func TestUsersAPI(t *testing.T) {
	e := newTestServer(t)

	code, env := do(t, e, http.MethodPost, "/users", userBody("neo"))
	require.Equal(t, http.StatusCreated, code)
	neo := decode[handler.UserResponse](t, env)
	assert.Equal(t, "neo", neo.Name, "empty name falls back to login")
	assert.Equal(t, "1990-05-17", neo.Birthday)

	t.Run("Get", func(t *testing.T) {
		code, env := do(t, e, http.MethodGet, "/users/1", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, neo, decode[handler.UserResponse](t, env))
	})

	t.Run("NotFound", func(t *testing.T) {
		code, env := do(t, e, http.MethodGet, "/users/999", nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "USER_NOT_FOUND", env.Error.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		code, env := do(t, e, http.MethodGet, "/users/abc", nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "INVALID_ID", env.Error.Code)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		body := userBody("other")
		body["email"] = "neo@example.com"
		code, env := do(t, e, http.MethodPost, "/users", body)
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "DUPLICATE_EMAIL", env.Error.Code)
		assert.Equal(t, "neo@example.com", env.Error.Details)
	})

	t.Run("Validation", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(b map[string]any)
			want   string
		}{
			{"BadEmail", func(b map[string]any) { b["email"] = "not-an-email" }, "email must be a valid email address"},
			{"LoginWithSpace", func(b map[string]any) { b["login"] = "mr anderson" }, "login must not be empty or contain whitespace"},
			{"FutureBirthday", func(b map[string]any) { b["birthday"] = "2999-01-01" }, "birthday must not be in the future"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				body := userBody("trinity")
				tt.mutate(body)
				code, env := do(t, e, http.MethodPost, "/users", body)
				assert.Equal(t, http.StatusBadRequest, code)
				assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
				assert.Contains(t, env.Error.Details, tt.want)
			})
		}
	})

	t.Run("MalformedBody", func(t *testing.T) {
		code, env := do(t, e, http.MethodPost, "/users", `{"email":`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("Update", func(t *testing.T) {
		body := userBody("neo")
		body["name"] = "Thomas Anderson"
		code, env := do(t, e, http.MethodPut, "/users", body)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "INVALID_ID", env.Error.Code)

		body["id"] = neo.ID
		code, env = do(t, e, http.MethodPut, "/users", body)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Thomas Anderson", decode[handler.UserResponse](t, env).Name)

		body["id"] = 999
		code, _ = do(t, e, http.MethodPut, "/users", body)
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestFriendsAPI(t *testing.T) {
	e := newTestServer(t)
	for _, n := range []string{"a", "b", "c"} {
		code, _ := do(t, e, http.MethodPost, "/users", userBody(n))
		require.Equal(t, http.StatusCreated, code)
	}

	for _, path := range []string{"/users/1/friends/3", "/users/2/friends/3", "/users/1/friends/2"} {
		code, _ := do(t, e, http.MethodPut, path, nil)
		require.Equal(t, http.StatusOK, code, path)
	}

	code, env := do(t, e, http.MethodGet, "/users/1/friends", nil)
	require.Equal(t, http.StatusOK, code)
	friends := decode[[]handler.UserResponse](t, env)
	require.Len(t, friends, 2)
	assert.Equal(t, int64(2), friends[0].ID)
	assert.Equal(t, int64(3), friends[1].ID)

	code, env = do(t, e, http.MethodGet, "/users/3/friends", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]handler.UserResponse](t, env), "edges are directed")

	code, env = do(t, e, http.MethodGet, "/users/1/friends/common/2", nil)
	require.Equal(t, http.StatusOK, code)
	common := decode[[]handler.UserResponse](t, env)
	require.Len(t, common, 1)
	assert.Equal(t, int64(3), common[0].ID)

	code, env = do(t, e, http.MethodPut, "/users/1/friends/1", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "SELF_REFERENCE", env.Error.Code)

	code, env = do(t, e, http.MethodPut, "/users/1/friends/42", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "USER_NOT_FOUND", env.Error.Code)

	code, _ = do(t, e, http.MethodDelete, "/users/1/friends/3", nil)
	require.Equal(t, http.StatusOK, code)
	code, env = do(t, e, http.MethodGet, "/users/1/friends/common/2", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]handler.UserResponse](t, env))

	code, _ = do(t, e, http.MethodDelete, "/users/2", nil)
	require.Equal(t, http.StatusOK, code)
	code, env = do(t, e, http.MethodGet, "/users/1/friends", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]handler.UserResponse](t, env), "deleting a user drops edges pointing at it")
}

func TestFilmsAPI(t *testing.T) {
	e := newTestServer(t)
	for _, n := range []string{"a", "b"} {
		code, _ := do(t, e, http.MethodPost, "/users", userBody(n))
		require.Equal(t, http.StatusCreated, code)
	}

	code, env := do(t, e, http.MethodPost, "/films", filmBody("The Matrix", 4, 6, 4, 6))
	require.Equal(t, http.StatusCreated, code)
	matrix := decode[handler.FilmResponse](t, env)
	assert.Equal(t, handler.Ref{ID: 4, Name: "R"}, matrix.Mpa)
	assert.Equal(t, []handler.Ref{{ID: 4, Name: "Thriller"}, {ID: 6, Name: "Action"}}, matrix.Genres)
	assert.Equal(t, "1999-03-31", matrix.ReleaseDate)

	code, env = do(t, e, http.MethodPost, "/films", filmBody("Toy Story", 1, 3))
	require.Equal(t, http.StatusCreated, code)
	toy := decode[handler.FilmResponse](t, env)

	t.Run("Validation", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(b map[string]any)
			want   string
		}{
			{"BlankName", func(b map[string]any) { b["name"] = "   " }, "name is required"},
			{"LongDescription", func(b map[string]any) { b["description"] = strings.Repeat("я", 201) }, "description must be at most 200"},
			{"BeforeCinema", func(b map[string]any) { b["releaseDate"] = "1895-12-27" }, "releaseDate must not be before 1895-12-28"},
			{"ZeroDuration", func(b map[string]any) { b["duration"] = 0 }, "duration must be at least 1"},
			{"MissingMpa", func(b map[string]any) { delete(b, "mpa") }, "mpa is required"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				body := filmBody("x", 1)
				tt.mutate(body)
				code, env := do(t, e, http.MethodPost, "/films", body)
				assert.Equal(t, http.StatusBadRequest, code)
				assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
				assert.Contains(t, env.Error.Details, tt.want)
			})
		}
	})

	t.Run("DescriptionAtLimit", func(t *testing.T) {
		body := filmBody("Long", 1)
		body["description"] = strings.Repeat("я", 200)
		code, _ := do(t, e, http.MethodPost, "/films", body)
		assert.Equal(t, http.StatusCreated, code)
	})

	t.Run("UnknownReferences", func(t *testing.T) {
		code, env := do(t, e, http.MethodPost, "/films", filmBody("x", 9))
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "MPA_NOT_FOUND", env.Error.Code)

		code, env = do(t, e, http.MethodPost, "/films", filmBody("x", 1, 1, 99))
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "GENRE_NOT_FOUND", env.Error.Code)
	})

	t.Run("LikesAndPopular", func(t *testing.T) {
		for _, path := range []string{"/films/2/like/1", "/films/2/like/2", "/films/2/like/2", "/films/1/like/1"} {
			code, _ := do(t, e, http.MethodPut, path, nil)
			require.Equal(t, http.StatusOK, code, path)
		}

		code, env := do(t, e, http.MethodGet, "/films/popular?count=2", nil)
		require.Equal(t, http.StatusOK, code)
		popular := decode[[]handler.FilmResponse](t, env)
		require.Len(t, popular, 2)
		assert.Equal(t, toy.ID, popular[0].ID)
		assert.Equal(t, 2, popular[0].Likes)
		assert.Equal(t, matrix.ID, popular[1].ID)

		code, env = do(t, e, http.MethodGet, "/films/popular", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Len(t, decode[[]handler.FilmResponse](t, env), 3, "default count covers every film")

		code, env = do(t, e, http.MethodGet, "/films/popular?count=0", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Empty(t, decode[[]handler.FilmResponse](t, env))

		code, env = do(t, e, http.MethodGet, "/films/popular?count=many", nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "INVALID_COUNT", env.Error.Code)

		code, env = do(t, e, http.MethodPut, "/films/1/like/77", nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "USER_NOT_FOUND", env.Error.Code)

		code, _ = do(t, e, http.MethodDelete, "/films/2/like/2", nil)
		require.Equal(t, http.StatusOK, code)
		code, env = do(t, e, http.MethodGet, "/films/2", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 1, decode[handler.FilmResponse](t, env).Likes)
	})

	t.Run("UpdateAndDelete", func(t *testing.T) {
		body := filmBody("The Matrix Reloaded", 4)
		body["id"] = matrix.ID
		code, env := do(t, e, http.MethodPut, "/films", body)
		require.Equal(t, http.StatusOK, code)
		updated := decode[handler.FilmResponse](t, env)
		assert.Equal(t, "The Matrix Reloaded", updated.Name)
		assert.Empty(t, updated.Genres)

		code, _ = do(t, e, http.MethodDelete, "/films/1", nil)
		require.Equal(t, http.StatusOK, code)
		code, env = do(t, e, http.MethodGet, "/films/1", nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "FILM_NOT_FOUND", env.Error.Code)
	})
}

func TestCatalogAPI(t *testing.T) {
	e := newTestServer(t)

	code, env := do(t, e, http.MethodGet, "/genres", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]handler.Ref](t, env), 6)

	code, env = do(t, e, http.MethodGet, "/mpa/3", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, handler.Ref{ID: 3, Name: "PG-13"}, decode[handler.Ref](t, env))

	code, env = do(t, e, http.MethodGet, "/genres/42", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "GENRE_NOT_FOUND", env.Error.Code)

	code, env = do(t, e, http.MethodGet, "/mpa", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]handler.Ref](t, env), 5)
}

func TestRequestIDEchoedInMeta(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "trace-me")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "trace-me", env.Meta.RequestID)
	assert.Equal(t, "trace-me", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestUnknownRoute(t *testing.T) {
	e := newTestServer(t)

	code, env := do(t, e, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "HTTP_ERROR", env.Error.Code)
}
