//go:build integration

package integration

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BradenHooton/storefront/internal/handlers"
	"github.com/BradenHooton/storefront/internal/models"
	"github.com/BradenHooton/storefront/internal/repositories"
	pkgauth "github.com/BradenHooton/storefront/pkg/auth"
	pkghttp "github.com/BradenHooton/storefront/pkg/http"
)

func registerBody(email, password string) map[string]string {
	return map[string]string{"email": email, "name": "Integration User", "password": password}
}

func TestUsers_RegisterCreatesActiveUser(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()
	email, password := TestUser("create")

	resp, err := ts.Request(http.MethodPost, "/api/v1/users", registerBody(email, password), nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user handlers.UserResponse
	require.NoError(t, ParseJSONResponse(resp, &user))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, email, user.Email)
	assert.Equal(t, "ACTIVE", user.Status)
	assert.False(t, user.CreatedAt.IsZero())

	hash, err := testDB.StoredPasswordHash(ctx, email)
	require.NoError(t, err)
	assert.NotEqual(t, password, hash)
	assert.True(t, strings.HasPrefix(hash, "$2"))
	assert.NoError(t, pkgauth.ComparePassword(hash, password))
}

func TestUsers_DuplicateEmailConflicts(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()
	email, password := TestUser("dup")

	resp, err := ts.Request(http.MethodPost, "/api/v1/users", registerBody(email, password), nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = ts.Request(http.MethodPost, "/api/v1/users", registerBody(email, "OtherPass456"), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body pkghttp.ErrorResponse
	require.NoError(t, ParseJSONResponse(resp, &body))
	assert.Equal(t, pkghttp.CodeEmailAlreadyExists, body.Error.Code)

	n, err := CountUsersByEmail(ctx, testDB.Pool, email)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUsers_EmailIsCaseSensitive(t *testing.T) {
	ts := freshServer(t)
	email, password := TestUser("case")

	resp, err := ts.Request(http.MethodPost, "/api/v1/users", registerBody(email, password), nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = ts.Request(http.MethodPost, "/api/v1/users", registerBody(strings.ToUpper(email), password), nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestUsers_ConcurrentDuplicatesStoreOneRow(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()
	email, password := TestUser("race")

	const attempts = 8
	codes := make([]int, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := ts.Request(http.MethodPost, "/api/v1/users", registerBody(email, password), nil)
			if err != nil {
				return
			}
			resp.Body.Close()
			codes[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)

	n, err := CountUsersByEmail(ctx, testDB.Pool, email)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	total, err := testDB.UserCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestUsers_InvalidInputStoresNothing(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()
	email, _ := TestUser("weak")

	resp, err := ts.Request(http.MethodPost, "/api/v1/users", registerBody(email, "weakpass"), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body pkghttp.ErrorResponse
	require.NoError(t, ParseJSONResponse(resp, &body))
	assert.Equal(t, pkghttp.CodeValidation, body.Error.Code)
	require.NotEmpty(t, body.Error.Details)
	for _, d := range body.Error.Details {
		assert.Equal(t, "password", d.Field)
	}

	n, err := CountUsersByEmail(ctx, testDB.Pool, email)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestUsers_TransactionRollsBackOnError(t *testing.T) {
	_ = freshServer(t)
	ctx := context.Background()
	repo := repositories.NewUserRepository(testDB.DB)
	email, _ := TestUser("rollback")
	errAbort := errors.New("abort")

	err := testDB.DB.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, &models.User{Email: email, Name: "Tx", PasswordHash: "x"}); err != nil {
			return err
		}
		exists, err := repo.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		assert.True(t, exists, "insert must be visible inside the transaction")
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	n, err := CountUsersByEmail(ctx, testDB.Pool, email)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
