package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"commerce-api/internal/config"
	"commerce-api/internal/domain/repository"
	"commerce-api/internal/infrastructure/database"
)

type APIRequestLogRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	db   *database.Database
	repo *apiRequestLogRepository
}

func (suite *APIRequestLogRepositoryTestSuite) SetupTest() {
	db, err := database.Open(config.DriverSQLite, ":memory:", zap.NewNop())
	require.NoError(suite.T(), err, "failed to create test database")

	suite.ctx = context.Background()
	suite.db = db
	suite.repo = NewAPIRequestLogRepository(db, zap.NewNop()).(*apiRequestLogRepository)
	suite.repo.now = func() time.Time {
		return time.Date(2024, 3, 9, 8, 30, 0, 0, time.UTC)
	}
}

func (suite *APIRequestLogRepositoryTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *APIRequestLogRepositoryTestSuite) insert(fields repository.Fields) int64 {
	id, err := suite.repo.Insert(suite.ctx, fields)
	require.NoError(suite.T(), err)
	require.NotZero(suite.T(), id)
	return id
}

func (suite *APIRequestLogRepositoryTestSuite) TestInsertAndFindByID() {
	id := suite.insert(repository.Fields{
		"user_id": int64(2),
		"api_key": "key-1",
		"token":   "tok-1",
		"version": "v2",
		"request": "/edd-api/v2/products",
		"ip":      "192.168.0.10",
		"time":    0.75,
	})

	log, err := suite.repo.FindByID(suite.ctx, id)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), log)

	assert.Equal(suite.T(), id, log.ID)
	assert.Equal(suite.T(), int64(2), log.UserID)
	assert.Equal(suite.T(), "key-1", log.APIKey)
	assert.Equal(suite.T(), "tok-1", log.Token)
	assert.Equal(suite.T(), "v2", log.Version)
	assert.Equal(suite.T(), "/edd-api/v2/products", log.Request)
	assert.Equal(suite.T(), "192.168.0.10", log.IP)
	assert.InDelta(suite.T(), 0.75, log.Time, 1e-9)
	assert.Equal(suite.T(), "2024-03-09 08:30:00", log.DateCreated)
}

func (suite *APIRequestLogRepositoryTestSuite) TestInsertIgnoresUnknownColumns() {
	id := suite.insert(repository.Fields{
		"ip":         "10.1.1.1",
		"post_title": "ignored",
	})

	log, err := suite.repo.FindByID(suite.ctx, id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "10.1.1.1", log.IP)
	assert.Equal(suite.T(), "public", log.APIKey)
}

func (suite *APIRequestLogRepositoryTestSuite) TestFindByIDNotFound() {
	log, err := suite.repo.FindByID(suite.ctx, 404)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), log)
}

func (suite *APIRequestLogRepositoryTestSuite) TestFindAllNewestFirst() {
	first := suite.insert(repository.Fields{"request": "/a"})
	second := suite.insert(repository.Fields{"request": "/b"})
	third := suite.insert(repository.Fields{"request": "/c"})

	logs, err := suite.repo.FindAll(suite.ctx, 2)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), logs, 2)
	assert.Equal(suite.T(), third, logs[0].ID)
	assert.Equal(suite.T(), second, logs[1].ID)

	logs, err = suite.repo.FindAll(suite.ctx, 10)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), logs, 3)
	assert.Equal(suite.T(), first, logs[2].ID)
}

func (suite *APIRequestLogRepositoryTestSuite) TestUpdate() {
	id := suite.insert(repository.Fields{"request": "/a"})

	ok, err := suite.repo.Update(suite.ctx, id, repository.Fields{"error": "invalid key", "time": 1.5})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)

	log, err := suite.repo.FindByID(suite.ctx, id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "invalid key", log.Error)
	assert.InDelta(suite.T(), 1.5, log.Time, 1e-9)
	assert.Equal(suite.T(), "/a", log.Request)
}

func (suite *APIRequestLogRepositoryTestSuite) TestUpdateMissingRow() {
	ok, err := suite.repo.Update(suite.ctx, 999, repository.Fields{"error": "x"})
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

func (suite *APIRequestLogRepositoryTestSuite) TestUpdateWithoutColumns() {
	id := suite.insert(repository.Fields{"request": "/a"})

	ok, err := suite.repo.Update(suite.ctx, id, repository.Fields{"unknown": "x"})
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

func (suite *APIRequestLogRepositoryTestSuite) TestDelete() {
	id := suite.insert(repository.Fields{"request": "/a"})

	ok, err := suite.repo.Delete(suite.ctx, id)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)

	log, err := suite.repo.FindByID(suite.ctx, id)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), log)

	ok, err = suite.repo.Delete(suite.ctx, id)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

func TestAPIRequestLogRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(APIRequestLogRepositoryTestSuite))
}

func TestWritableColumnsSorted(t *testing.T) {
	got := writableColumns(repository.Fields{"time": 1.0, "ip": "x", "nope": 1, "api_key": "k"})
	assert.Equal(t, []string{"api_key", "ip", "time"}, got)
}
