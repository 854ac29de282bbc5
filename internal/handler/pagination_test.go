package handler

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"sportsvitae/backend/internal/database"
	"sportsvitae/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPageParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	newContext := func(query string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/?"+query, nil)
		return c
	}

	page, limit := pageParams(newContext(""))
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageSize, limit)

	page, limit = pageParams(newContext("page=3&limit=25"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)

	page, limit = pageParams(newContext("page=-2&limit=1000"))
	assert.Equal(t, 1, page)
	assert.Equal(t, maxPageSize, limit)

	page, limit = pageParams(newContext("page=abc&limit=xyz"))
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageSize, limit)
}

func TestPaginate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	owner := models.User{
		Email:        "jane@example.com",
		FirstName:    "Jane",
		LastName:     "Doe",
		PasswordHash: "hash",
		Slug:         "jane-doe-1",
	}
	require.NoError(t, db.Create(&owner).Error)
	for i := 0; i < 5; i++ {
		text := fmt.Sprintf("post %d", i)
		require.NoError(t, db.Create(&models.UserWallPost{OwnerID: owner.ID, Text: &text}).Error)
	}

	query := func() *gorm.DB {
		return db.Model(&models.UserWallPost{}).Where("owner_id = ?", owner.ID).Order("id asc")
	}

	response, err := Paginate[models.UserWallPost](query(), 2, 2)
	require.NoError(t, err)
	require.Len(t, response.Data, 2)
	assert.Equal(t, "post 2", *response.Data[0].Text)
	assert.EqualValues(t, 5, response.Meta.TotalItems)
	assert.Equal(t, 3, response.Meta.TotalPages)
	assert.Equal(t, 2, response.Meta.CurrentPage)
	assert.Equal(t, 2, response.Meta.PageSize)

	// Out-of-range pages come back empty, not as an error.
	response, err = Paginate[models.UserWallPost](query(), 9, 2)
	require.NoError(t, err)
	assert.Empty(t, response.Data)

	// Nonsense bounds are clamped rather than passed to the database.
	response, err = Paginate[models.UserWallPost](query(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, response.Data, 5)
	assert.Equal(t, 1, response.Meta.CurrentPage)
}
