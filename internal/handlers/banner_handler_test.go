package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"moodyme/backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func bannerRows(banners ...models.Banner) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "subtitle", "image_url", "link",
		"display_order", "is_active", "created_at", "updated_at",
	})
	for _, b := range banners {
		rows.AddRow(b.ID, b.Title, b.Subtitle, b.ImageURL, b.Link,
			b.DisplayOrder, b.IsActive, b.CreatedAt, b.UpdatedAt)
	}
	return rows
}

func TestListPublicBannersHandler(t *testing.T) {
	router := gin.New()
	router.GET("/api/banners", ListPublicBannersHandler)

	banner := models.Banner{
		ID:           uuid.New(),
		Title:        "Summer Wellness",
		ImageURL:     "https://cdn.moodyme.com/banners/summer.png",
		DisplayOrder: 1,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "banners" WHERE is_active = $1 ORDER BY display_order asc`)).
		WithArgs(true).
		WillReturnRows(bannerRows(banner))

	req, _ := http.NewRequest(http.MethodGet, "/api/banners", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), banner.Title)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestCreateBannerHandler(t *testing.T) {
	router := getRouterWithAuthenticatedContext(testAdminID, "admin@moodyme.com", models.RoleAdmin)
	router.POST("/banners", CreateBannerHandler)

	t.Run("Successful creation defaults is_active to true", func(t *testing.T) {
		payload := BannerPayload{
			Title:        "New Banner",
			Subtitle:     "Fresh content",
			ImageURL:     "https://cdn.moodyme.com/banners/new.png",
			Link:         "https://moodyme.com/promo",
			DisplayOrder: 3,
		}
		body, _ := json.Marshal(payload)

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(`INSERT INTO "banners"`).
			WithArgs(sqlmock.AnyArg(), payload.Title, payload.Subtitle, payload.ImageURL,
				payload.Link, payload.DisplayOrder, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectCommit()

		req, _ := http.NewRequest(http.MethodPost, "/banners", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Missing image URL is rejected", func(t *testing.T) {
		body, _ := json.Marshal(BannerPayload{Title: "No image"})
		req, _ := http.NewRequest(http.MethodPost, "/banners", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetBannerHandler(t *testing.T) {
	router := getRouterWithAuthenticatedContext(testAdminID, "admin@moodyme.com", models.RoleAdmin)
	router.GET("/banners/:bannerId", GetBannerHandler)

	t.Run("Found", func(t *testing.T) {
		banner := models.Banner{
			ID:       uuid.New(),
			Title:    "Existing",
			ImageURL: "https://cdn.moodyme.com/banners/existing.png",
			IsActive: true,
		}

		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "banners" WHERE id = $1`)).
			WithArgs(banner.ID, 1).
			WillReturnRows(bannerRows(banner))

		req, _ := http.NewRequest(http.MethodGet, "/banners/"+banner.ID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), banner.Title)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		missingID := uuid.New()
		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "banners" WHERE id = $1`)).
			WithArgs(missingID, 1).
			WillReturnRows(bannerRows())

		req, _ := http.NewRequest(http.MethodGet, "/banners/"+missingID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Invalid ID format", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/banners/not-a-uuid", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDeleteBannerHandler(t *testing.T) {
	router := getRouterWithAuthenticatedContext(testAdminID, "admin@moodyme.com", models.RoleAdmin)
	router.DELETE("/banners/:bannerId", DeleteBannerHandler)

	t.Run("Successful delete", func(t *testing.T) {
		bannerID := uuid.New()
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "banners" WHERE id = $1`)).
			WithArgs(bannerID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectCommit()

		req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("/banners/%s", bannerID), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Delete of missing banner returns 404", func(t *testing.T) {
		bannerID := uuid.New()
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "banners" WHERE id = $1`)).
			WithArgs(bannerID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		sqlMock.ExpectCommit()

		req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("/banners/%s", bannerID), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
