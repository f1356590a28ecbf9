package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/slide-archive/histogramd/internal/api/middleware"
	"github.com/slide-archive/histogramd/internal/api/rest"
	"github.com/slide-archive/histogramd/internal/dispatcher"
	"github.com/slide-archive/histogramd/internal/domain"
	"github.com/slide-archive/histogramd/internal/logger"
	"github.com/slide-archive/histogramd/internal/mocks"
	"github.com/slide-archive/histogramd/internal/store"
	"github.com/slide-archive/histogramd/internal/store/schema"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	_ = logger.Initialize(logger.Config{Debug: true})
	m.Run()
}

type fixture struct {
	handler    rest.Handler
	store      *mocks.MockStore
	dispatcher *mocks.MockDispatcher
	assets     *mocks.MockAssetstore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		store:      mocks.NewMockStore(ctrl),
		dispatcher: mocks.NewMockDispatcher(ctrl),
		assets:     mocks.NewMockAssetstore(ctrl),
	}
	f.handler = rest.NewHandler(f.store, f.dispatcher, f.assets)
	return f
}

// testContext builds a gin test context carrying an optional
// authenticated user and an optional JSON body.
func testContext(t *testing.T, method, target string, body interface{}, user *domain.User) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	if user != nil {
		c.Set(string(middleware.AUTH_USER_KEY), user)
	}
	return c, w
}

func publicRecord(id string) *schema.Histogram {
	return &schema.Histogram{
		ID:     id,
		ItemID: "item-1",
		Bins:   256,
		Access: datatypes.JSON(`{"public":true,"users":[{"userId":"user-1","level":2}]}`),
	}
}

func privateRecord(id string) *schema.Histogram {
	return &schema.Histogram{
		ID:     id,
		ItemID: "item-1",
		Bins:   256,
		Access: datatypes.JSON(`{"public":false,"users":[{"userId":"user-1","level":2}]}`),
	}
}

func TestListHistograms(t *testing.T) {
	f := newFixture(t)
	user := &domain.User{ID: "user-1"}
	c, w := testContext(t, http.MethodGet,
		"/api/v1/histogram?itemId=item-1&bins=256&label=true&limit=10&offset=5&sort=updated", nil, user)

	f.store.EXPECT().FindHistograms(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, filter store.HistogramFilter) ([]schema.Histogram, uint64, error) {
			require.NotNil(t, filter.ItemID)
			assert.Equal(t, "item-1", *filter.ItemID)
			require.NotNil(t, filter.Bins)
			assert.Equal(t, 256, *filter.Bins)
			require.NotNil(t, filter.Label)
			assert.True(t, *filter.Label)
			assert.Nil(t, filter.Bitmask)
			assert.Nil(t, filter.FileID)
			assert.Equal(t, user, filter.User)
			assert.Equal(t, "updated", filter.Sort)
			assert.Equal(t, 10, filter.Limit)
			assert.Equal(t, uint64(5), filter.Offset)
			return []schema.Histogram{*publicRecord("hist-1")}, 1, nil
		})

	f.handler.ListHistograms(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp rest.ListHistogramsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.Total)
	require.Len(t, resp.Histograms, 1)
	assert.Equal(t, "hist-1", resp.Histograms[0].ID)
}

func TestListHistograms_InvalidBins(t *testing.T) {
	f := newFixture(t)
	c, w := testContext(t, http.MethodGet, "/api/v1/histogram?bins=zero", nil, nil)

	f.handler.ListHistograms(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListHistograms_InvalidSort(t *testing.T) {
	f := newFixture(t)
	c, w := testContext(t, http.MethodGet, "/api/v1/histogram?sort=name", nil, nil)

	f.handler.ListHistograms(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateHistogram(t *testing.T) {
	f := newFixture(t)
	user := &domain.User{ID: "user-1"}
	body := rest.CreateHistogramRequest{ItemID: "item-1", Label: true, Notify: true}
	c, w := testContext(t, http.MethodPost, "/api/v1/histogram", body, user)

	f.dispatcher.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, input dispatcher.SubmitInput) (*schema.Histogram, error) {
			assert.Equal(t, "item-1", input.ItemID)
			assert.True(t, input.Label)
			assert.True(t, input.Notify)
			assert.Nil(t, input.FileID)
			assert.Nil(t, input.Bins)
			assert.Equal(t, user, input.User)
			return &schema.Histogram{ID: "hist-1", ItemID: "item-1", Expected: true}, nil
		})

	f.handler.CreateHistogram(c)

	require.Equal(t, http.StatusAccepted, w.Code)
	var dto rest.HistogramDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, "hist-1", dto.ID)
	assert.True(t, dto.Expected)
}

func TestCreateHistogram_MissingItemID(t *testing.T) {
	f := newFixture(t)
	c, w := testContext(t, http.MethodPost, "/api/v1/histogram",
		rest.CreateHistogramRequest{}, &domain.User{ID: "user-1"})

	f.handler.CreateHistogram(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateHistogram_DomainErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("%w: item item-1", domain.ErrNotFound), http.StatusNotFound},
		{"access denied", fmt.Errorf("%w: write access required", domain.ErrAccessDenied), http.StatusForbidden},
		{"no image file", fmt.Errorf("%w: item item-1 has no image file", domain.ErrMissingParameter), http.StatusBadRequest},
		{"validation", domain.NewValidationError("fileId", "file must belong to item"), http.StatusUnprocessableEntity},
		{"internal", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			c, w := testContext(t, http.MethodPost, "/api/v1/histogram",
				rest.CreateHistogramRequest{ItemID: "item-1"}, &domain.User{ID: "user-1"})

			f.dispatcher.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			f.handler.CreateHistogram(c)

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestGetHistogram_PublicAnonymous(t *testing.T) {
	f := newFixture(t)
	c, w := testContext(t, http.MethodGet, "/api/v1/histogram/hist-1", nil, nil)
	c.Params = gin.Params{{Key: "id", Value: "hist-1"}}

	f.store.EXPECT().GetHistogram(gomock.Any(), "hist-1").Return(publicRecord("hist-1"), nil)

	f.handler.GetHistogram(c)

	require.Equal(t, http.StatusOK, w.Code)
	var dto rest.HistogramDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, "hist-1", dto.ID)
}

func TestGetHistogram_PrivateAnonymous(t *testing.T) {
	f := newFixture(t)
	c, w := testContext(t, http.MethodGet, "/api/v1/histogram/hist-1", nil, nil)
	c.Params = gin.Params{{Key: "id", Value: "hist-1"}}

	f.store.EXPECT().GetHistogram(gomock.Any(), "hist-1").Return(privateRecord("hist-1"), nil)

	f.handler.GetHistogram(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetHistogram_NotFound(t *testing.T) {
	f := newFixture(t)
	c, w := testContext(t, http.MethodGet, "/api/v1/histogram/absent", nil, nil)
	c.Params = gin.Params{{Key: "id", Value: "absent"}}

	f.store.EXPECT().GetHistogram(gomock.Any(), "absent").Return(nil, nil)

	f.handler.GetHistogram(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteHistogram(t *testing.T) {
	f := newFixture(t)
	user := &domain.User{ID: "user-1"}
	c, w := testContext(t, http.MethodDelete, "/api/v1/histogram/hist-1", nil, user)
	c.Params = gin.Params{{Key: "id", Value: "hist-1"}}

	f.store.EXPECT().GetHistogram(gomock.Any(), "hist-1").Return(privateRecord("hist-1"), nil)
	f.store.EXPECT().RemoveHistogram(gomock.Any(), "hist-1", false).
		Return(&store.RemovedFile{FileID: "file-1", StorageKey: "histograms/job-1.json"}, nil)
	f.assets.EXPECT().Delete(gomock.Any(), "histograms/job-1.json").Return(nil)

	f.handler.DeleteHistogram(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteHistogram_BlobDeleteFailureStillSucceeds(t *testing.T) {
	f := newFixture(t)
	user := &domain.User{ID: "user-1"}
	c, w := testContext(t, http.MethodDelete, "/api/v1/histogram/hist-1", nil, user)
	c.Params = gin.Params{{Key: "id", Value: "hist-1"}}

	f.store.EXPECT().GetHistogram(gomock.Any(), "hist-1").Return(privateRecord("hist-1"), nil)
	f.store.EXPECT().RemoveHistogram(gomock.Any(), "hist-1", false).
		Return(&store.RemovedFile{FileID: "file-1", StorageKey: "histograms/job-1.json"}, nil)
	f.assets.EXPECT().Delete(gomock.Any(), "histograms/job-1.json").Return(errors.New("bucket gone"))

	f.handler.DeleteHistogram(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteHistogram_WriteDenied(t *testing.T) {
	f := newFixture(t)
	c, w := testContext(t, http.MethodDelete, "/api/v1/histogram/hist-1", nil, &domain.User{ID: "user-2"})
	c.Params = gin.Params{{Key: "id", Value: "hist-1"}}

	f.store.EXPECT().GetHistogram(gomock.Any(), "hist-1").Return(privateRecord("hist-1"), nil)

	f.handler.DeleteHistogram(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetHistogramAccess_RequiresAdminLevel(t *testing.T) {
	f := newFixture(t)
	// user-1 holds level 2 (admin) on the record
	c, w := testContext(t, http.MethodGet, "/api/v1/histogram/hist-1/access", nil, &domain.User{ID: "user-1"})
	c.Params = gin.Params{{Key: "id", Value: "hist-1"}}

	f.store.EXPECT().GetHistogram(gomock.Any(), "hist-1").Return(privateRecord("hist-1"), nil)

	f.handler.GetHistogramAccess(c)

	require.Equal(t, http.StatusOK, w.Code)
	var acl domain.ACL
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &acl))
	assert.False(t, acl.Public)
	require.Len(t, acl.Users, 1)
	assert.Equal(t, "user-1", acl.Users[0].UserID)
}

func TestSetHistogramAccess(t *testing.T) {
	f := newFixture(t)
	newACL := domain.ACL{Public: true, Users: []domain.ACLEntry{{UserID: "user-1", Level: domain.AccessAdmin}}}
	c, w := testContext(t, http.MethodPut, "/api/v1/histogram/hist-1/access", newACL, &domain.User{ID: "user-1"})
	c.Params = gin.Params{{Key: "id", Value: "hist-1"}}

	f.store.EXPECT().GetHistogram(gomock.Any(), "hist-1").Return(privateRecord("hist-1"), nil)
	f.store.EXPECT().SetHistogramAccess(gomock.Any(), "hist-1", gomock.Any()).DoAndReturn(
		func(ctx context.Context, id string, access []byte) error {
			acl, err := domain.ParseACL(access)
			require.NoError(t, err)
			assert.True(t, acl.Public)
			return nil
		})

	f.handler.SetHistogramAccess(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetHistogramAccess_NonAdminDenied(t *testing.T) {
	f := newFixture(t)
	c, w := testContext(t, http.MethodPut, "/api/v1/histogram/hist-1/access",
		domain.ACL{Public: true}, &domain.User{ID: "user-2"})
	c.Params = gin.Params{{Key: "id", Value: "hist-1"}}

	f.store.EXPECT().GetHistogram(gomock.Any(), "hist-1").Return(privateRecord("hist-1"), nil)

	f.handler.SetHistogramAccess(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetSettings(t *testing.T) {
	f := newFixture(t)
	c, w := testContext(t, http.MethodGet, "/api/v1/histogram/settings", nil, nil)

	f.store.EXPECT().DefaultBins(gomock.Any()).Return(256, nil)

	f.handler.GetSettings(c)

	require.Equal(t, http.StatusOK, w.Code)
	var settings rest.SettingsDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, 256, settings.DefaultBins)
}

func TestSetSettings(t *testing.T) {
	f := newFixture(t)
	c, w := testContext(t, http.MethodPut, "/api/v1/histogram/settings",
		rest.SettingsDTO{DefaultBins: 128}, &domain.User{ID: "admin-1", Admin: true})

	f.store.EXPECT().SetDefaultBins(gomock.Any(), 128).Return(nil)

	f.handler.SetSettings(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetSettings_NonAdminDenied(t *testing.T) {
	f := newFixture(t)
	c, w := testContext(t, http.MethodPut, "/api/v1/histogram/settings",
		rest.SettingsDTO{DefaultBins: 128}, &domain.User{ID: "user-1"})

	f.handler.SetSettings(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSetSettings_NegativeRejected(t *testing.T) {
	f := newFixture(t)
	c, w := testContext(t, http.MethodPut, "/api/v1/histogram/settings",
		rest.SettingsDTO{DefaultBins: -1}, &domain.User{Admin: true})

	f.store.EXPECT().SetDefaultBins(gomock.Any(), -1).
		Return(domain.NewValidationError("bins", "default bins must not be negative"))

	f.handler.SetSettings(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHealthCheck(t *testing.T) {
	f := newFixture(t)
	c, w := testContext(t, http.MethodGet, "/health", nil, nil)

	f.handler.HealthCheck(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
