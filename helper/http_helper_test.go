package helper_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"newsroom-cms/helper"
	"newsroom-cms/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatusCode(t *testing.T) {
	h := helper.NewHTTPHelper()

	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{models.ErrorValidation{Field: "slug", Message: "bad"}, http.StatusBadRequest},
		{models.ErrorUnauthorized{Code: models.CodeInvalidAPIKey}, http.StatusUnauthorized},
		{models.ErrorForbidden{Message: "no"}, http.StatusForbidden},
		{models.ErrorNotFound{Resource: "article"}, http.StatusNotFound},
		{models.ErrorConflict{Message: "taken"}, http.StatusConflict},
		{models.ErrorInternalServer{Err: errors.New("boom")}, http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, h.GetStatusCode(tc.err), "%v", tc.err)
	}
}

func send(t *testing.T, fn func(h *helper.HTTPHelper, c *gin.Context)) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := helper.NewHTTPHelper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/articles?page=2&limit=10", nil)
	fn(h, c)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestSendError(t *testing.T) {
	code, body := send(t, func(h *helper.HTTPHelper, c *gin.Context) {
		h.SendError(c, models.ErrorValidation{Field: "slug", Message: "bad"})
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "validationError", body["code_type"])
	assert.Equal(t, map[string]interface{}{"slug": []interface{}{"bad"}}, body["data"])

	code, body = send(t, func(h *helper.HTTPHelper, c *gin.Context) {
		h.SendError(c, models.ErrorUnauthorized{Code: models.CodeInvalidAPIKey, Message: "invalid"})
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, models.CodeInvalidAPIKey, body["code_type"])

	code, body = send(t, func(h *helper.HTTPHelper, c *gin.Context) {
		h.SendError(c, models.ErrorConflict{Message: "retry", Retryable: true})
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, map[string]interface{}{"retryable": true}, body["data"])

	code, body = send(t, func(h *helper.HTTPHelper, c *gin.Context) {
		h.SendError(c, errors.New("db password leaked"))
	})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal server error", body["code_message"])
}

func TestSendWarning(t *testing.T) {
	code, body := send(t, func(h *helper.HTTPHelper, c *gin.Context) {
		h.SendWarning(c, "already published", h.EmptyJsonMap())
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "warning", body["code_type"])
	assert.Equal(t, "already published", body["code_message"])
}

func TestSendPaginated(t *testing.T) {
	code, body := send(t, func(h *helper.HTTPHelper, c *gin.Context) {
		h.SendPaginated(c, "ok", []string{"a"}, models.ListParams{Page: 2, Limit: 10}, 35)
	})
	require.Equal(t, http.StatusOK, code)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, []interface{}{"a"}, data["items"])

	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(35), pagination["total_records"])
	assert.Equal(t, float64(4), pagination["total_pages"])
	assert.Equal(t, float64(2), pagination["current_page"])

	links := pagination["links"].(map[string]interface{})
	assert.Equal(t, "http://example.com/articles?page=1&limit=10", links["previous"])
	assert.Equal(t, "http://example.com/articles?page=3&limit=10", links["next"])
	assert.Equal(t, "http://example.com/articles?page=4&limit=10", links["last"])
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := helper.NewHTTPHelper()

	for _, tc := range []struct {
		param string
		ok    bool
	}{{"12", true}, {"0", false}, {"abc", false}, {"-1", false}} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: tc.param}}

		id, ok := h.ParseID(c, "id")
		assert.Equal(t, tc.ok, ok, tc.param)
		if ok {
			assert.Equal(t, uint(12), id)
		} else {
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	}
}
