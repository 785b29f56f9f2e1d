package helpers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

func multipartContext(t *testing.T, fields map[string]string, file string, data []byte) echo.Context {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != "" {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="image"; filename="`+file+`"`)
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestFormUpload_ReadsFile(t *testing.T) {
	c := multipartContext(t, nil, "room.png", []byte("\x89PNG fake"))

	up, err := helpers.FormUpload(c, "image")
	require.NoError(t, err)
	require.NotNil(t, up)
	assert.Equal(t, "room.png", up.Filename)
	assert.Equal(t, "image/png", up.ContentType)
	assert.Equal(t, []byte("\x89PNG fake"), up.Data)
}

func TestFormUpload_MissingOrEmptyIsNil(t *testing.T) {
	c := multipartContext(t, map[string]string{"name": "Deluxe"}, "", nil)
	up, err := helpers.FormUpload(c, "image")
	require.NoError(t, err)
	assert.Nil(t, up)

	c = multipartContext(t, nil, "empty.png", nil)
	up, err = helpers.FormUpload(c, "image")
	require.NoError(t, err)
	assert.Nil(t, up)
}

func TestFormUpload_NotMultipartIsBadRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	_, err := helpers.FormUpload(c, "image")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestFormString_DistinguishesAbsentFromBlank(t *testing.T) {
	c := multipartContext(t, map[string]string{"hero_title": "", "phone": "+62 812"}, "", nil)

	assert.Nil(t, helpers.FormString(c, "address"))
	require.NotNil(t, helpers.FormString(c, "hero_title"))
	assert.Equal(t, "", *helpers.FormString(c, "hero_title"))
	assert.Equal(t, "+62 812", *helpers.FormString(c, "phone"))
}
