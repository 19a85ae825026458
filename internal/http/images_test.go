package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageRequest(t *testing.T, token, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestImages_UploadListDelete(t *testing.T) {
	srv := newTestServer(t, true)
	srv.signup(t, "ironman")
	token := srv.token(t, "ironman")

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, imageRequest(t, token, "ticket.png", "image/png", []byte("\x89PNG")))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	img := decode[ImageResponse](t, w)
	assert.Equal(t, "ticket.png", img.Filename)
	assert.Equal(t, "image/png", img.ContentType)
	assert.True(t, strings.HasPrefix(img.Key, "images/ironman/"))
	assert.Contains(t, img.URL, img.Key)
	assert.Contains(t, srv.store.objects, "receipts/"+img.Key)

	w = srv.do(t, http.MethodGet, "/image", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	images := decode[[]ImageResponse](t, w)
	require.Len(t, images, 1)
	assert.Equal(t, img.Key, images[0].Key)

	name := strings.TrimPrefix(img.Key, "images/ironman/")
	w = srv.do(t, http.MethodDelete, "/image/"+name, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, srv.store.objects)
}

func TestImages_Rejections(t *testing.T) {
	srv := newTestServer(t, true)
	srv.signup(t, "ironman")
	token := srv.token(t, "ironman")

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, imageRequest(t, token, "notes.txt", "text/plain", []byte("hello")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPost, "/image", `{}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, imageRequest(t, "", "ticket.png", "image/png", []byte("png")))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestImages_StorageNotConfigured(t *testing.T) {
	srv := newTestServer(t, false)
	srv.signup(t, "ironman")
	token := srv.token(t, "ironman")

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, imageRequest(t, token, "ticket.png", "image/png", []byte("png")))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	assert.Equal(t, http.StatusServiceUnavailable, srv.do(t, http.MethodGet, "/image", nil, token).Code)
}
