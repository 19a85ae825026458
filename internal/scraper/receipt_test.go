package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const receiptPage = `<!DOCTYPE html>
<html><body>
<table>
  <tr class="font table-full-alt">
    <td><div>LECHE ENTERA 1L</div></td>
    <td><div class="center">2</div></td>
    <td><div class="center">$ 1.250,50</div></td>
  </tr>
  <tr class="font  table-full-alt">
    <td><div> PAN   INTEGRAL </div></td>
    <td><div class="center">1 UN</div></td>
    <td><div class="center">899.9</div></td>
  </tr>
  <tr class="font table-full-alt">
    <td><div>SIN PRECIO</div></td>
    <td><div class="center">1</div></td>
  </tr>
  <tr class="header">
    <td><div>Descripcion</div></td>
    <td><div class="center">Cant</div></td>
    <td><div class="center">Precio</div></td>
  </tr>
</table>
</body></html>`

func TestParse(t *testing.T) {
	products, err := Parse(strings.NewReader(receiptPage))
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "LECHE ENTERA 1L", products[0].Name)
	assert.Equal(t, "LECHE ENTERA 1L", products[0].Description)
	assert.Equal(t, 2.0, products[0].Units)
	assert.InDelta(t, 1250.5, products[0].Price, 0.0001)

	assert.Equal(t, "PAN INTEGRAL", products[1].Name)
	assert.Equal(t, 1.0, products[1].Units)
	assert.InDelta(t, 899.9, products[1].Price, 0.0001)
}

func TestParse_EmptyDocument(t *testing.T) {
	products, err := Parse(strings.NewReader("<html><body><p>nothing here</p></body></html>"))
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{in: "3", want: 3},
		{in: "3 UN", want: 3},
		{in: "$12,5", want: 12.5},
		{in: "1.234,50", want: 1234.5},
		{in: " 10.75 ", want: 10.75},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseNumber(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}

	_, err := parseNumber("abc")
	assert.Error(t, err)
}

func TestReceiptScraper_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/receipt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(receiptPage))
	}))
	defer srv.Close()

	s := NewReceiptScraper(Config{Timeout: time.Second})

	products, err := s.Fetch(context.Background(), srv.URL+"/receipt")
	require.NoError(t, err)
	assert.Len(t, products, 2)

	_, err = s.Fetch(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestReceiptScraper_FetchHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewReceiptScraper(Config{}).Fetch(ctx, srv.URL)
	assert.Error(t, err)
}
