package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/armandonoel2022/srcapp-sub001/internal/geo"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

var testPoint = geo.GeoPoint{Latitude: 18.4861, Longitude: -69.9312}

func TestReverse_CacheHitSkipsProvider(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("geocode:18.48610,-69.93120").SetVal("Av. Winston Churchill 25")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("provider must not be called on cache hit")
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL, "test-key", rdb)
	assert.Equal(t, "Av. Winston Churchill 25", c.Reverse(context.Background(), testPoint))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReverse_MissFetchesAndCaches(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("geocode:18.48610,-69.93120").RedisNil()
	mock.ExpectSet("geocode:18.48610,-69.93120", "Calle El Conde 105", 24*time.Hour).SetVal("OK")

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "18.48610", r.URL.Query().Get("lat"))
		assert.Equal(t, "-69.93120", r.URL.Query().Get("lng"))
		w.Write([]byte(`{"address":"Calle El Conde 105"}`))
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL, "test-key", rdb)
	assert.Equal(t, "Calle El Conde 105", c.Reverse(context.Background(), testPoint))
	assert.Equal(t, "test-key", gotAuth)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReverse_ProviderFailureYieldsEmptyAddress(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("geocode:18.48610,-69.93120").RedisNil()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL, "test-key", rdb)
	assert.Equal(t, "", c.Reverse(context.Background(), testPoint))
}

func TestReverse_MissingCredentials(t *testing.T) {
	c := NewClient(nil, "http://unused", "", nil)
	assert.Equal(t, "", c.Reverse(context.Background(), testPoint))
}
