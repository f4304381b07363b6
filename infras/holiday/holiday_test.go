package holiday_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"edurooms/infras/holiday"
	"edurooms/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//Google Inc//Google Calendar 70.9054//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"DTSTART;VALUE=DATE:20251225\r\n" +
	"DTEND;VALUE=DATE:20251226\r\n" +
	"UID:christmas-2025\r\n" +
	"SUMMARY:Navidad\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"DTSTART;VALUE=DATE:20251208\r\n" +
	"DTEND;VALUE=DATE:20251209\r\n" +
	"UID:inmaculada-2025\r\n" +
	"SUMMARY:Inmaculada Concepcion\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"DTSTART;VALUE=DATE:20251225\r\n" +
	"DTEND;VALUE=DATE:20251226\r\n" +
	"UID:christmas-2025-regional\r\n" +
	"SUMMARY:Navidad (regional)\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"DTSTART;VALUE=DATE:20260101\r\n" +
	"DTEND;VALUE=DATE:20260102\r\n" +
	"UID:new-year-2026\r\n" +
	"SUMMARY:Año Nuevo\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestFetchYear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		_, _ = w.Write([]byte(feed))
	}))
	defer server.Close()

	client := holiday.NewWithClient(server.URL, server.Client(), mocks.NewOtel())

	dates, err := client.FetchYear(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12-08", "2025-12-25"}, dates)

	dates, err = client.FetchYear(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-01"}, dates)

	dates, err = client.FetchYear(context.Background(), 2030)
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestFetchYear_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := holiday.NewWithClient(server.URL, server.Client(), mocks.NewOtel())

	_, err := client.FetchYear(context.Background(), 2025)
	assert.Error(t, err)
}

func TestFetchYear_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := holiday.NewWithClient(url, http.DefaultClient, mocks.NewOtel())

	_, err := client.FetchYear(context.Background(), 2025)
	assert.Error(t, err)
}
