package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const fullThingXML = `<?xml version="1.0" encoding="utf-8"?>
<items>
  <item type="boardgame" id="342942">
    <name type="alternate" value="Arche Nova"/>
    <name type="primary" value="Ark Nova"/>
    <yearpublished value="2021"/>
    <description>Plan &amp; design a modern zoo.</description>
    <image>https://example.test/ark-nova.jpg</image>
    <minplayers value="1"/>
    <maxplayers value="4"/>
    <minplaytime value="90"/>
    <maxplaytime value="150"/>
    <minage value="14"/>
    <link type="boardgamecategory" value="Animals"/>
    <link type="boardgamecategory" value="Economic"/>
    <link type="boardgamemechanic" value="Hand Management"/>
    <link type="boardgamedesigner" value="Mathias Wigge"/>
    <poll name="suggested_numplayers">
      <results numplayers="2">
        <result value="Best" numvotes="412"/>
        <result value="Recommended" numvotes="600"/>
      </results>
      <results numplayers="3">
        <result value="Best" numvotes="508"/>
      </results>
      <results numplayers="4">
        <result value="Best" numvotes="120"/>
      </results>
    </poll>
    <poll name="language_dependence">
      <results>
        <result level="2" value="Moderate in-game text" numvotes="12"/>
        <result level="3" value="Extensive use of text" numvotes="48"/>
      </results>
    </poll>
    <statistics>
      <ratings>
        <usersrated value="65231"/>
        <average value="8.54321"/>
        <averageweight value="3.7489"/>
        <ranks>
          <rank name="boardgame" value="4"/>
          <rank name="strategygames" value="4"/>
          <rank name="familygames" value="Not Ranked"/>
        </ranks>
      </ratings>
    </statistics>
  </item>
</items>`

func TestDetailParsesFullRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "342942", r.URL.Query().Get("id"))
		require.Equal(t, "1", r.URL.Query().Get("stats"))
		_, _ = w.Write([]byte(fullThingXML))
	}))
	defer server.Close()

	client := &Client{
		HTTPClient: server.Client(),
		ThingURL:   server.URL + "/thing",
		BaseURL:    "https://boardgamegeek.com",
	}

	rec, err := client.Detail(context.Background(), "342942")
	require.NoError(t, err)
	require.NotNil(t, rec)

	require.Equal(t, "342942", rec.CatalogID)
	require.Equal(t, "Ark Nova", rec.Name, "primary name wins over alternates")
	require.Equal(t, "2021", rec.Year)
	require.Equal(t, "Plan & design a modern zoo.", rec.Description)
	require.Equal(t, "https://example.test/ark-nova.jpg", rec.ImageURL)
	require.Equal(t, "1", rec.MinPlayers)
	require.Equal(t, "4", rec.MaxPlayers)
	require.Equal(t, "90", rec.MinTime)
	require.Equal(t, "150", rec.MaxTime)
	require.Equal(t, "14", rec.MinAge)
	require.Equal(t, "65231", rec.UsersRated)
	require.Equal(t, "8.54321", rec.AverageRating)
	require.Equal(t, "3.75", rec.AvgWeight)
	require.Equal(t, "4", rec.OverallRank)
	require.Equal(t, "4", rec.StrategyRank)
	require.Equal(t, []string{"Animals", "Economic"}, rec.Categories)
	require.Equal(t, []string{"Hand Management"}, rec.Mechanics)
	require.Equal(t, "https://boardgamegeek.com/boardgame/342942", rec.CatalogURL)
	require.Equal(t, "3", rec.BestPlayerCount, "highest Best vote total wins")
	require.Equal(t, "Moderate in-game text（轻微依赖）", rec.LanguageDependence,
		"the first poll entry is reported regardless of votes")
}

func TestDetailPollEdgeCases(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<items>
  <item type="boardgame" id="7">
    <name type="primary" value="Fresh Game"/>
    <poll name="suggested_numplayers">
      <results numplayers="2"><result value="Best" numvotes="0"/></results>
      <results numplayers="3"><result value="Best" numvotes="0"/></results>
    </poll>
    <poll name="language_dependence">
      <results>
        <result level="9" value="Unmapped level" numvotes="1"/>
      </results>
    </poll>
  </item>
</items>`))
	}))
	defer server.Close()

	client := &Client{HTTPClient: server.Client(), ThingURL: server.URL}

	rec, err := client.Detail(context.Background(), "7")
	require.NoError(t, err)
	require.NotNil(t, rec)

	require.Empty(t, rec.BestPlayerCount, "a poll with no votes picks nothing")
	require.Equal(t, "Unmapped level", rec.LanguageDependence,
		"unknown levels fall back to the bare value")
}

func TestDetailSentinelsForMissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<items>
  <item type="boardgame" id="5">
    <name type="primary" value="Mystery Game"/>
    <statistics><ratings>
      <averageweight value="0"/>
      <ranks><rank name="boardgame" value="Not Ranked"/></ranks>
    </ratings></statistics>
  </item>
</items>`))
	}))
	defer server.Close()

	client := &Client{HTTPClient: server.Client(), ThingURL: server.URL}

	rec, err := client.Detail(context.Background(), "5")
	require.NoError(t, err)
	require.NotNil(t, rec)

	require.Equal(t, "?", rec.Year)
	require.Equal(t, "?", rec.MinPlayers)
	require.Equal(t, "?", rec.MinAge)
	require.Equal(t, "?", rec.UsersRated)
	require.Equal(t, "0.00", rec.AvgWeight)
	require.Equal(t, "N/A", rec.OverallRank)
	require.Equal(t, "N/A", rec.StrategyRank)
	require.Empty(t, rec.BestPlayerCount)
	require.Empty(t, rec.LanguageDependence)
}

func TestDetailNilOnEmptyItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<items termsofuse="https://example.test"/>`))
	}))
	defer server.Close()

	client := &Client{HTTPClient: server.Client(), ThingURL: server.URL}

	rec, err := client.Detail(context.Background(), "404404")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestDetailNilOnTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := &Client{HTTPClient: server.Client(), ThingURL: server.URL}

	rec, err := client.Detail(context.Background(), "1")
	require.NoError(t, err)
	require.Nil(t, rec)
}
