package pick

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   Record
		want BetType
	}{
		{
			name: "over flag and positive threshold",
			in:   Record{IsOver: boolPtr(true), OverUnder: decimal.NewFromInt(145)},
			want: BetTypeOverUnder,
		},
		{
			name: "under flag and positive threshold",
			in:   Record{IsOver: boolPtr(false), OverUnder: decimal.NewFromFloat(44.5)},
			want: BetTypeOverUnder,
		},
		{
			name: "over flag with zero threshold",
			in:   Record{IsOver: boolPtr(true), OverUnder: decimal.Zero, Spread: decimal.NewFromFloat(3.5)},
			want: BetTypeSpread,
		},
		{
			name: "null over flag with positive threshold",
			in:   Record{IsOver: nil, OverUnder: decimal.NewFromInt(145)},
			want: BetTypeSpread,
		},
		{
			name: "negative threshold",
			in:   Record{IsOver: boolPtr(true), OverUnder: decimal.NewFromInt(-1)},
			want: BetTypeSpread,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
			assert.Equal(t, tt.want, FromRecord(tt.in).BetType())
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name  string
		team  string
		wager Wager
		want  string
	}{
		{name: "favorite", team: "Hawks", wager: SpreadWager{Spread: decimal.NewFromFloat(6.5), IsFavorite: true}, want: "Hawks -6.5"},
		{name: "underdog", team: "Hawks", wager: SpreadWager{Spread: decimal.NewFromFloat(6.5)}, want: "Hawks +6.5"},
		{name: "pick em", team: "Hawks", wager: SpreadWager{Spread: decimal.Zero}, want: "Hawks PK"},
		{name: "over", team: "Hawks", wager: OverUnderWager{Threshold: decimal.NewFromInt(145), IsOver: true}, want: "Hawks Over 145"},
		{name: "under", team: " Hawks ", wager: OverUnderWager{Threshold: decimal.NewFromFloat(212.5)}, want: "Hawks Under 212.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.team, tt.wager))
		})
	}
}

func TestFromRecord_IgnoresFieldsOfOtherVariant(t *testing.T) {
	spreadRow := Record{
		ID:         "p1",
		Team:       "Hawks",
		Spread:     decimal.NewFromFloat(4.5),
		IsFavorite: true,
		OverUnder:  decimal.NewFromInt(150),
		IsOver:     nil,
		Status:     StatusPending,
	}
	got := FromRecord(spreadRow)
	require.Equal(t, BetTypeSpread, got.BetType())
	assert.Equal(t, "Hawks -4.5", got.Description)
	assert.NotContains(t, got.Description, "150")

	ouRow := Record{
		ID:         "p2",
		Team:       "Hawks",
		Spread:     decimal.NewFromFloat(4.5),
		IsFavorite: true,
		OverUnder:  decimal.NewFromInt(150),
		IsOver:     boolPtr(false),
		Status:     StatusPending,
	}
	got = FromRecord(ouRow)
	require.Equal(t, BetTypeOverUnder, got.BetType())
	assert.Equal(t, "Hawks Under 150", got.Description)
}

func TestPickRecord_KeepsStoredTermsOnComplete(t *testing.T) {
	row := Record{
		ID:         "p1",
		UserID:     "u1",
		Team:       "Hawks",
		Spread:     decimal.NewFromFloat(4.5),
		IsFavorite: true,
		OverUnder:  decimal.NewFromInt(150),
		Status:     StatusPending,
		GameDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	done := FromRecord(row).Complete(true)
	out := done.Record()

	assert.Equal(t, StatusCompleted, out.Status)
	require.NotNil(t, out.Winner)
	assert.True(t, *out.Winner)
	assert.True(t, out.Spread.Equal(row.Spread))
	assert.True(t, out.OverUnder.Equal(row.OverUnder))
	assert.True(t, out.IsFavorite)
	assert.Nil(t, out.IsOver)
	assert.Equal(t, row.GameDate, out.GameDate)
}

func TestPickRecord_WithoutStoredRow(t *testing.T) {
	p := Pick{
		ID:     "p9",
		Team:   "Owls",
		Wager:  OverUnderWager{Threshold: decimal.NewFromInt(140), IsOver: true},
		Status: StatusPending,
	}

	out := p.Record()
	require.NotNil(t, out.IsOver)
	assert.True(t, *out.IsOver)
	assert.True(t, out.OverUnder.Equal(decimal.NewFromInt(140)))
	assert.Equal(t, BetTypeOverUnder, Classify(out))
}

func TestSpreadWagerLine(t *testing.T) {
	fav := SpreadWager{Spread: decimal.NewFromFloat(6.5), IsFavorite: true}
	dog := SpreadWager{Spread: decimal.NewFromFloat(6.5)}

	assert.True(t, fav.Line().Equal(decimal.NewFromFloat(-6.5)))
	assert.True(t, dog.Line().Equal(decimal.NewFromFloat(6.5)))
}
