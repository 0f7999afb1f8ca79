package sources

import (
	"context"

	"github.com/jonathan/trend-resolver/internal/types"
)

var fallbackKeywords = []string{
	"Deadpool & Wolverine",
	"Inside Out 2",
	"Dune Part Two",
	"Oppenheimer",
	"Bad Boys: Ride or Die",
	"The Marvels",
	"Barbie",
	"Furiosa",
	"Challengers",
	"The Fall Guy",
	"Stranger Things",
	"Wednesday",
	"The Crown",
	"Game of Thrones",
	"Breaking Bad",
	"Trailer",
	"Box office",
	"Top cast",
	"Oscars",
	"Emmy Awards",
	"Netflix",
	"Streaming",
}

// Fallback returns the static entertainment keyword list.
func Fallback() []types.RawTrendRecord {
	out := make([]types.RawTrendRecord, len(fallbackKeywords))
	for i, kw := range fallbackKeywords {
		out[i] = types.RawTrendRecord{Trend: kw, Breakdown: "Fallback entertainment keyword", Origin: types.OriginFallback}
	}
	return out
}

// FallbackSource serves the static list as a Source.
type FallbackSource struct{}

// Origin implements Source.
func (FallbackSource) Origin() types.Origin { return types.OriginFallback }

// Fetch implements Source.
func (FallbackSource) Fetch(context.Context) ([]types.RawTrendRecord, error) {
	return Fallback(), nil
}
