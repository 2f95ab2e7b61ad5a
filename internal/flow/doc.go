// Package flow turns option instrument listings and book summaries into the
// annotated rows shown on the dashboard.
//
// The package has no network or rendering dependencies. Market data arrives
// through the MarketData interface; Builder.Build composes listing, the
// expiry window filter, concurrent summary fetches and classification into a
// single Model snapshot.
package flow
