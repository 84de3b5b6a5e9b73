// Package pagination handles the limit/offset paging used by PokeAPI
// collection endpoints.
//
// Collection endpoints answer with an envelope:
//
//	{"count": 1302, "next": "...", "previous": null, "results": [...]}
//
// ParseEnvelope and ParseCount read that envelope, ResolveOffset turns a
// negative offset into a position counted back from the end of the
// collection, and Collector walks a whole collection one page at a time.
//
// Example usage:
//
//	collector := pagination.NewCollector(fetchPage, pagination.DefaultConfig())
//	items, err := collector.CollectAll(ctx)
//
// The collector:
//   - Requests pages strictly in order, starting at offset 0
//   - Stops at the first page whose length differs from the page size
//   - Aborts on the first failed page and returns no partial results
package pagination
