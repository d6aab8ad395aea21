// Package motherlib is a client for a mothership server: a tag-addressed
// content store where blobs are written once under a content-derived ref
// and looked up by the set of tags attached to them.
//
// Lookups come in two flavors. Exact lookups require the stored tag set to
// equal the queried one; superset lookups (signalled to the server by a
// trailing slash) match any record whose tags contain the queried ones.
//
// Basic usage:
//
//	client, _ := motherlib.New("https://api.mother.ship")
//
//	// Store content under a set of tags; the server answers with the
//	// content-derived ref.
//	ref, _ := client.PutLatest(ctx, []string{"log", "dev"}, bytes.NewReader(data))
//
//	// Fetch the latest match. A unique match comes back as the stored
//	// bytes; an ambiguous one as the list of candidate records.
//	result, _ := client.GetLatest(ctx, []string{"log", "dev"})
//	if result.Unique() {
//	    use(result.Content)
//	} else {
//	    for _, rec := range result.Records { ... }
//	}
//
//	// Full history, newest first.
//	records, _ := client.GetHistory(ctx, []string{"log", "dev"})
//
//	// Fetch stored bytes directly by ref.
//	data, _ := client.GetBlob(ctx, ref)
//
// With authentication and a custom retry budget:
//
//	client, _ := motherlib.New(addr,
//	    motherlib.WithBearerToken(token),
//	    motherlib.WithRetries(5),
//	)
package motherlib
