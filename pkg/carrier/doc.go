// Package carrier maps mobile carriers to their email-to-SMS gateway
// address templates.
//
// A Table is built once from a Loader and never mutated afterwards. Lookups
// are case-insensitive: names are normalized to uppercase both when the table
// is built and on every lookup.
//
// # Templates
//
// A Template holds exactly one {0} placeholder that is replaced by the
// subscriber number:
//
//	tmpl := carrier.Template("{0}@cellcom.quiktxt.com")
//	tmpl.Format(5551234567) // "5551234567@cellcom.quiktxt.com"
//
// # Sources
//
// The origin of a table is swappable without touching the sending code:
//
//	carrier.Static(map[string]string{"CELLCOM": "{0}@cellcom.quiktxt.com"})
//	carrier.Default()                                  // bundled CSV
//	carrier.File(os.DirFS("/etc/smsgate"), "carriers.yaml")
//	carrier.Remote("https://example.com/carriers.json")
//	carrier.Object(s3store, "tables/carriers.csv")
//
// CSV sources have two columns (name, template) with an optional header.
// YAML and JSON sources are either a name to template mapping or a list of
// {name, template} objects.
//
// Remote sources can be wrapped with Cached to share a fetched table through
// Redis:
//
//	loader := carrier.Cached(
//	    carrier.Remote(url),
//	    cache.NewRedis[[]carrier.Entry](client, nil, cache.WithPrefix("carriers")),
//	    "table", time.Hour,
//	)
//	table, err := carrier.Build(ctx, loader)
package carrier
