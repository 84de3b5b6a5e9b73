// Package resource maps raw API payloads onto typed resource instances.
//
// A resource type is declared once, at package initialisation, by binding it
// to a remote path and registering one extraction rule per field and per
// context. The API returns a different shape when a single item is fetched
// than when it appears inside a page, so every type carries two independent
// mappings:
//
//   - Single: the full record returned by GET /<path>/<id>
//   - Page:   the stub ({name, url}) found in the results of GET /<path>
//
// # Declaring a Type
//
//	var Berry = resource.MustDefine(resource.Default, "Berry", "/berry").
//		Both("id", nil, resource.IDFromURL("url")).
//		Both("name", nil, nil).
//		Single("firmness", resource.String("firmness.name")).
//		Type()
//
// A nil rule is a passthrough: the field is read from the payload key of the
// same name, falling back to its snake_case form (growthTime reads
// growth_time). Passthrough fields that are absent stay unset. Rules built
// from a path (Path, String, Int, Strings, IDFromURL) require the value to be
// present and fail with a *ShapeError otherwise.
//
// # Transforming
//
//	inst, err := resource.Default.TransformBytes(body, resource.Single, Berry)
//	var errShape *resource.ShapeError
//	if errors.As(err, &errShape) {
//		// the payload did not have the declared shape
//	}
//
// A type used without a bound path or without a mapping for the requested
// context yields a *ConfigurationError. That is a programming error and is
// never recovered from by the client.
//
// Paths use gjson syntax (https://github.com/tidwall/gjson), e.g.
// "moves.#.move.name" collects the name of every move.
package resource
