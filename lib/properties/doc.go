// Package properties implements the ordered key/value property set shared by
// the configuration resolver, the template transformer and the service
// lifecycle.
//
// A key that is absent from a Set is distinct from a key that is present with
// an empty value; callers use Get's second return value to tell them apart.
// Iteration follows insertion order so a Set written back to disk keeps the
// layout it was loaded with.
//
// Sets are loaded from flat "key=value" files (the format of tungsten.cfg)
// or from flat YAML mappings; see LoadFile.
package properties
