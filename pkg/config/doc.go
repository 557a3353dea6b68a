// Package config defines the declarative report configuration: the ordered
// sections, their fields, and the identity keys (sectionId/fieldId) that the
// structured report and the persisted snapshot are keyed by.
//
// Configurations are resolved per language through a Catalog and retrieved by
// a Loader. Implementations of the loader live under internal/config/loader;
// construct one through reportgen.NewLoader.
package config
