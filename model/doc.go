// Package model defines the small set of tagged types shared by every layer
// of datapack.
//
//   - ContentKind: Text or Binary, resolved once per dataset session
//   - SourceKind: Local (filesystem) or Remote (HTTP), derived from a location
package model
