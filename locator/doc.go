// Package locator classifies dataset locations and derives the names of the
// objects that make up a dataset.
//
// A location is Remote if it starts with an HTTP scheme and Local otherwise.
// Every location is split into a store root (the parent directory or parent
// URL) and a base name, and all object names are resolved relative to the
// root:
//
//	{name}/{n}.{ext}       chunk n of a package
//	{name}.{ext}           single-file form
//	{name}/manifest.json   manifest sidecar
//
// An empty extension drops the dot.
package locator
