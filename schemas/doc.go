// Package schemas holds the generator of the manifest JSON schema.
package schemas
