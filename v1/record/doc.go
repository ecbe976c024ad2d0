// Package record defines the items that are indexed and searched.
//
// A Record is an id plus a map of fields. Render turns it into the text that
// gets embedded, PointID into the id it is stored under. Records come from a
// JSON file (LoadFile), any reader holding a JSON array (Decode, used for
// objects fetched from MinIO) or SQL rows (FromRows, used with the postgres
// package).
//
// Two error kinds live here: ErrMalformedRecord for a single bad record
// (reported, not fatal) and ErrMalformedInput for an unreadable input
// (fatal, nothing is ingested).
package record
