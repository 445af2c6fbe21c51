// Package output renders endpointauth CLI results as a table, JSON or
// YAML.
//
// Table output lists the exported fields of a struct, or the entries of
// a map, as two columns. Field names come from the json tag when set.
package output
