// Package writers turns simulation tables into serialized outputs.
//
// Design:
//   • Format renderers live in output; writers only dispatch on the format
//     name and own the destination (stdout, plain or gzipped file).
//   • File outputs are staged in a temporary file and renamed on success.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
