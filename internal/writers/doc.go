// Package writers turns extracted regions into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (FASTA wrapping, TSV, JSON).
//   • The store stays domain-only; commands stay orchestration-only.
//   • JSON goes through pkg/api (v1) for a stable wire format.
package writers
