// Package pipeline runs the lineage-tracing experiment end to end: barcode
// induction, tissue growth, DNA extraction, PCR amplification, and the
// tables written at each stage.
//
// Simulate and Amplify are the only entry points. Everything they need comes
// in through Options, which keeps them testable without the CLI.
package pipeline
