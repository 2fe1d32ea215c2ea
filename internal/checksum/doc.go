// Package checksum provides data dictionary content hashing with
// normalization support.
//
// Two checksums are computed for every converted source:
//
//   - Raw checksum: Hash of the exact file content (detects all changes)
//   - Normalized checksum: Hash after removing XML comments and normalizing
//     whitespace, so a re-indented export of the same dictionary keeps its
//     identity
//
// # Example Usage
//
//	calculator := checksum.New()
//	raw := calculator.CalculateRaw(content)
//	normalized := calculator.CalculateNormalized(content)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
