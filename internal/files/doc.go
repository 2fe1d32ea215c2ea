// Package files groups file access for data dictionary sources and outputs.
//
//   - filesystem: provider interfaces with OS and in-memory implementations,
//     gzip-aware source opening and dictionary discovery
package files
