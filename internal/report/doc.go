// Package report describes one conversion: which dataset was converted, a
// deterministic identity for it, the checksums of the source and the
// warnings raised along the way.
package report
