package report

import (
	"github.com/google/uuid"

	"github.com/vvka-141/dbgapdd/internal/dictionary"
)

// NamespaceDatasetIdentity is the UUID v5 namespace for dataset identities,
// derived from "dbgapdd/dataset-identity/v1" in the URL namespace.
var NamespaceDatasetIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("dbgapdd/dataset-identity/v1"))

// DatasetIdentity returns a deterministic UUID v5 for a dataset, computed over
// "<study accession>.<dataset accession>", e.g. "phs000001.v1.pht000001.v1".
// Re-exports of the same dataset version share the identity; a new dataset or
// study version gets a new one.
func DatasetIdentity(ds dictionary.Dataset) uuid.UUID {
	return uuid.NewSHA1(NamespaceDatasetIdentity, []byte(ds.StudyID.String()+"."+ds.ID.String()))
}
