package dictionary

import (
	"regexp"
)

// datasetNameRegex matches dbGaP data dictionary file names such as
// phs000001.v1.pht000001.v1.ardpheno.data_dict_2008_10_31.xml
var datasetNameRegex = regexp.MustCompile(`^phs[0-9]+\.v[0-9]+\.pht[0-9]+\.v[0-9]+\.(.+?)\.data_dict`)

// ParseDatasetName extracts the dataset name from a data dictionary file
// name. It returns nil when the name does not follow the dbGaP convention;
// the pattern is anchored, so callers pass a base name rather than a path.
func ParseDatasetName(filename string) *string {
	m := datasetNameRegex.FindStringSubmatch(filename)
	if m == nil {
		return nil
	}
	name := m[1]
	return &name
}
