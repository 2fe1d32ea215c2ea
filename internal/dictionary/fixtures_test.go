package dictionary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dbgapdd/internal/logging"
)

const ardphenoFile = "phs000001.v1.pht000001.v1.ardpheno.data_dict_2008_10_31.xml"

const ageXML = `<?xml version="1.0" encoding="UTF-8"?>
<data_table id="pht000001.v1" study_id="phs000001.v1" participant_set="1" date_created="2008-10-31">
  <description>Phenotype data for AREDS participants</description>
  <variable id="phv00000001.v1">
    <name>AGE</name>
    <description>Age at visit</description>
    <type>encoded value</type>
    <value code="1">Young</value>
    <value code="2">Old</value>
  </variable>
</data_table>`

const ardphenoXML = `<?xml version="1.0" encoding="UTF-8"?>
<data_table id="pht000001.v1" study_id="phs000001.v1" participant_set="1">
  <description>Phenotype data</description>
  <unique_key>ID2</unique_key>
  <variable id="phv00000001.v1">
    <name>ID2</name>
    <description>Patient ID</description>
    <type>string</type>
  </variable>
  <variable id="phv00000002.v1">
    <name>AGE</name>
    <description>Age at enrollment</description>
    <type>integer</type>
    <unit>years</unit>
    <logical_min>55</logical_min>
    <logical_max>81</logical_max>
  </variable>
  <variable id="phv00000003.v2">
    <name>SEX</name>
    <description>Sex of participant</description>
    <type>encoded value</type>
    <value code="1">Male</value>
    <value code="2">Female</value>
  </variable>
  <variable id="phv00000004.v1">
    <name>SMOKE</name>
    <description>Smoking status</description>
    <type>encoded value</type>
    <value code="0">Never</value>
    <value code="1">Former</value>
    <value code="2">Current</value>
  </variable>
</data_table>`

// variableXML wraps variable elements in a valid data_table root.
func variableXML(variables ...string) string {
	return `<data_table id="pht000001.v1" study_id="phs000001.v1" participant_set="1">` +
		strings.Join(variables, "") + `</data_table>`
}

func readString(t *testing.T, doc, filename string) (*DataDictionary, error) {
	t.Helper()
	return NewReader(logging.NewNullLogger()).Read(strings.NewReader(doc), filename)
}

func mustRead(t *testing.T, doc, filename string) *DataDictionary {
	t.Helper()
	dd, err := readString(t, doc, filename)
	require.NoError(t, err)
	require.NotNil(t, dd)
	return dd
}
