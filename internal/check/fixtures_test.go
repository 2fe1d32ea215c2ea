package check

import (
	"io"
	"strings"
)

const goodXML = `<?xml version="1.0" encoding="UTF-8"?>
<data_table id="pht000001.v1" study_id="phs000001.v1" participant_set="1">
  <description>Phenotype data</description>
  <variable id="phv00000001.v1">
    <name>ID2</name>
    <description>Patient ID</description>
    <type>string</type>
  </variable>
  <variable id="phv00000003.v2">
    <name>SEX</name>
    <description>Sex of participant</description>
    <type>encoded value</type>
    <value code="1">Male</value>
    <value code="2">Female</value>
  </variable>
</data_table>`

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}
