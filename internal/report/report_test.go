package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dbgapdd/internal/accession"
	"github.com/vvka-141/dbgapdd/internal/checksum"
	"github.com/vvka-141/dbgapdd/internal/dictionary"
	"github.com/vvka-141/dbgapdd/internal/logging"
)

const sourceXML = `<data_table id="pht000001.v1" study_id="phs000001.v1" participant_set="1">
  <variable id="phv00000001.v1"><name>AGE</name><description>Age</description>
    <value code="1">Young</value><value code="2">Old</value><value code="3">Older</value>
  </variable>
  <variable id="phv00000002.v1"><name>SEX</name><description>Sex</description></variable>
</data_table>`

func readDictionary(t *testing.T, doc, filename string) *dictionary.DataDictionary {
	t.Helper()
	dd, err := dictionary.NewReader(logging.NewNullLogger()).Read(strings.NewReader(doc), filename)
	require.NoError(t, err)
	return dd
}

func dataset(study, table string) dictionary.Dataset {
	s, _ := accession.Parse(study)
	d, _ := accession.Parse(table)
	return dictionary.Dataset{ID: d, StudyID: s}
}

// TestDatasetIdentity_Deterministic tests that identities depend only on the accessions
func TestDatasetIdentity_Deterministic(t *testing.T) {
	a := DatasetIdentity(dataset("phs000001.v1", "pht000001.v1"))
	b := DatasetIdentity(dataset("phs000001.v1", "pht000001.v1"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, uuid.Nil, a)
	assert.Equal(t, uuid.Version(5), a.Version())
	assert.Equal(t, uuid.NewSHA1(NamespaceDatasetIdentity, []byte("phs000001.v1.pht000001.v1")), a)
}

func TestDatasetIdentity_Distinct(t *testing.T) {
	ids := map[uuid.UUID]string{}
	for _, pair := range [][2]string{
		{"phs000001.v1", "pht000001.v1"},
		{"phs000001.v2", "pht000001.v1"},
		{"phs000001.v1", "pht000001.v2"},
		{"phs000001.v1", "pht000002.v1"},
	} {
		id := DatasetIdentity(dataset(pair[0], pair[1]))
		_, dup := ids[id]
		assert.False(t, dup, "collision for %v", pair)
		ids[id] = pair[1]
	}
}

func TestBuild(t *testing.T) {
	dd := readDictionary(t, sourceXML, "phs000001.v1.pht000001.v1.ardpheno.data_dict.xml")

	r := Build(dd, []byte(sourceXML), nil, checksum.New())

	assert.Equal(t, "phs000001.v1", r.Study)
	assert.Equal(t, "pht000001.v1", r.Dataset)
	require.NotNil(t, r.DatasetName)
	assert.Equal(t, "ardpheno", *r.DatasetName)
	assert.Equal(t, DatasetIdentity(dd.Dataset), r.Identity)
	assert.Equal(t, checksum.New().CalculateRaw([]byte(sourceXML)), r.Checksum.Raw)
	assert.Len(t, r.Checksum.Normalized, 64)
	assert.Equal(t, 2, r.Variables)
	assert.Equal(t, 3, r.ValueColumns)
	assert.NotNil(t, r.Warnings)
	assert.Empty(t, r.Warnings)
}

func TestReport_Write(t *testing.T) {
	dd := readDictionary(t, sourceXML, "")
	r := Build(dd, []byte(sourceXML), []string{"Optional columns missing from data dictionary: UNITS"}, checksum.New())
	r.Output = "out.json"

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "{\n    \"source\""))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.Identity.String(), decoded["identity"])
	assert.Nil(t, decoded["dataset_name"])
	assert.Equal(t, "out.json", decoded["output"])
	assert.Equal(t, []interface{}{"Optional columns missing from data dictionary: UNITS"}, decoded["warnings"])
}

func TestReport_WriteKeepsMarkup(t *testing.T) {
	dd := readDictionary(t, sourceXML, "")
	r := Build(dd, []byte(sourceXML), []string{"Variable 00000001 contains duplicate coded field '<1>' & more"}, checksum.New())

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	assert.Contains(t, buf.String(), "'<1>' & more")
	assert.NotContains(t, buf.String(), `\u0026`)
}

func TestPath(t *testing.T) {
	assert.Equal(t, "out/dd.json.report.json", Path("out/dd.json"))
}
