package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dbgapdd/internal/config"
	"github.com/vvka-141/dbgapdd/internal/report"
	"github.com/vvka-141/dbgapdd/pkg/dbgap"
)

const ageFile = "phs000001.v1.pht000001.v1.Age.data_dict.xml"

const ageXML = `<?xml version="1.0" encoding="UTF-8"?>
<data_table id="pht000001.v1" study_id="phs000001.v1" participant_set="1">
  <description>Age of participants</description>
  <variable id="phv00000001.v1">
    <name>AGE</name>
    <description>Age at visit</description>
    <type>encoded value</type>
    <value code="1">Young</value>
    <value code="2">Old</value>
  </variable>
  <variable id="phv00000002.v1">
    <name>VISIT</name>
    <description>Visit number</description>
    <type>integer</type>
  </variable>
</data_table>`

const duplicateXML = `<?xml version="1.0" encoding="UTF-8"?>
<data_table id="pht000002.v1" study_id="phs000001.v1" participant_set="1">
  <variable id="phv00000001.v1">
    <name>AGE</name>
    <description>Age</description>
  </variable>
  <variable id="phv00000001.v2">
    <name>AGE2</name>
    <description>Age again</description>
  </variable>
</data_table>`

func resetConvertFlags() {
	convertFlags = convertFlagValues{}
}

func resetValidateFlags() {
	validateFlags = validateFlagValues{}
}

// isolate runs the test in an empty working directory with no dbgapdd
// environment set.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	for _, env := range []string{config.EnvConfig, config.EnvVerbosity} {
		t.Setenv(env, "")
	}
	t.Setenv(config.EnvMissingValue, "")
	require.NoError(t, os.Unsetenv(config.EnvMissingValue))
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readRecords(t *testing.T, data []byte) []map[string]interface{} {
	t.Helper()
	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

func TestConvertCmd_ArgsValidation(t *testing.T) {
	resetConvertFlags()
	err := convertCmd.Args(convertCmd, []string{})
	require.Error(t, err)
	assert.Equal(t, dbgap.ExitUsageError, dbgap.ExitCodeForError(err), err.Error())
	assert.Contains(t, err.Error(), "missing required argument: <dd.xml>")
}

func TestConvertCmd_LegacyFlagSatisfiesArgs(t *testing.T) {
	resetConvertFlags()
	defer resetConvertFlags()
	convertFlags.ddXML = ageFile

	assert.NoError(t, convertCmd.Args(convertCmd, []string{}))
}

func TestValidateCmd_ArgsValidation(t *testing.T) {
	err := validateCmd.Args(validateCmd, []string{})
	require.Error(t, err)
	assert.Equal(t, dbgap.ExitUsageError, dbgap.ExitCodeForError(err))

	err = validateCmd.Args(validateCmd, []string{"a", "b"})
	require.Error(t, err)
	assert.Equal(t, dbgap.ExitUsageError, dbgap.ExitCodeForError(err))
}

func TestConvertCmd_SingleFile(t *testing.T) {
	dir := isolate(t)
	resetConvertFlags()
	src := writeFile(t, filepath.Join(dir, ageFile), ageXML)
	convertFlags.output = filepath.Join(dir, "out", "age.json")

	require.NoError(t, runConvert(convertCmd, []string{src}))

	content, err := os.ReadFile(convertFlags.output)
	require.NoError(t, err)
	records := readRecords(t, content)
	require.Len(t, records, 2)
	assert.Equal(t, "00000001", records[0]["VARIABLE_ACC"])
	assert.Equal(t, "000001", records[0]["STUDY_ACC"])
	assert.Equal(t, map[string]interface{}{"1": "Young", "2": "Old"}, records[0]["ENCODED_VALUES"])
	assert.Nil(t, records[1]["ENCODED_VALUES"])
	assert.Nil(t, records[1]["UNITS"])
}

func TestConvertCmd_LegacyFlags(t *testing.T) {
	dir := isolate(t)
	resetConvertFlags()
	convertFlags.ddXML = writeFile(t, filepath.Join(dir, ageFile), ageXML)
	convertFlags.output = filepath.Join(dir, "age.json")

	require.NoError(t, runConvert(convertCmd, nil))
	assert.FileExists(t, convertFlags.output)
}

func TestConvertCmd_Stdout(t *testing.T) {
	dir := isolate(t)
	resetConvertFlags()
	src := writeFile(t, filepath.Join(dir, ageFile), ageXML)

	var out bytes.Buffer
	convertCmd.SetOut(&out)
	defer convertCmd.SetOut(nil)

	require.NoError(t, runConvert(convertCmd, []string{src}))
	assert.Len(t, readRecords(t, out.Bytes()), 2)
}

func TestConvertCmd_Directory(t *testing.T) {
	dir := isolate(t)
	resetConvertFlags()
	in := filepath.Join(dir, "in")
	writeFile(t, filepath.Join(in, ageFile), ageXML)
	writeFile(t, filepath.Join(in, "phs000001.v1.pht000003.v1.Visit.data_dict.xml"),
		`<data_table id="pht000003.v1" study_id="phs000001.v1" participant_set="1">
  <variable id="phv00000009.v1"><name>V</name><description>Visit</description><value code="1">First</value></variable>
</data_table>`)
	writeFile(t, filepath.Join(in, "notes.txt"), "ignored")

	convertFlags.outputDir = filepath.Join(dir, "json")
	convertFlags.report = true

	require.NoError(t, runConvert(convertCmd, []string{in}))

	assert.FileExists(t, filepath.Join(dir, "json", "phs000001.v1.pht000001.v1.Age.data_dict.json"))
	assert.FileExists(t, filepath.Join(dir, "json", "phs000001.v1.pht000003.v1.Visit.data_dict.json"))

	content, err := os.ReadFile(report.Path(filepath.Join(dir, "json", "phs000001.v1.pht000001.v1.Age.data_dict.json")))
	require.NoError(t, err)
	var r report.Report
	require.NoError(t, json.Unmarshal(content, &r))
	assert.Equal(t, "pht000001.v1", r.Dataset)
	assert.Equal(t, 2, r.Variables)
}

func TestConvertCmd_MultipleInputsRequireOutputDir(t *testing.T) {
	dir := isolate(t)
	resetConvertFlags()
	a := writeFile(t, filepath.Join(dir, "a.xml"), ageXML)
	b := writeFile(t, filepath.Join(dir, "b.xml"), ageXML)

	err := runConvert(convertCmd, []string{a, b})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-dir is required")
	assert.Equal(t, dbgap.ExitUsageError, dbgap.ExitCodeForError(err))
}

func TestConvertCmd_OutputFlagsExclusive(t *testing.T) {
	isolate(t)
	resetConvertFlags()
	convertFlags.output = "a.json"
	convertFlags.outputDir = "json"

	err := runConvert(convertCmd, []string{ageFile})
	require.Error(t, err)
	assert.Equal(t, dbgap.ExitUsageError, dbgap.ExitCodeForError(err))
}

func TestConvertCmd_NonexistentPath(t *testing.T) {
	isolate(t)
	resetConvertFlags()

	err := runConvert(convertCmd, []string{"/nonexistent/path/abc123.xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestConvertCmd_EmptyDirectory(t *testing.T) {
	dir := isolate(t)
	resetConvertFlags()
	convertFlags.outputDir = filepath.Join(dir, "json")

	err := runConvert(convertCmd, []string{t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data dictionaries")
}

func TestConvertCmd_DuplicateIdentifierExitCode(t *testing.T) {
	dir := isolate(t)
	resetConvertFlags()
	src := writeFile(t, filepath.Join(dir, "dup.xml"), duplicateXML)
	convertFlags.output = filepath.Join(dir, "dup.json")

	err := runConvert(convertCmd, []string{src})
	require.Error(t, err)
	assert.Equal(t, dbgap.ExitDuplicateIdentifier, dbgap.ExitCodeForError(err))
	assert.NoFileExists(t, convertFlags.output)
}

func TestConvertCmd_MalformedExitCode(t *testing.T) {
	dir := isolate(t)
	resetConvertFlags()
	src := writeFile(t, filepath.Join(dir, "bad.xml"), "<data_table id=")
	convertFlags.output = filepath.Join(dir, "bad.json")

	err := runConvert(convertCmd, []string{src})
	require.Error(t, err)
	assert.Equal(t, dbgap.ExitMalformedInput, dbgap.ExitCodeForError(err))
}

func TestConvertCmd_ProjectConfig(t *testing.T) {
	dir := isolate(t)
	resetConvertFlags()
	src := writeFile(t, filepath.Join(dir, ageFile), ageXML)
	writeFile(t, filepath.Join(dir, config.ConfigFileName), `output_fields:
  - VARIABLE_ACC
  - VARNAME
  - UNITS
missing_value: "NA"
`)
	convertFlags.output = filepath.Join(dir, "age.json")

	require.NoError(t, runConvert(convertCmd, []string{src}))

	content, err := os.ReadFile(convertFlags.output)
	require.NoError(t, err)
	records := readRecords(t, content)
	require.Len(t, records, 2)
	assert.Len(t, records[0], 3)
	assert.Equal(t, "AGE", records[0]["VARNAME"])
	assert.Equal(t, "NA", records[0]["UNITS"])
}

func TestConvertCmd_DotEnv(t *testing.T) {
	dir := isolate(t)
	resetConvertFlags()
	src := writeFile(t, filepath.Join(dir, ageFile), ageXML)
	writeFile(t, filepath.Join(dir, ".env"), config.EnvMissingValue+"=unknown\n")
	convertFlags.output = filepath.Join(dir, "age.json")

	require.NoError(t, runConvert(convertCmd, []string{src}))

	content, err := os.ReadFile(convertFlags.output)
	require.NoError(t, err)
	records := readRecords(t, content)
	assert.Equal(t, "unknown", records[1]["UNITS"])
}

func TestConvertCmd_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	resetConvertFlags()
	src := writeFile(t, filepath.Join(dir, ageFile), ageXML)
	t.Setenv(config.EnvConfig, filepath.Join(dir, "missing.yaml"))

	err := runConvert(convertCmd, []string{src})
	require.Error(t, err)
	assert.Equal(t, dbgap.ExitConfigError, dbgap.ExitCodeForError(err))
}

func TestValidateCmd_Summary(t *testing.T) {
	dir := isolate(t)
	resetValidateFlags()
	src := writeFile(t, filepath.Join(dir, ageFile), ageXML)

	var out bytes.Buffer
	validateCmd.SetOut(&out)
	defer validateCmd.SetOut(nil)

	require.NoError(t, runValidate(validateCmd, []string{src}))
	assert.Contains(t, out.String(), "is valid")
	assert.Contains(t, out.String(), "pht000001.v1 (Age)")
	assert.Contains(t, out.String(), "Variables:     2")
}

func TestValidateCmd_JSON(t *testing.T) {
	dir := isolate(t)
	resetValidateFlags()
	defer resetValidateFlags()
	src := writeFile(t, filepath.Join(dir, ageFile), ageXML)
	validateFlags.json = true

	var out bytes.Buffer
	validateCmd.SetOut(&out)
	defer validateCmd.SetOut(nil)

	require.NoError(t, runValidate(validateCmd, []string{src}))

	var r report.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &r))
	assert.Equal(t, "phs000001.v1", r.Study)
	assert.Equal(t, 2, r.Variables)
	assert.Equal(t, 2, r.ValueColumns)
	assert.NotEmpty(t, r.Checksum.Raw)
}

func TestValidateCmd_WritesNothing(t *testing.T) {
	dir := isolate(t)
	resetValidateFlags()
	src := writeFile(t, filepath.Join(dir, ageFile), ageXML)

	var out bytes.Buffer
	validateCmd.SetOut(&out)
	defer validateCmd.SetOut(nil)

	require.NoError(t, runValidate(validateCmd, []string{src}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
