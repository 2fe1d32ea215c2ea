package dictionary

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/unicode/norm"

	"github.com/vvka-141/dbgapdd/internal/accession"
	"github.com/vvka-141/dbgapdd/internal/files/filesystem"
	"github.com/vvka-141/dbgapdd/pkg/dbgap"
)

// Required and optional <variable> sub-elements, searched anywhere below the
// variable node.
const (
	elemName        = "name"
	elemDescription = "description"
	elemType        = "type"
	elemUnit        = "unit"
	elemLogicalMin  = "logical_min"
	elemLogicalMax  = "logical_max"
	elemValue       = "value"
	elemVariable    = "variable"
	elemUniqueKey   = "unique_key"
)

// Reader parses XML data dictionaries.
// A Reader holds no per-document state and is safe for concurrent use.
type Reader struct {
	logger dbgap.Logger
	fs     filesystem.FileSystemProvider
}

// NewReader creates a Reader that reports warnings to logger and reads files
// from the OS filesystem.
func NewReader(logger dbgap.Logger) *Reader {
	return &Reader{logger: logger, fs: filesystem.NewOSFileSystem()}
}

// NewReaderWithFileSystem creates a Reader that opens files through fs.
func NewReaderWithFileSystem(logger dbgap.Logger, fs filesystem.FileSystemProvider) *Reader {
	return &Reader{logger: logger, fs: fs}
}

// ReadFile opens path (gzip-compressed when it ends in .gz) and parses it.
func (r *Reader) ReadFile(path string) (*DataDictionary, error) {
	src, err := filesystem.OpenSource(r.fs, path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return r.Read(src, path)
}

// Read parses one XML data dictionary from src. filename is used only to
// derive the dataset name and may be empty.
//
// Malformed XML is returned as the parser's error, unwrapped. Every other
// failure is an *Error whose Kind is a dbgap sentinel.
func (r *Reader) Read(src io.Reader, filename string) (*DataDictionary, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(src); err != nil {
		return nil, err
	}

	root := doc.Root()
	if root == nil {
		return nil, noRootError()
	}
	if err := checkTopLevel(doc); err != nil {
		return nil, err
	}

	dataset, err := readDataset(root, filename)
	if err != nil {
		return nil, err
	}

	variableNodes := root.SelectElements(elemVariable)
	if len(variableNodes) == 0 {
		return nil, noVariablesError()
	}

	uniqueKeys := make(map[string]bool, len(dataset.UniqueKeys))
	for _, k := range dataset.UniqueKeys {
		uniqueKeys[k] = true
	}

	dd := &DataDictionary{
		Source:    filename,
		Dataset:   dataset,
		Variables: make([]Variable, 0, len(variableNodes)),
	}

	// base accession -> id as first written
	seen := make(map[string]string, len(variableNodes))
	for _, node := range variableNodes {
		v, err := r.readVariable(node, seen)
		if err != nil {
			return nil, err
		}
		v.UniqueKey = uniqueKeys[v.Name]
		dd.Variables = append(dd.Variables, v)
	}

	r.logger.Info("Parsed %d variables from data table %s (study %s)",
		len(dd.Variables), dataset.ID, dataset.StudyID)

	return dd, nil
}

func readDataset(root *etree.Element, filename string) (Dataset, error) {
	var ds Dataset

	rawID, err := requiredAttr(root, NodeDataTable, "id")
	if err != nil {
		return ds, err
	}
	rawStudyID, err := requiredAttr(root, NodeDataTable, "study_id")
	if err != nil {
		return ds, err
	}
	participantSet, err := requiredAttr(root, NodeDataTable, "participant_set")
	if err != nil {
		return ds, err
	}

	if ds.ID, err = accession.Parse(rawID); err != nil {
		return ds, err
	}
	if ds.StudyID, err = accession.Parse(rawStudyID); err != nil {
		return ds, err
	}
	ds.ParticipantSet = participantSet

	if desc := root.SelectElement(elemDescription); desc != nil {
		if text := elementText(desc); text != "" {
			ds.Description = &text
		}
	}

	if filename != "" {
		ds.Name = ParseDatasetName(filepath.Base(filename))
	}

	for _, key := range root.SelectElements(elemUniqueKey) {
		if text := elementText(key); text != "" {
			ds.UniqueKeys = append(ds.UniqueKeys, text)
		}
	}

	return ds, nil
}

func (r *Reader) readVariable(node *etree.Element, seen map[string]string) (Variable, error) {
	var v Variable

	rawID, err := requiredAttr(node, NodeVariable, "id")
	if err != nil {
		return v, err
	}
	id, err := accession.Parse(rawID)
	if err != nil {
		return v, err
	}
	if first, dup := seen[id.Number]; dup {
		return v, duplicateVariableError(rawID, first)
	}
	seen[id.Number] = rawID

	v.RawID = rawID
	v.Accession = id.Number
	v.Version = id.Version

	if v.Name, err = requiredText(node, rawID, elemName); err != nil {
		return v, err
	}
	if v.Description, err = requiredText(node, rawID, elemDescription); err != nil {
		return v, err
	}

	v.Type = optionalText(node, elemType)
	v.Units = optionalText(node, elemUnit)
	v.Min = optionalText(node, elemLogicalMin)
	v.Max = optionalText(node, elemLogicalMax)

	codes := make(map[string]bool)
	for _, valueNode := range node.FindElements(".//" + elemValue) {
		code := valueNode.SelectAttr("code")
		if code == nil {
			e := missingAttributeError(NodeValue, "code")
			e.ID = rawID
			return v, e
		}
		if codes[code.Value] {
			r.logger.Warn("Variable %s contains duplicate coded field '%s'", v.Accession, code.Value)
		}
		codes[code.Value] = true
		v.Values = append(v.Values, EncodedValue{Code: code.Value, Value: elementText(valueNode)})
	}

	return v, nil
}

func requiredAttr(el *etree.Element, node, name string) (string, error) {
	attr := el.SelectAttr(name)
	if attr == nil {
		return "", missingAttributeError(node, name)
	}
	return attr.Value, nil
}

// requiredText returns the text of the first descendant named field.
// An absent node and a node without text are both missing.
func requiredText(node *etree.Element, varID, field string) (string, error) {
	el := node.FindElement(".//" + field)
	if el == nil {
		return "", missingVariableFieldError(varID, field)
	}
	text := elementText(el)
	if text == "" {
		return "", missingVariableFieldError(varID, field)
	}
	return text, nil
}

func optionalText(node *etree.Element, field string) *string {
	el := node.FindElement(".//" + field)
	if el == nil {
		return nil
	}
	text := elementText(el)
	return &text
}

func elementText(el *etree.Element) string {
	return norm.NFC.String(el.Text())
}

// checkTopLevel rejects a second top-level element and top-level text,
// which etree accepts but XML does not allow.
func checkTopLevel(doc *etree.Document) error {
	elements := 0
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			elements++
			if elements > 1 {
				return junkAfterRootError("element <" + t.Tag + ">")
			}
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return junkAfterRootError("text")
			}
		}
	}
	return nil
}

// charsetReader decodes documents that declare a non-UTF-8 encoding,
// e.g. ISO-8859-1 exports.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported XML encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
