// Package dictionary reads dbGaP XML data dictionaries.
//
// # Overview
//
// A dbGaP data dictionary describes the variables of one dataset (data table):
//
//	<data_table id="pht000001.v1" study_id="phs000001.v1" participant_set="1">
//	  <description>Age-related eye disease study phenotypes</description>
//	  <variable id="phv00000001.v1">
//	    <name>AGE</name>
//	    <description>Age at visit</description>
//	    <type>integer</type>
//	    <value code="1">Young</value>
//	    <value code="2">Old</value>
//	  </variable>
//	</data_table>
//
// Reader.Read walks the document and builds an immutable DataDictionary: the
// dataset-level metadata plus one Variable per <variable> node, in document
// order. Accession ids are validated and split with the accession package.
//
// # Tabular View
//
// Downstream checks and the JSON reformatter work over DataDictionary.Table,
// a column-oriented view using the dbGaP column vocabulary (VARIABLE_ACC,
// VARNAME, ...). Encoded values are stored as ordered (code, value) pairs on
// the Variable; only the Table renders them as "code=value" cells named
// VALUES, X__1, X__2, ...
//
// # Failure Policy
//
// Parsing is fail-fast: the first structural violation aborts the read and no
// partial dictionary is returned. Malformed XML errors from the parser are
// returned unchanged. Duplicate value codes within one variable are only
// logged as warnings.
package dictionary
