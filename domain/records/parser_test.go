package records

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"smartsheetsvc/domain/sheet"
	"smartsheetsvc/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exampleModel struct {
	ProjectName        Field[string] `json:"Project Name"`
	ProjectCode        Field[string] `json:"Project Code"`
	FundingInstitution Field[string] `json:"Funding Institution"`
	GrantNumber        Field[string] `json:"Grant Number"`
	Investigators      Field[string] `json:"Investigators"`
}

func TestParseSheet_ExampleSheet(t *testing.T) {
	raw, err := os.ReadFile("../sheet/testdata/example_sheet.json")
	require.NoError(t, err)

	outcomes, err := ParseSheet[exampleModel](raw, true)
	require.NoError(t, err)

	expected := []exampleModel{
		{
			ProjectName:        Value("AIND Scientific Activities"),
			ProjectCode:        Value("122-01-001-10"),
			FundingInstitution: Value("Allen Institute"),
			Investigators:      Value("person.two@acme.org, J Smith, John Doe II"),
		},
		{
			ProjectCode:        Value("122-01-001-10"),
			FundingInstitution: Value("Allen Institute"),
			Investigators:      Value("John Doe, person.one@acme.org"),
		},
		{
			ProjectName:        Value("v1omFISH"),
			ProjectCode:        Value("121-01-010-10"),
			FundingInstitution: Value("Allen Institute"),
			Investigators:      Value("person.one@acme.org, Jane Doe"),
		},
	}
	assert.Equal(t, expected, Records(outcomes))
	assert.Empty(t, Degraded(outcomes))
}

func TestParseSheet_Funding(t *testing.T) {
	outcomes, err := ParseSheet[FundingModel](testkit.FundingSheet().Build(), true)
	require.NoError(t, err)
	require.Len(t, outcomes, 9)

	recs := Records(outcomes)
	assert.Equal(t, FundingModel{}, recs[0])
	assert.Equal(t, FundingModel{
		ProjectName:        Value("MSMA Platform"),
		ProjectCode:        Value("122-01-001-10"),
		FundingInstitution: Value("Allen Institute"),
		Fundees:            Value("Person Four"),
	}, recs[2])

	grant, ok := recs[4].GrantNumber.Get()
	require.True(t, ok)
	assert.Equal(t, "1RF1NS131984", grant)
	assert.True(t, recs[5].GrantNumber.IsNull())
}

func TestParseSheet_Perfusions(t *testing.T) {
	outcomes, err := ParseSheet[PerfusionsModel](testkit.PerfusionsSheet().Build(), true)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	expected := PerfusionsModel{
		SubjectID:         Value(MustDecimal("689418.0")),
		Date:              Value(NewDate(2023, 10, 2)),
		Experimenter:      Value("Person S"),
		IACUCProtocol:     Value(testkit.IACUCProtocol),
		AnimalWeightPrior: Value(MustDecimal("22.0")),
		OutputSpecimenID:  Value(MustDecimal("689418.0")),
		PostfixSolution:   Value("1xPBS"),
		Notes:             Value("Good"),
	}
	assert.Equal(t, expected, outcomes[0].Record)
	assert.True(t, outcomes[1].Record.Notes.IsNull())
}

func TestParseSheet_ProtocolsBoolAndDecimal(t *testing.T) {
	outcomes, err := ParseSheet[ProtocolsModel](testkit.ProtocolsSheet().Build(), true)
	require.NoError(t, err)
	require.Len(t, outcomes, 13)

	recs := Records(outcomes)
	collection, ok := recs[3].ProtocolCollection.Get()
	require.True(t, ok)
	assert.False(t, collection)

	version, ok := recs[4].Version.Get()
	require.True(t, ok)
	assert.Equal(t, "4.0", version.String())

	for _, empty := range recs[9:] {
		assert.Equal(t, ProtocolsModel{}, empty)
	}
}

func invalidVersionSheet() []byte {
	return testkit.NewSheetBuilder(1, "Protocols").
		WithColumns(testkit.ProtocolsColumns...).
		AddRow("Specimen Procedures", "Immunolabeling", "Good row", "doi-1", json.Number("1.0"), true).
		AddRow("Specimen Procedures", "Delipidation", "Legacy row", "doi-2", "v1", nil).
		Build()
}

func TestParseSheet_StrictRejectsInvalidRow(t *testing.T) {
	outcomes, err := ParseSheet[ProtocolsModel](invalidVersionSheet(), true)
	require.Error(t, err)
	assert.Nil(t, outcomes)

	var verr *RecordValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Row)
	assert.Equal(t, 2, verr.RowNumber)
	assert.Equal(t, "Version", verr.Field)
	assert.Equal(t, "Version", verr.Alias)
	assert.Equal(t, "v1", verr.Value)
	assert.Contains(t, verr.Error(), "sheet row 2")
}

func TestParseSheet_LenientAdmitsUncheckedRecord(t *testing.T) {
	outcomes, err := ParseSheet[ProtocolsModel](invalidVersionSheet(), false)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.True(t, outcomes[0].Checked())
	assert.False(t, outcomes[1].Checked())
	require.Len(t, Degraded(outcomes), 1)
	assert.Equal(t, "Version", outcomes[1].Degraded.Field)

	rec := outcomes[1].Record
	_, ok := rec.Version.Get()
	assert.False(t, ok)
	raw, ok := rec.Version.Raw()
	require.True(t, ok)
	assert.Equal(t, "v1", raw)

	name, ok := rec.ProtocolName.Get()
	require.True(t, ok)
	assert.Equal(t, "Legacy row", name)

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Protocol Type": "Specimen Procedures",
		"Procedure name": "Delipidation",
		"Protocol name": "Legacy row",
		"DOI": "doi-2",
		"Version": "v1",
		"Protocol collection": null
	}`, string(out))
}

func TestParse_LenientKeepsRawNumbersInStringFields(t *testing.T) {
	rows := []sheet.ProjectedRow{{"Project Name": json.Number("42"), "Subproject": "A"}}

	_, err := Parse[FundingModel](rows, true)
	require.Error(t, err)

	outcomes, err := Parse[FundingModel](rows, false)
	require.NoError(t, err)
	rec := outcomes[0].Record
	raw, ok := rec.ProjectName.Raw()
	require.True(t, ok)
	assert.Equal(t, json.Number("42"), raw)
	assert.Equal(t, "42", rec.ProjectName.String())
}

func TestParse_IgnoresUnknownKeysAndMissingAliases(t *testing.T) {
	rows := []sheet.ProjectedRow{{"Unrelated": "x", "Project Name": "P"}}

	outcomes, err := Parse[FundingModel](rows, true)
	require.NoError(t, err)
	assert.Equal(t, FundingModel{ProjectName: Value("P")}, outcomes[0].Record)
}

func TestParse_RejectsNonRecordTypes(t *testing.T) {
	_, err := Parse[string](nil, true)
	assert.Error(t, err)

	type plain struct {
		Name string `json:"Name"`
	}
	_, err = Parse[plain](nil, true)
	assert.Error(t, err)
}

func TestRecordJSON_AliasOrderAndNulls(t *testing.T) {
	out, err := json.Marshal(FundingModel{ProjectName: Value("MSMA Platform")})
	require.NoError(t, err)
	assert.Equal(t,
		`{"Project Name":"MSMA Platform","Subproject":null,"Project Code":null,"Funding Institution":null,"Grant Number":null,"Fundees (PI)":null,"Investigators":null}`,
		string(out))

	out, err = json.Marshal(PerfusionsModel{SubjectID: Value(MustDecimal("689418.0")), Date: Value(NewDate(2023, 10, 2))})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"subject id":"689418.0","date":"2023-10-02"`)
}

// Serializing a parsed record gives back the projected cell values for every
// declared alias. Decimals come back as their text.
func TestParseSheet_RoundTripPreservesValues(t *testing.T) {
	payloads := map[string][]byte{
		"funding":    testkit.FundingSheet().Build(),
		"protocols":  testkit.ProtocolsSheet().Build(),
		"perfusions": testkit.PerfusionsSheet().Build(),
	}

	for name, raw := range payloads {
		t.Run(name, func(t *testing.T) {
			fields, err := sheet.Decode(raw)
			require.NoError(t, err)
			projected, err := sheet.Project(fields)
			require.NoError(t, err)

			var encoded [][]byte
			switch name {
			case "funding":
				encoded = encodeAll[FundingModel](t, projected)
			case "protocols":
				encoded = encodeAll[ProtocolsModel](t, projected)
			case "perfusions":
				encoded = encodeAll[PerfusionsModel](t, projected)
			}

			for i, out := range encoded {
				dec := json.NewDecoder(bytes.NewReader(out))
				dec.UseNumber()
				var got map[string]any
				require.NoError(t, dec.Decode(&got))
				for alias, value := range got {
					want := projected[i][alias]
					if n, ok := want.(json.Number); ok {
						want = n.String()
					}
					assert.Equal(t, want, value, "row %d alias %q", i, alias)
				}
			}
		})
	}
}

func encodeAll[T any](t *testing.T, rows []sheet.ProjectedRow) [][]byte {
	t.Helper()
	outcomes, err := Parse[T](rows, true)
	require.NoError(t, err)

	var out [][]byte
	for _, rec := range Records(outcomes) {
		b, err := json.Marshal(rec)
		require.NoError(t, err)
		out = append(out, b)
	}
	return out
}

func TestAliasesAndValues(t *testing.T) {
	aliases, err := Aliases[FundingModel]()
	require.NoError(t, err)
	assert.Equal(t, testkit.FundingColumns, aliases)

	values, err := Values(ProtocolsModel{ProtocolName: Value("P"), Version: Unchecked[Decimal]("v1")})
	require.NoError(t, err)
	assert.Equal(t, []any{nil, nil, "P", nil, "v1", nil}, values)
}
