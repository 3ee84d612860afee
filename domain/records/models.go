package records

// Record schemas served by the API. The json tag of each field is its
// column alias: the exact column title it binds to and the key it is
// served under.

// FundingModel is a row of the Funding sheet.
type FundingModel struct {
	ProjectName        Field[string] `json:"Project Name"`
	Subproject         Field[string] `json:"Subproject"`
	ProjectCode        Field[string] `json:"Project Code"`
	FundingInstitution Field[string] `json:"Funding Institution"`
	GrantNumber        Field[string] `json:"Grant Number"`
	Fundees            Field[string] `json:"Fundees (PI)"`
	Investigators      Field[string] `json:"Investigators"`
}

// ProtocolsModel is a row of the Protocols sheet.
type ProtocolsModel struct {
	ProtocolType       Field[string]  `json:"Protocol Type"`
	ProcedureName      Field[string]  `json:"Procedure name"`
	ProtocolName       Field[string]  `json:"Protocol name"`
	DOI                Field[string]  `json:"DOI"`
	Version            Field[Decimal] `json:"Version"`
	ProtocolCollection Field[bool]    `json:"Protocol collection"`
}

// PerfusionsModel is a row of the Perfusions sheet.
type PerfusionsModel struct {
	SubjectID         Field[Decimal] `json:"subject id"`
	Date              Field[Date]    `json:"date"`
	Experimenter      Field[string]  `json:"experimenter"`
	IACUCProtocol     Field[string]  `json:"iacuc protocol"`
	AnimalWeightPrior Field[Decimal] `json:"animal weight prior (g)"`
	OutputSpecimenID  Field[Decimal] `json:"Output specimen id(s)"`
	PostfixSolution   Field[string]  `json:"Postfix solution"`
	Notes             Field[string]  `json:"Notes"`
}
