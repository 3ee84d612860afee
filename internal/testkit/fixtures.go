package testkit

import "encoding/json"

// Sheet ids used by the fixtures.
const (
	FundingSheetID    = int64(6566263418187652)
	ProtocolsSheetID  = int64(2385864315490180)
	PerfusionsSheetID = int64(7138414357800836)
)

const (
	DiscoveryProject = "Discovery-Neuromodulator circuit dynamics during foraging"
	Subproject1      = "Subproject 1 Electrophysiological Recordings from NM Neurons During Behavior"
	Subproject2      = "Subproject 2 Molecular Anatomy Cell Types"
	Subproject3      = "Subproject 3 Fiber Photometry Recordings of NM Release During Behavior"
)

// FundingColumns are the Funding sheet titles in sheet order.
var FundingColumns = []string{
	"Project Name", "Subproject", "Project Code", "Funding Institution",
	"Grant Number", "Fundees (PI)", "Investigators",
}

// FundingSheet returns a Funding payload with nine rows, the first one empty.
func FundingSheet() *SheetBuilder {
	const (
		core       = "Person Four, Person Five, Person Six, Person Seven, Person Eight"
		nimh       = "Person Five, Person Nine, Person Ten, Person Seven, Person Eleven"
		photometry = "Person Four, Person Ten, person.twelve@example.com, person.thirteen@example.com, Person Eight"
	)
	return NewSheetBuilder(FundingSheetID, "Funding").
		WithColumns(FundingColumns...).
		AddRow(nil, nil, nil, nil, nil, nil, nil).
		AddRow("Ephys Platform", nil, nil, "Allen Institute", nil, "Person One, Person Two, Person Three", nil).
		AddRow("MSMA Platform", nil, "122-01-001-10", "Allen Institute", nil, "Person Four", nil).
		AddRow(DiscoveryProject, Subproject1, "122-01-001-10", "Allen Institute", nil, core, nil).
		AddRow(DiscoveryProject, Subproject1, "122-01-012-20", "NINDS", "1RF1NS131984", "Person Five, Person Six, Person Eight", "Person Six, Person Eight").
		AddRow(DiscoveryProject, Subproject2, "122-01-001-10", "Allen Institute", nil, core, "Person Seven").
		AddRow(DiscoveryProject, Subproject2, "122-01-020-20", "NIMH", "1R01MH134833", nimh, "Person Seven").
		AddRow(DiscoveryProject, Subproject3, "122-01-001-10", "Allen Institute", nil, core, photometry).
		AddRow(DiscoveryProject, Subproject3, "122-01-020-20", "NIMH", "1R01MH134833", nimh, photometry)
}

// ProtocolsColumns are the Protocols sheet titles in sheet order.
var ProtocolsColumns = []string{
	"Protocol Type", "Procedure name", "Protocol name", "DOI", "Version", "Protocol collection",
}

// ProtocolsSheet returns a Protocols payload with nine filled rows followed
// by four empty ones.
func ProtocolsSheet() *SheetBuilder {
	one := json.Number("1.0")
	b := NewSheetBuilder(ProtocolsSheetID, "Protocols").
		WithColumns(ProtocolsColumns...).
		AddRow("Specimen Procedures", "Immunolabeling", "Immunolabeling of a Whole Mouse Brain", "dx.doi.org/10.17504/protocols.io.ewov1okwylr2/v1", one, nil).
		AddRow("Specimen Procedures", "Delipidation", "Tetrahydrofuran and Dichloromethane Delipidation of a Whole Mouse Brain", "dx.doi.org/10.17504/protocols.io.36wgqj1kxvk5/v1", one, nil).
		AddRow("Specimen Procedures", "Delipidation", "Aqueous (SBiP) Delipidation of a Whole Mouse Brain", "dx.doi.org/10.17504/protocols.io.n2bvj81mwgk5/v1", one, nil).
		AddRow("Specimen Procedures", "Gelation + previous steps", "Whole Mouse Brain Delipidation, Immunolabeling, and Expansion Microscopy", "dx.doi.org/10.17504/protocols.io.n92ldpwjxl5b/v1", one, false).
		AddRow("Surgical Procedures", "Injection Nanoject", "Injection of Viral Tracers by Nanoject V.4", "dx.doi.org/10.17504/protocols.io.bp2l6nr7kgqe/v4", json.Number("4.0"), nil).
		AddRow("Surgical Procedures", "Injection Iontophoresis", "Stereotaxic Surgery for Delivery of Tracers by Iontophoresis V.3", "dx.doi.org/10.17504/protocols.io.bgpvjvn6", json.Number("3.0"), nil).
		AddRow("Surgical Procedures", "Perfusion", "Mouse Cardiac Perfusion Fixation and Brain Collection V.5", "dx.doi.org/10.17504/protocols.io.bg5vjy66", json.Number("5.0"), nil).
		AddRow("Imaging Techniques", "SmartSPIM Imaging", "Imaging cleared mouse brains on SmartSPIM", "dx.doi.org/10.17504/protocols.io.3byl4jo1rlo5/v1", one, nil).
		AddRow("Imaging Techniques", "SmartSPIM setup", "SmartSPIM setup and alignment", "dx.doi.org/10.17504/protocols.io.5jyl8jyb7g2w/v1", one, nil)
	for i := 0; i < 4; i++ {
		b.AddRow(nil, nil, nil, nil, nil, nil)
	}
	return b
}

// PerfusionsColumns are the Perfusions sheet titles in sheet order.
var PerfusionsColumns = []string{
	"subject id", "date", "experimenter", "iacuc protocol",
	"animal weight prior (g)", "Output specimen id(s)", "Postfix solution", "Notes",
}

// IACUCProtocol is the protocol text used by the perfusion fixtures.
const IACUCProtocol = "2109 - Analysis of brain - wide neural circuits in the mouse"

// PerfusionsSheet returns a Perfusions payload with two subjects.
func PerfusionsSheet() *SheetBuilder {
	return NewSheetBuilder(PerfusionsSheetID, "Perfusions").
		WithColumns(PerfusionsColumns...).
		AddRow(json.Number("689418.0"), "2023-10-02", "Person S", IACUCProtocol, json.Number("22.0"), json.Number("689418.0"), "1xPBS", "Good").
		AddRow(json.Number("700001"), "2023-11-15", "Person T", IACUCProtocol, json.Number("24.5"), json.Number("700001"), "1xPBS", nil)
}
