package query

import "smartsheetsvc/domain/records"

// FilterProtocols keeps records whose protocol name equals protocolName
// (case sensitive), or every record when protocolName is nil.
func FilterProtocols(recs []records.ProtocolsModel, protocolName *string) []records.ProtocolsModel {
	out := make([]records.ProtocolsModel, 0, len(recs))
	for _, r := range recs {
		if protocolName == nil || equals(r.ProtocolName, *protocolName) {
			out = append(out, r)
		}
	}
	return out
}
