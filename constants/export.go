package constants

// ExportColumns is the fixed seven-column schema the tabular exporter
// consumes. Order matters: it is the column order of the workbook.
var ExportColumns = []string{
	"document_id",
	"date",
	"submitter",
	"department",
	"item_name",
	"item_amount",
	"total_amount",
}
