package logging

// Standardized field names for structured logging.
const (
	FieldFile         = "file_path"
	FieldOperation    = "operation"
	FieldError        = "error"
	FieldCount        = "count"
	FieldDelimiter    = "delimiter"
	FieldInputFile    = "input_file"
	FieldOutputFile   = "output_file"
	FieldProjectID    = "project_id"
	FieldHouseID      = "house_id"
	FieldTotalAmount  = "total_amount"
	FieldTotalDevices = "total_devices"
	FieldFormat       = "format"
	FieldLine         = "line"
)
