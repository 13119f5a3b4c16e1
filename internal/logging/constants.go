package logging

// Field names shared by every component so log output stays filterable.
const (
	FieldFile        = "file_path"
	FieldRow         = "row"
	FieldLine        = "line"
	FieldCycle       = "cycle"
	FieldCategory    = "category"
	FieldPattern     = "pattern"
	FieldStartDay    = "cycle_start_day"
	FieldCount       = "count"
	FieldFormat      = "format"
	FieldDelimiter   = "delimiter"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldComponent   = "component"
	FieldDescription = "description"
)
