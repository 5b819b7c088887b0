package model

// RecordRow is one decoded CSV data row keyed by header column name.
type RecordRow map[string]string

// RecordSet is every data row of one upload in file order.
// Columns is the header row; each row carries exactly these keys.
type RecordSet struct {
	Columns []string    `json:"columns"`
	Rows    []RecordRow `json:"rows"`
}

// Len returns the number of data rows.
func (s RecordSet) Len() int {
	return len(s.Rows)
}

// UploadResult is returned by the upload pipeline. Both fields are always populated together.
type UploadResult struct {
	UserData       []RecordRow `json:"userData"`
	Recommendation string      `json:"recommendation"`
}
