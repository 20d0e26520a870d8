package book

// Record is the resolved, cacheable result for one ISBN.
type Record struct {
	ISBN           string          `json:"isbn" yaml:"isbn"`
	Title          string          `json:"title" yaml:"title"`
	Author         string          `json:"author" yaml:"author"`
	Image          string          `json:"image,omitempty" yaml:"image,omitempty"`
	Classification *Classification `json:"classification,omitempty" yaml:"classification,omitempty"`
	Subjects       []string        `json:"subjects" yaml:"subjects"`
	PublishDate    string          `json:"pub_date,omitempty" yaml:"pub_date,omitempty"`
	Binding        string          `json:"binding,omitempty" yaml:"binding,omitempty"`
}

// Classification is a Dewey code plus its FAST subject headings.
type Classification struct {
	DeweyCode   string   `json:"ddc" yaml:"ddc"`
	SubjectTags []string `json:"fast_subjects" yaml:"fast_subjects"`
}

// Complete reports whether the record has the fields required for caching.
func (r *Record) Complete() bool {
	return r != nil && r.Title != "" && r.Author != ""
}
