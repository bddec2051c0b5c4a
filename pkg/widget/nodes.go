package widget

import "encoding/xml"

// Param is a Galaxy <param> element.
type Param struct {
	XMLName    xml.Name `xml:"param"`
	Name       string   `xml:"name,attr"`
	Type       string   `xml:"type,attr"`
	Format     string   `xml:"format,attr,omitempty"`
	Value      *string  `xml:"value,attr,omitempty"`
	TrueValue  string   `xml:"truevalue,attr,omitempty"`
	FalseValue string   `xml:"falsevalue,attr,omitempty"`
	Checked    string   `xml:"checked,attr,omitempty"`
	Optional   string   `xml:"optional,attr,omitempty"`
	Label      string   `xml:"label,attr,omitempty"`
	Help       *string  `xml:"help,attr,omitempty"`
	Options    []Option
}

// Option is one <option> of a select param.
type Option struct {
	XMLName  xml.Name `xml:"option"`
	Value    string   `xml:"value,attr"`
	Selected string   `xml:"selected,attr,omitempty"`
	Text     string   `xml:",chardata"`
}

// Conditional is a Galaxy <conditional>: a selector and one <when> per value.
type Conditional struct {
	XMLName  xml.Name `xml:"conditional"`
	Name     string   `xml:"name,attr"`
	Selector Param
	Whens    []When
}

// When holds the inputs shown for one selector value.
type When struct {
	XMLName xml.Name `xml:"when"`
	Value   string   `xml:"value,attr"`
	Comment string   `xml:",comment"`
	Input   any
}

// Repeat is a Galaxy <repeat> group.
type Repeat struct {
	XMLName  xml.Name `xml:"repeat"`
	Name     string   `xml:"name,attr"`
	Title    string   `xml:"title,attr"`
	Children []any
}
