package regrid

import "strings"

// Option flags control exporting and copying of views.
type Option int

const (
	// OptionAddHeaderRow writes the column headers as first row.
	OptionAddHeaderRow Option = 1 << iota
	// OptionSelectionOnly restricts output to the selected cells.
	OptionSelectionOnly
)

func (o Option) Has(option Option) bool {
	return o&option != 0
}

func (o Option) String() string {
	var names []string
	if o.Has(OptionAddHeaderRow) {
		names = append(names, "AddHeaderRow")
	}
	if o.Has(OptionSelectionOnly) {
		names = append(names, "SelectionOnly")
	}
	if len(names) == 0 {
		return "no Option"
	}
	return strings.Join(names, "|")
}

func HasOption(options []Option, option Option) bool {
	for _, o := range options {
		if o.Has(option) {
			return true
		}
	}
	return false
}
