package srerrors

import (
	"sort"
	"strings"

	"github.com/goliatone/go-addressform/pkg/i18n"
	"github.com/goliatone/go-addressform/pkg/specifications"
)

// AnnotationSuffix marks messages produced for the live region when
// annotation is enabled, to tell them apart from inline errors.
const AnnotationSuffix = "-sr"

// Record is one ordered, translated error.
type Record struct {
	Field        string `json:"field"`
	ErrorMessage string `json:"errorMessage"`
	ErrorCode    string `json:"errorCode,omitempty"`
}

// LabelResolver returns the translated label prepended to generic messages
// such as "Enter the %{label}". An empty result leaves the label blank.
type LabelResolver func(field string, t i18n.Translator, labels map[string]string) string

// SortOptions configures SortErrorsByLayout.
type SortOptions struct {
	// Layout orders the output. Fields missing from it sort first.
	Layout []string
	// Translator resolves keys. Nil falls back to i18n.KeyTranslator.
	Translator i18n.Translator
	// Labels holds country-specific label keys passed to LabelResolver.
	Labels map[string]string
	// LabelResolver maps a field to its label. Nil yields empty labels.
	LabelResolver LabelResolver
	// Annotate appends AnnotationSuffix to every message.
	Annotate bool
}

// SortErrorsByLayout translates errors and orders them by layout position.
// Zero entries are skipped. Fields absent from the layout get index -1 and
// therefore precede every laid-out field; ties keep field-name order.
func SortErrorsByLayout(errors map[string]Entry, opts SortOptions) []Record {
	if len(errors) == 0 {
		return []Record{}
	}

	t := opts.Translator
	if t == nil {
		t = i18n.KeyTranslator
	}
	suffix := ""
	if opts.Annotate {
		suffix = AnnotationSuffix
	}

	fields := make([]string, 0, len(errors))
	for field, entry := range errors {
		if entry.IsZero() {
			continue
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	records := make([]Record, 0, len(fields))
	for _, field := range fields {
		entry := errors[field]
		records = append(records, Record{
			Field:        field,
			ErrorMessage: message(field, entry, t, opts) + suffix,
			ErrorCode:    entry.ErrorCode(),
		})
	}

	if opts.Layout != nil {
		index := layoutIndex(opts.Layout)
		sort.SliceStable(records, func(i, j int) bool {
			return position(index, records[i].Field) < position(index, records[j].Field)
		})
	}
	return records
}

func message(field string, entry Entry, t i18n.Translator, opts SortOptions) string {
	if entry.Kind == KindSecuredField {
		return entry.Text
	}

	label := ""
	if opts.LabelResolver != nil {
		label = opts.LabelResolver(field, t, opts.Labels)
	}
	values := map[string]any{"label": label}
	if entry.Kind == KindStructured {
		values["format"] = entry.Format
	}
	return t.Get(entry.Key, values)
}

func layoutIndex(layout []string) map[string]int {
	index := make(map[string]int, len(layout))
	for i, field := range layout {
		if _, seen := index[field]; !seen {
			index[field] = i
		}
	}
	return index
}

func position(index map[string]int, field string) int {
	if i, ok := index[field]; ok {
		return i
	}
	return -1
}

// AddressLabelResolver labels address fields using the country-specific key
// when one exists. Fields outside the address schema get no label.
func AddressLabelResolver(field string, t i18n.Translator, labels map[string]string) string {
	if t == nil || !isAddressField(field) {
		return ""
	}
	key := field
	if custom := strings.TrimSpace(labels[field]); custom != "" {
		key = custom
	}
	return t.Get(key, nil)
}

func isAddressField(field string) bool {
	for _, f := range specifications.AddressSchema {
		if f == field {
			return true
		}
	}
	return false
}

// Messages extracts the translated messages in order.
func Messages(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ErrorMessage)
	}
	return out
}
