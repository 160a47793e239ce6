package simpleexcel

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

const (
	SectionDirectionHorizontal = "horizontal"
	SectionDirectionVertical   = "vertical"
)

// ReportTemplate is the YAML layout of a workbook.
type ReportTemplate struct {
	Sheets []SheetTemplate `yaml:"sheets"`
}

// SheetTemplate is one sheet of the layout.
type SheetTemplate struct {
	Name     string          `yaml:"name"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig is a block of rows in a sheet: an optional title, an
// optional header row and one row per bound item.
type SectionConfig struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Data        interface{}    `yaml:"-"`
	ShowHeader  bool           `yaml:"show_header"`
	Direction   string         `yaml:"direction"`
	Position    string         `yaml:"position"`
	TitleStyle  *StyleTemplate `yaml:"title_style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	DataStyle   *StyleTemplate `yaml:"data_style"`
	Columns     []ColumnConfig `yaml:"columns"`
}

// ColumnConfig maps a struct field or map key onto a column.
type ColumnConfig struct {
	FieldName string  `yaml:"field_name"`
	Header    string  `yaml:"header"`
	Width     float64 `yaml:"width"`
	NumFmt    string  `yaml:"num_fmt"`
}

type StyleTemplate struct {
	Font   *FontTemplate `yaml:"font"`
	Fill   *FillTemplate `yaml:"fill"`
	Border bool          `yaml:"border"`
	Wrap   bool          `yaml:"wrap"`
}

type FontTemplate struct {
	Bold  bool    `yaml:"bold"`
	Size  float64 `yaml:"size"`
	Color string  `yaml:"color"`
}

type FillTemplate struct {
	Color string `yaml:"color"`
}

// DataExporter renders bound data into a workbook following a ReportTemplate.
type DataExporter struct {
	template *ReportTemplate
	data     map[string]interface{}
	titles   map[string]string
	sheets   []*SheetBuilder
}

func NewDataExporter() *DataExporter {
	return &DataExporter{
		data:   make(map[string]interface{}),
		titles: make(map[string]string),
	}
}

// NewDataExporterFromYaml parses a layout document.
func NewDataExporterFromYaml(data []byte) (*DataExporter, error) {
	var tmpl ReportTemplate
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(tmpl.Sheets) == 0 {
		return nil, fmt.Errorf("decode yaml: layout has no sheets")
	}
	e := NewDataExporter()
	e.template = &tmpl
	return e, nil
}

func NewDataExporterFromYamlFile(path string) (*DataExporter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open yaml file: %w", err)
	}
	return NewDataExporterFromYaml(data)
}

// AddSheet starts a programmatic sheet. These are rendered before the
// template sheets.
func (e *DataExporter) AddSheet(name string) *SheetBuilder {
	sb := &SheetBuilder{exporter: e, name: name}
	e.sheets = append(e.sheets, sb)
	return sb
}

// BindSectionData binds a slice of structs or maps to a template section.
func (e *DataExporter) BindSectionData(id string, data interface{}) *DataExporter {
	e.data[id] = data
	return e
}

// BindSectionTitle overrides the title of a template section.
func (e *DataExporter) BindSectionTitle(id, title string) *DataExporter {
	e.titles[id] = title
	return e
}

// BuildExcel creates the workbook in memory. The caller closes it.
func (e *DataExporter) BuildExcel() (*excelize.File, error) {
	f := excelize.NewFile()
	first := true
	useSheet := func(name string) error {
		if first {
			first = false
			return f.SetSheetName("Sheet1", name)
		}
		if idx, _ := f.GetSheetIndex(name); idx == -1 {
			if _, err := f.NewSheet(name); err != nil {
				return err
			}
		}
		return nil
	}

	for _, sb := range e.sheets {
		if err := useSheet(sb.name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", sb.name, err)
		}
		if err := e.renderSections(f, sb.name, sb.sections); err != nil {
			f.Close()
			return nil, err
		}
	}

	if e.template != nil {
		for _, sheetTmpl := range e.template.Sheets {
			if err := useSheet(sheetTmpl.Name); err != nil {
				f.Close()
				return nil, fmt.Errorf("create sheet %s: %w", sheetTmpl.Name, err)
			}
			sections := make([]*SectionConfig, len(sheetTmpl.Sections))
			for j := range sheetTmpl.Sections {
				sec := sheetTmpl.Sections[j]
				if data, ok := e.data[sec.ID]; ok {
					sec.Data = data
				}
				if title, ok := e.titles[sec.ID]; ok {
					sec.Title = title
				}
				sections[j] = &sec
			}
			if err := e.renderSections(f, sheetTmpl.Name, sections); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	return f, nil
}

// ToBytes exports the workbook to an in-memory byte slice.
func (e *DataExporter) ToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.ToWriter(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToWriter writes the workbook to w.
func (e *DataExporter) ToWriter(w io.Writer) error {
	f, err := e.BuildExcel()
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

// SheetBuilder collects the sections of a programmatic sheet.
type SheetBuilder struct {
	exporter *DataExporter
	name     string
	sections []*SectionConfig
}

func (sb *SheetBuilder) AddSection(config *SectionConfig) *SheetBuilder {
	sb.sections = append(sb.sections, config)
	return sb
}

func (sb *SheetBuilder) Build() *DataExporter {
	return sb.exporter
}

func (e *DataExporter) renderSections(f *excelize.File, sheet string, sections []*SectionConfig) error {
	maxRow := 1            // next free row for vertical sections
	nextColHorizontal := 1 // next free column for horizontal sections

	for _, sec := range sections {
		startCol, startRow := 1, maxRow
		if sec.Direction == SectionDirectionHorizontal {
			startCol, startRow = nextColHorizontal, 1
		}
		if sec.Position != "" {
			c, r, err := excelize.CellNameToCoordinates(sec.Position)
			if err != nil {
				return fmt.Errorf("section %s: bad position %q: %w", sec.ID, sec.Position, err)
			}
			startCol, startRow = c, r
		}
		currentRow := startRow

		if sec.Title != "" {
			cell, _ := excelize.CoordinatesToCellName(startCol, currentRow)
			if err := f.SetCellValue(sheet, cell, sec.Title); err != nil {
				return err
			}
			styleID, err := createStyle(f, sec.TitleStyle, "")
			if err != nil {
				return err
			}
			endCell := cell
			if len(sec.Columns) > 1 {
				endCell, _ = excelize.CoordinatesToCellName(startCol+len(sec.Columns)-1, currentRow)
				if err := f.MergeCell(sheet, cell, endCell); err != nil {
					return err
				}
			}
			if err := f.SetCellStyle(sheet, cell, endCell, styleID); err != nil {
				return err
			}
			currentRow++
		}

		if sec.ShowHeader {
			styleID, err := createStyle(f, sec.HeaderStyle, "")
			if err != nil {
				return err
			}
			for i, col := range sec.Columns {
				cell, _ := excelize.CoordinatesToCellName(startCol+i, currentRow)
				if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
					return err
				}
				if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
					return err
				}
			}
			currentRow++
		}

		for i, col := range sec.Columns {
			if col.Width > 0 {
				colName, _ := excelize.ColumnNumberToName(startCol + i)
				if err := f.SetColWidth(sheet, colName, colName, col.Width); err != nil {
					return err
				}
			}
		}

		// One style per column; excelize dedupes identical styles.
		colStyles := make([]int, len(sec.Columns))
		for i, col := range sec.Columns {
			id, err := createStyle(f, sec.DataStyle, col.NumFmt)
			if err != nil {
				return err
			}
			colStyles[i] = id
		}

		dataVal := reflect.ValueOf(sec.Data)
		if dataVal.Kind() == reflect.Slice {
			for i := 0; i < dataVal.Len(); i++ {
				item := dataVal.Index(i)
				for j, col := range sec.Columns {
					cell, _ := excelize.CoordinatesToCellName(startCol+j, currentRow)
					if err := f.SetCellValue(sheet, cell, extractValue(item, col.FieldName)); err != nil {
						return err
					}
					if err := f.SetCellStyle(sheet, cell, cell, colStyles[j]); err != nil {
						return err
					}
				}
				currentRow++
			}
		}

		// Leave one blank row between stacked sections.
		if currentRow+1 > maxRow {
			maxRow = currentRow + 1
		}
		nextColHorizontal = startCol + len(sec.Columns) + 1
	}

	return nil
}

// extractValue reads fieldName from a struct, pointer to struct or map.
func extractValue(item reflect.Value, fieldName string) interface{} {
	for item.Kind() == reflect.Ptr || item.Kind() == reflect.Interface {
		if item.IsNil() {
			return ""
		}
		item = item.Elem()
	}
	switch item.Kind() {
	case reflect.Struct:
		f := item.FieldByName(fieldName)
		if f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
	case reflect.Map:
		if item.Type().Key().Kind() != reflect.String {
			return ""
		}
		v := item.MapIndex(reflect.ValueOf(fieldName).Convert(item.Type().Key()))
		if v.IsValid() {
			return v.Interface()
		}
	}
	return ""
}

func createStyle(f *excelize.File, tmpl *StyleTemplate, numFmt string) (int, error) {
	style := &excelize.Style{}
	if numFmt != "" {
		style.CustomNumFmt = &numFmt
	}
	if tmpl == nil {
		return f.NewStyle(style)
	}
	if tmpl.Font != nil {
		style.Font = &excelize.Font{
			Bold:  tmpl.Font.Bold,
			Size:  tmpl.Font.Size,
			Color: strings.TrimPrefix(tmpl.Font.Color, "#"),
		}
	}
	if tmpl.Fill != nil {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(tmpl.Fill.Color, "#")},
			Pattern: 1,
		}
	}
	if tmpl.Border {
		for _, side := range []string{"left", "top", "right", "bottom"} {
			style.Border = append(style.Border, excelize.Border{Type: side, Color: "BFBFBF", Style: 1})
		}
	}
	if tmpl.Wrap {
		style.Alignment = &excelize.Alignment{WrapText: true, Vertical: "top"}
	}
	return f.NewStyle(style)
}
