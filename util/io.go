package util

import (
	"encoding/csv"
	"io"
	"iter"
	"os"
	"reflect"
	"strconv"
)

// Opens a delimited file with a header row and decodes every record into T.
//
// Fields of T are matched to columns by their `csv` tag. Malformed rows are skipped.
func ReadCSVFromFile[T any](filename string, delimiter rune) (iter.Seq[T], func() error, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	return ReadCSV[T](file, delimiter), file.Close, nil
}

// Decodes records of r into T. Empty cells keep the zero value, rows with the wrong
// field count or unparsable cells are dropped.
func ReadCSV[T any](r io.Reader, delimiter rune) iter.Seq[T] {
	return func(yield func(T) bool) {
		reader := csv.NewReader(r)
		reader.Comma = delimiter
		header, err := reader.Read()
		if err != nil {
			return
		}
		columns := _BindColumns(reflect.TypeFor[T](), header)
		for {
			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				continue
			}
			var value T
			if !_DecodeRecord(reflect.ValueOf(&value).Elem(), columns, record) {
				continue
			}
			if !yield(value) {
				return
			}
		}
	}
}

type _Column struct {
	field  int
	column int
	parse  func(reflect.Value, string) error
}

func _BindColumns(typ reflect.Type, header []string) List[_Column] {
	positions := NewDict[string, int](len(header))
	for i, name := range header {
		positions[name] = i
	}
	columns := NewList[_Column](typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		column, ok := positions[field.Tag.Get("csv")]
		if !ok {
			continue
		}
		parse := _FieldParser(field.Type.Kind())
		if parse == nil {
			continue
		}
		columns.Add(_Column{field: i, column: column, parse: parse})
	}
	return columns
}

func _DecodeRecord(target reflect.Value, columns List[_Column], record []string) bool {
	for _, c := range columns {
		if c.column >= len(record) || record[c.column] == "" {
			continue
		}
		if err := c.parse(target.Field(c.field), record[c.column]); err != nil {
			return false
		}
	}
	return true
}

func _FieldParser(kind reflect.Kind) func(reflect.Value, string) error {
	switch kind {
	case reflect.Bool:
		return func(f reflect.Value, s string) error {
			v, err := strconv.ParseBool(s)
			f.SetBool(v)
			return err
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(f reflect.Value, s string) error {
			v, err := strconv.ParseInt(s, 10, f.Type().Bits())
			f.SetInt(v)
			return err
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(f reflect.Value, s string) error {
			v, err := strconv.ParseUint(s, 10, f.Type().Bits())
			f.SetUint(v)
			return err
		}
	case reflect.Float32, reflect.Float64:
		return func(f reflect.Value, s string) error {
			v, err := strconv.ParseFloat(s, f.Type().Bits())
			f.SetFloat(v)
			return err
		}
	case reflect.String:
		return func(f reflect.Value, s string) error {
			f.SetString(s)
			return nil
		}
	}
	return nil
}
